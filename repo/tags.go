package repo

import (
	"context"
	"strings"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Tags manages the offered tags.
type Tags struct {
	*Collection[model.Tag]
}

// List returns all tags in insertion order.
func (t *Tags) List(ctx context.Context) ([]model.Tag, error) {
	return t.FindMany(ctx, nil, []string{"_id"}, nil)
}

// Create will insert a new tag.
func (t *Tags) Create(ctx context.Context, tag *model.Tag) (*InsertResult, error) {
	// normalize
	tag.ID = coal.ID{}
	tag.Label = strings.TrimSpace(tag.Label)

	// validate
	err := tag.Validate()
	if err != nil {
		return nil, err
	}

	return t.Insert(ctx, tag)
}
