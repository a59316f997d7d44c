package model

import (
	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/coal"
)

// Tag is a label offered for posts.
type Tag struct {
	ID    coal.ID `json:"_id" bson:"_id,omitempty"`
	Label string  `json:"label" bson:"label"`
}

// Validate will validate the tag.
func (t *Tag) Validate() error {
	// check label
	if blank(t.Label) {
		return xo.SF("missing label")
	}

	return nil
}
