package repo

import (
	"context"
	"time"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Announcements manages the admin announcements.
type Announcements struct {
	*Collection[model.Announcement]
}

// List returns the announcements newest first.
func (a *Announcements) List(ctx context.Context, page *coal.Page) ([]model.Announcement, error) {
	return a.FindMany(ctx, nil, []string{"-date", "-_id"}, page)
}

// Create will insert a new announcement.
func (a *Announcements) Create(ctx context.Context, announcement *model.Announcement) (*InsertResult, error) {
	// reset fields
	announcement.ID = coal.ID{}
	if announcement.Date.IsZero() {
		announcement.Date = time.Now()
	}

	// validate
	err := announcement.Validate()
	if err != nil {
		return nil, err
	}

	return a.Insert(ctx, announcement)
}
