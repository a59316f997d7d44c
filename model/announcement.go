package model

import (
	"time"

	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/coal"
)

// Announcement is a notice published by an admin.
type Announcement struct {
	ID          coal.ID   `json:"_id" bson:"_id,omitempty"`
	Author      Author    `json:"author" bson:"author"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Date        time.Time `json:"date" bson:"date"`
}

// Validate will validate the announcement.
func (a *Announcement) Validate() error {
	// check author
	err := a.Author.Validate()
	if err != nil {
		return err
	}

	// check title
	if blank(a.Title) {
		return xo.SF("missing title")
	}

	return nil
}
