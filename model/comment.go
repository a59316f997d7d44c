package model

import (
	"time"

	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/coal"
)

// Comment is a reply to a post. The post is referenced by its hex id.
type Comment struct {
	ID        coal.ID   `json:"_id" bson:"_id,omitempty"`
	PostID    string    `json:"postId" bson:"postId"`
	PostTitle string    `json:"postTitle,omitempty" bson:"postTitle,omitempty"`
	Author    Author    `json:"author" bson:"author"`
	Comment   string    `json:"comment" bson:"comment"`
	Time      time.Time `json:"time" bson:"time"`
}

// Validate will validate the comment.
func (c *Comment) Validate() error {
	// check post
	if !coal.IsHex(c.PostID) {
		return xo.SF("invalid post id")
	}

	// check author
	err := c.Author.Validate()
	if err != nil {
		return err
	}

	// check body
	if blank(c.Comment) {
		return xo.SF("missing comment")
	}

	return nil
}
