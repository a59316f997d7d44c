package model

import (
	"strings"
	"time"

	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/coal"
)

// Post is a forum thread.
type Post struct {
	ID             coal.ID   `json:"_id" bson:"_id,omitempty"`
	Author         Author    `json:"author" bson:"author"`
	Title          string    `json:"title" bson:"title"`
	Description    string    `json:"description" bson:"description"`
	Tags           []string  `json:"tags" bson:"tags"`
	CommentsCount  int64     `json:"comments_count" bson:"comments_count"`
	UpvoteCount    int64     `json:"upvote_count" bson:"upvote_count"`
	DownvoteCount  int64     `json:"downvote_count" bson:"downvote_count"`
	VoteDifference int64     `json:"vote_difference" bson:"vote_difference"`
	Time           time.Time `json:"time" bson:"time"`
}

// Validate will validate the post.
func (p *Post) Validate() error {
	// check author
	err := p.Author.Validate()
	if err != nil {
		return err
	}

	// check title
	if blank(p.Title) {
		return xo.SF("missing title")
	}

	// check tags
	for _, tag := range p.Tags {
		if blank(tag) {
			return xo.SF("empty tag")
		}
	}

	// check counters
	if p.CommentsCount < 0 || p.UpvoteCount < 0 || p.DownvoteCount < 0 {
		return xo.SF("negative counter")
	}

	return nil
}

// Counter names a post counter that can be incremented.
type Counter string

// The available counters.
const (
	CommentCounter  Counter = "comment"
	UpvoteCounter   Counter = "upvote"
	DownvoteCounter Counter = "downvote"
)

// Increments returns the field increments applied for one unit of the
// counter. Votes also move the stored vote difference.
func (c Counter) Increments() (map[string]int64, error) {
	switch c {
	case CommentCounter:
		return map[string]int64{"comments_count": 1}, nil
	case UpvoteCounter:
		return map[string]int64{"upvote_count": 1, "vote_difference": 1}, nil
	case DownvoteCounter:
		return map[string]int64{"downvote_count": 1, "vote_difference": -1}, nil
	default:
		return nil, xo.SF("unknown counter %q", string(c))
	}
}

// NormalizeTags trims tags and drops empty ones.
func NormalizeTags(tags []string) []string {
	list := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			list = append(list, tag)
		}
	}

	return list
}
