package model

import (
	"time"

	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"

	"github.com/threadnexus/nexus/coal"
)

// ReportStatus is the state of a report.
type ReportStatus string

// The report states. Pending reports move once to either ignored or deleted.
const (
	Pending ReportStatus = "pending"
	Ignored ReportStatus = "ignored"
	Deleted ReportStatus = "deleted"
)

// Report flags a comment for moderation.
type Report struct {
	ID        coal.ID      `json:"_id" bson:"_id,omitempty"`
	CommentID string       `json:"commentId" bson:"commentId"`
	PostID    string       `json:"postId" bson:"postId"`
	Comment   string       `json:"comment,omitempty" bson:"comment,omitempty"`
	Reporter  string       `json:"reporter" bson:"reporter"`
	Feedback  string       `json:"feedback,omitempty" bson:"feedback,omitempty"`
	Status    ReportStatus `json:"status" bson:"status"`
	Time      time.Time    `json:"time" bson:"time"`
}

// Validate will validate the report.
func (r *Report) Validate() error {
	// check references
	if !coal.IsHex(r.CommentID) {
		return xo.SF("invalid comment id")
	}
	if !coal.IsHex(r.PostID) {
		return xo.SF("invalid post id")
	}

	// check reporter
	if !govalidator.IsEmail(r.Reporter) {
		return xo.SF("invalid reporter")
	}

	// check status
	switch r.Status {
	case Pending, Ignored, Deleted:
	default:
		return xo.SF("invalid status")
	}

	return nil
}
