package repo

import (
	"context"
	"time"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Reports manages the moderation reports.
type Reports struct {
	*Collection[model.Report]

	store    *coal.Store
	posts    *Posts
	comments *Comments
}

// List returns the reports newest first.
func (r *Reports) List(ctx context.Context, page *coal.Page) ([]model.Report, error) {
	return r.FindMany(ctx, nil, []string{"-time", "-_id"}, page)
}

// Get returns the report with the specified id or nil.
func (r *Reports) Get(ctx context.Context, id coal.ID) (*model.Report, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

// Create will insert a new pending report.
func (r *Reports) Create(ctx context.Context, report *model.Report) (*InsertResult, error) {
	// reset fields
	report.ID = coal.ID{}
	report.Status = model.Pending
	if report.Time.IsZero() {
		report.Time = time.Now()
	}

	// validate
	err := report.Validate()
	if err != nil {
		return nil, err
	}

	// check that the comment belongs to the post
	comment, err := r.comments.FindOne(ctx, bson.M{"_id": coal.MustFromHex(report.CommentID)})
	if err != nil {
		return nil, err
	} else if comment != nil && comment.PostID != report.PostID {
		return nil, xo.SF("comment does not belong to post")
	}

	return r.Insert(ctx, report)
}

// Ignore will move a pending report to ignored. It returns ErrNotFound if the
// report does not exist and ErrConflict if it is not pending.
func (r *Reports) Ignore(ctx context.Context, id coal.ID) (*UpdateResult, error) {
	var res *UpdateResult
	err := r.store.T(ctx, func(ctx context.Context) error {
		// check report
		_, err := r.pending(ctx, id)
		if err != nil {
			return err
		}

		// set status
		res, err = r.transition(ctx, id, model.Ignored)
		return err
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

// Resolve will delete the reported comment, mark the report as deleted and
// decrement the comment count of the post as one unit of work. The comment
// is only deleted if it belongs to the reported post and the comment count is
// only decremented if it was deleted. It returns
// ErrNotFound if the report does not exist and ErrConflict if it is not
// pending, in which case nothing is changed.
func (r *Reports) Resolve(ctx context.Context, id coal.ID) (*UpdateResult, error) {
	var res *UpdateResult
	err := r.store.T(ctx, func(ctx context.Context) error {
		// check report
		report, err := r.pending(ctx, id)
		if err != nil {
			return err
		}

		// get references
		commentID, err := coal.FromHex(report.CommentID)
		if err != nil {
			return xo.WF(err, "report %s", id.Hex())
		}
		postID, err := coal.FromHex(report.PostID)
		if err != nil {
			return xo.WF(err, "report %s", id.Hex())
		}

		// delete comment of the reported post
		deleted, err := r.comments.RemoveFrom(ctx, report.PostID, commentID)
		if err != nil {
			return err
		}

		// set status
		res, err = r.transition(ctx, id, model.Deleted)
		if err != nil {
			return err
		}

		// decrement comment count
		if deleted.DeletedCount > 0 {
			_, err = r.posts.Increment(ctx, bson.M{
				"_id":            postID,
				"comments_count": bson.M{"$gt": 0},
			}, bson.M{
				"comments_count": -1,
			})
			if err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (r *Reports) pending(ctx context.Context, id coal.ID) (*model.Report, error) {
	// get report
	report, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	} else if report == nil {
		return nil, ErrNotFound
	}

	// check status
	if report.Status != model.Pending {
		return nil, ErrConflict
	}

	return report, nil
}

func (r *Reports) transition(ctx context.Context, id coal.ID, status model.ReportStatus) (*UpdateResult, error) {
	// update only pending reports
	res, err := r.Set(ctx, bson.M{
		"_id":    id,
		"status": model.Pending,
	}, bson.M{
		"status": status,
	})
	if err != nil {
		return nil, err
	}

	// check match
	if res.MatchedCount == 0 {
		return nil, ErrConflict
	}

	return res, nil
}
