package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Comments manages the comments of posts.
type Comments struct {
	*Collection[model.Comment]
}

// List returns all comments in chronological order.
func (c *Comments) List(ctx context.Context, page *coal.Page) ([]model.Comment, error) {
	return c.FindMany(ctx, nil, []string{"time", "_id"}, page)
}

// ByPost returns the comments of a post in chronological order.
func (c *Comments) ByPost(ctx context.Context, postID string, page *coal.Page) ([]model.Comment, error) {
	return c.FindMany(ctx, bson.M{"postId": postID}, []string{"time", "_id"}, page)
}

// CountByPost counts the comments of a post.
func (c *Comments) CountByPost(ctx context.Context, postID string) (int64, error) {
	return c.Count(ctx, bson.M{"postId": postID})
}

// Create will insert a new comment. The comment count of the post is not
// changed.
func (c *Comments) Create(ctx context.Context, comment *model.Comment) (*InsertResult, error) {
	// reset fields
	comment.ID = coal.ID{}
	if comment.Time.IsZero() {
		comment.Time = time.Now()
	}

	// validate
	err := comment.Validate()
	if err != nil {
		return nil, err
	}

	return c.Insert(ctx, comment)
}

// Remove will delete the comment with the specified id.
func (c *Comments) Remove(ctx context.Context, id coal.ID) (*DeleteResult, error) {
	return c.Delete(ctx, bson.M{"_id": id})
}

// RemoveFrom will delete the comment with the specified id only if it
// belongs to the post.
func (c *Comments) RemoveFrom(ctx context.Context, postID string, id coal.ID) (*DeleteResult, error) {
	return c.Delete(ctx, bson.M{"_id": id, "postId": postID})
}
