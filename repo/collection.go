// Package repo implements the data access for the forum collections.
package repo

import (
	"context"
	"errors"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/threadnexus/nexus/coal"
)

// ErrNotFound is returned if a required document does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned if a document is not in the state required by an
// operation.
var ErrConflict = errors.New("conflict")

// InsertResult acknowledges an insert.
type InsertResult struct {
	Acknowledged bool     `json:"acknowledged"`
	InsertedID   *coal.ID `json:"insertedId"`
}

// UpdateResult acknowledges an update.
type UpdateResult struct {
	Acknowledged  bool     `json:"acknowledged"`
	MatchedCount  int64    `json:"matchedCount"`
	ModifiedCount int64    `json:"modifiedCount"`
	UpsertedCount int64    `json:"upsertedCount"`
	UpsertedID    *coal.ID `json:"upsertedId"`
}

// DeleteResult acknowledges a delete.
type DeleteResult struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

// Collection provides the basic operations on a collection of documents of
// type T.
type Collection[T any] struct {
	store *coal.Store
	name  string
}

// NewCollection returns a collection for the named collection.
func NewCollection[T any](store *coal.Store, name string) *Collection[T] {
	return &Collection[T]{
		store: store,
		name:  name,
	}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// FindMany will find all documents matching the filter in the specified
// order. If a page is provided only the documents of that page are returned.
func (c *Collection[T]) FindMany(ctx context.Context, filter bson.M, sort []string, page *coal.Page) ([]T, error) {
	// ensure filter
	if filter == nil {
		filter = bson.M{}
	}

	// prepare options
	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(coal.Sort(sort...))
	}
	if page != nil {
		opts.SetSkip(page.Skip())
		opts.SetLimit(page.Limit())
	}

	// find documents
	csr, err := c.store.C(c.name).Find(ctx, filter, opts)
	if err != nil {
		return nil, xo.W(err)
	}

	// decode documents
	list := make([]T, 0)
	err = csr.All(ctx, &list)
	if err != nil {
		return nil, xo.W(err)
	}

	return list, nil
}

// FindOne will find the first document matching the filter. It returns nil
// if no document matched.
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (*T, error) {
	// find document
	var doc T
	err := c.store.C(c.name).FindOne(ctx, filter).Decode(&doc)
	if coal.IsMissing(err) {
		return nil, nil
	} else if err != nil {
		return nil, xo.W(err)
	}

	return &doc, nil
}

// Each will call fn with every document matching the filter until fn
// returns an error or the cursor is exhausted.
func (c *Collection[T]) Each(ctx context.Context, filter bson.M, fn func(*T) error) error {
	// ensure filter
	if filter == nil {
		filter = bson.M{}
	}

	// find documents
	csr, err := c.store.C(c.name).Find(ctx, filter)
	if err != nil {
		return xo.W(err)
	}

	// ensure cursor is closed
	defer csr.Close(ctx)

	// iterate over all documents
	for csr.Next(ctx) {
		var doc T
		err = csr.Decode(&doc)
		if err != nil {
			return xo.W(err)
		}

		err = fn(&doc)
		if err != nil {
			return err
		}
	}

	return xo.W(csr.Err())
}

// Count will count the documents matching the filter.
func (c *Collection[T]) Count(ctx context.Context, filter bson.M) (int64, error) {
	// ensure filter
	if filter == nil {
		filter = bson.M{}
	}

	// count documents
	n, err := c.store.C(c.name).CountDocuments(ctx, filter)
	if err != nil {
		return 0, xo.W(err)
	}

	return n, nil
}

// Insert will insert the document.
func (c *Collection[T]) Insert(ctx context.Context, doc *T) (*InsertResult, error) {
	// insert document
	res, err := c.store.C(c.name).InsertOne(ctx, doc)
	if err != nil {
		return nil, xo.W(err)
	}

	// get id
	id, ok := res.InsertedID.(coal.ID)
	if !ok {
		return nil, xo.F("unexpected inserted id %v", res.InsertedID)
	}

	return &InsertResult{
		Acknowledged: true,
		InsertedID:   &id,
	}, nil
}

// Set will set the specified fields on the first document matching the
// filter.
func (c *Collection[T]) Set(ctx context.Context, filter bson.M, fields bson.M) (*UpdateResult, error) {
	return c.update(ctx, filter, bson.M{"$set": fields}, false)
}

// Increment will increment the specified fields on the first document
// matching the filter.
func (c *Collection[T]) Increment(ctx context.Context, filter bson.M, fields bson.M) (*UpdateResult, error) {
	return c.update(ctx, filter, bson.M{"$inc": fields}, false)
}

// SetOnInsert will insert a document with the specified fields if no document
// matches the filter. Existing documents are left untouched.
func (c *Collection[T]) SetOnInsert(ctx context.Context, filter bson.M, fields bson.M) (*UpdateResult, error) {
	return c.update(ctx, filter, bson.M{"$setOnInsert": fields}, true)
}

func (c *Collection[T]) update(ctx context.Context, filter, update bson.M, upsert bool) (*UpdateResult, error) {
	// update document
	res, err := c.store.C(c.name).UpdateOne(ctx, filter, update, options.Update().SetUpsert(upsert))
	if err != nil {
		return nil, xo.W(err)
	}

	// prepare result
	result := &UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if id, ok := res.UpsertedID.(coal.ID); ok {
		result.UpsertedID = &id
	}

	return result, nil
}

// Delete will delete the first document matching the filter.
func (c *Collection[T]) Delete(ctx context.Context, filter bson.M) (*DeleteResult, error) {
	// delete document
	res, err := c.store.C(c.name).DeleteOne(ctx, filter)
	if err != nil {
		return nil, xo.W(err)
	}

	return &DeleteResult{
		Acknowledged: true,
		DeletedCount: res.DeletedCount,
	}, nil
}
