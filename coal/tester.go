package coal

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
)

// A Tester provides facilities to seed and inspect collections in tests.
type Tester struct {
	// The store to use for cleaning the database.
	Store *Store

	// The managed collections.
	Collections []string
}

// NewTester returns a new tester.
func NewTester(store *Store, collections ...string) *Tester {
	return &Tester{
		Store:       store,
		Collections: collections,
	}
}

// Clean will remove all documents from the managed collections.
func (t *Tester) Clean() {
	for _, coll := range t.Collections {
		// remove all is faster than dropping the collection
		_, err := t.Store.C(coll).DeleteMany(context.Background(), bson.M{})
		if err != nil {
			panic(err)
		}
	}
}

// Insert will insert the specified document and return its id.
func (t *Tester) Insert(coll string, doc interface{}) ID {
	// insert document
	res, err := t.Store.C(coll).InsertOne(context.Background(), doc)
	if err != nil {
		panic(err)
	}

	return res.InsertedID.(ID)
}

// Fetch will decode the document with the specified id into out and return
// whether it has been found.
func (t *Tester) Fetch(coll string, id ID, out interface{}) bool {
	// find document
	err := t.Store.C(coll).FindOne(context.Background(), bson.M{
		"_id": id,
	}).Decode(out)
	if IsMissing(err) {
		return false
	} else if err != nil {
		panic(err)
	}

	return true
}

// Count will return the number of documents matching the filter.
func (t *Tester) Count(coll string, filter bson.M) int64 {
	// ensure filter
	if filter == nil {
		filter = bson.M{}
	}

	// count documents
	n, err := t.Store.C(coll).CountDocuments(context.Background(), filter)
	if err != nil {
		panic(err)
	}

	return n
}
