package coal

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Sort is a helper function to compute a sort document from a list of
// fields. Fields that are prefixed with a dash are sorted descending.
func Sort(fields ...string) bson.D {
	// prepare sort
	sort := make(bson.D, 0, len(fields))

	// add fields
	for _, field := range fields {
		if strings.HasPrefix(field, "-") {
			sort = append(sort, bson.E{Key: strings.TrimPrefix(field, "-"), Value: -1})
		} else {
			sort = append(sort, bson.E{Key: field, Value: 1})
		}
	}

	return sort
}

// Page describes a 1-indexed page of a sorted result set.
type Page struct {
	Number int64
	Size   int64
}

// Skip returns the number of documents to skip for the page.
func (p Page) Skip() int64 {
	return p.Size * (p.Number - 1)
}

// Limit returns the maximum number of documents on the page.
func (p Page) Limit() int64 {
	return p.Size
}

// IsMissing returns whether the provided error describes a missing document.
func IsMissing(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}
