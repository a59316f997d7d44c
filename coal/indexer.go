package coal

import (
	"context"
	"time"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type index struct {
	coll  string
	model mongo.IndexModel
}

// An Indexer can be used to manage indexes for collections.
type Indexer struct {
	indexes []index
}

// NewIndexer returns a new indexer.
func NewIndexer() *Indexer {
	return &Indexer{}
}

// Add will add an index to the internal index list. Fields that are prefixed
// with a dash will result in an descending index.
func (i *Indexer) Add(coll string, unique bool, fields ...string) {
	i.indexes = append(i.indexes, index{
		coll: coll,
		model: mongo.IndexModel{
			Keys:    Sort(fields...),
			Options: options.Index().SetUnique(unique),
		},
	})
}

// Ensure will ensure that the required indexes exist. It may fail early if some
// of the indexes are already existing and do not match the supplied index.
func (i *Indexer) Ensure(store *Store) error {
	// create context
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// go through all indexes
	for _, idx := range i.indexes {
		_, err := store.C(idx.coll).Indexes().CreateOne(ctx, idx.model)
		if err != nil {
			return xo.WF(err, "ensure index on %s", idx.coll)
		}
	}

	return nil
}
