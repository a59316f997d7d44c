// Package coal manages the process wide MongoDB client used by the
// repositories.
package coal

import (
	"context"
	"net/url"
	"strings"

	"github.com/256dpi/lungo"
	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type contextKey int

const hasTransaction contextKey = iota

// MustConnect will call Connect and panic on errors.
func MustConnect(uri string) *Store {
	// connect store
	store, err := Connect(uri)
	if err != nil {
		panic(err)
	}

	return store
}

// Connect will connect to the specified database and return a new store. The
// default database is taken from the path of the URI. It will return an error
// if the initial connection failed.
func Connect(uri string) (*Store, error) {
	// parse url
	parsedURL, err := url.Parse(uri)
	if err != nil {
		return nil, xo.W(err)
	}

	// get default db
	defaultDB := strings.Trim(parsedURL.Path, "/")
	if defaultDB == "" {
		return nil, xo.F("missing database in uri")
	}

	// prepare options
	opts := options.Client().ApplyURI(uri)

	// create client
	client, err := lungo.Connect(context.Background(), opts)
	if err != nil {
		return nil, xo.W(err)
	}

	// ping server
	err = client.Ping(context.Background(), nil)
	if err != nil {
		return nil, xo.W(err)
	}

	return NewStore(client, defaultDB, nil), nil
}

// MustOpen will call Open and panic on errors.
func MustOpen(store lungo.Store, defaultDB string) *Store {
	// open store
	s, err := Open(store, defaultDB)
	if err != nil {
		panic(err)
	}

	return s
}

// Open will open an embedded lungo database using the provided lungo store. If
// no store is provided a memory store is used.
func Open(store lungo.Store, defaultDB string) (*Store, error) {
	// ensure store
	if store == nil {
		store = lungo.NewMemoryStore()
	}

	// open client
	client, engine, err := lungo.Open(context.Background(), lungo.Options{
		Store: store,
	})
	if err != nil {
		return nil, xo.W(err)
	}

	return NewStore(client, defaultDB, engine), nil
}

// NewStore returns a store that uses the passed client and its default
// database. The engine is only set for embedded databases.
func NewStore(client lungo.IClient, defaultDB string, engine *lungo.Engine) *Store {
	return &Store{
		Client:    client,
		DefaultDB: defaultDB,
		engine:    engine,
	}
}

// A Store manages the usage of a database client.
type Store struct {
	// The client used by the store.
	Client lungo.IClient

	// The default db used by the store.
	DefaultDB string

	engine *lungo.Engine
}

// DB returns the database used by this store.
func (s *Store) DB() lungo.IDatabase {
	return s.Client.Database(s.DefaultDB)
}

// C will return the named collection of the default database.
func (s *Store) C(name string) lungo.ICollection {
	return s.DB().Collection(name)
}

// T will run the specified function inside a transaction. If the context
// already carries a transaction the function is run as part of it. The
// function may be retried on transient transaction errors.
func (s *Store) T(ctx context.Context, fn func(ctx context.Context) error) error {
	// ensure context
	if ctx == nil {
		ctx = context.Background()
	}

	// join existing transaction
	if HasTransaction(ctx) {
		return fn(ctx)
	}

	// run transaction in session
	return s.Client.UseSession(ctx, func(sc lungo.ISessionContext) error {
		_, err := sc.WithTransaction(sc, func(sc lungo.ISessionContext) (interface{}, error) {
			return nil, fn(context.WithValue(sc, hasTransaction, true))
		})
		return err
	})
}

// Close will close the store and its associated client.
func (s *Store) Close() error {
	// disconnect client
	err := s.Client.Disconnect(context.Background())
	if err != nil {
		return xo.W(err)
	}

	// close engine
	if s.engine != nil {
		s.engine.Close()
	}

	return nil
}

// HasTransaction returns whether the context carries a transaction started
// by Store.T.
func HasTransaction(ctx context.Context) bool {
	ok, _ := ctx.Value(hasTransaction).(bool)
	return ok
}
