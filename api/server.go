// Package api implements the HTTP interface of the forum.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/repo"
)

// Handler handles a request after all gates passed.
type Handler func(ctx *Context) error

// Route binds a handler and its gates to a method and path pattern.
type Route struct {
	Method  string
	Path    string
	Gates   []Gate
	Handler Handler
}

// Options configures a server.
type Options struct {
	// The repositories.
	Repos *repo.Repos

	// The notary used to issue and verify credentials.
	Notary *heat.Notary

	// The payment bridge.
	Bridge *payment.Bridge

	// The reporter called with unexpected errors.
	Reporter func(error)

	// The deadline of a single request. Zero means no deadline.
	RequestTimeout time.Duration

	// The request body limit.
	//
	// Default: 4K.
	BodyLimit int64

	// The optional metrics exposition handler.
	Metrics http.Handler
}

// Server dispatches requests to the routes.
type Server struct {
	repos    *repo.Repos
	notary   *heat.Notary
	bridge   *payment.Bridge
	reporter func(error)
	timeout  time.Duration
	limit    int64
	mux      *http.ServeMux
}

// NewServer creates and returns a new server.
func NewServer(opts Options) *Server {
	// set default limit
	if opts.BodyLimit == 0 {
		opts.BodyLimit = serve.MustByteSize("4K")
	}

	// prepare server
	s := &Server{
		repos:    opts.Repos,
		notary:   opts.Notary,
		bridge:   opts.Bridge,
		reporter: opts.Reporter,
		timeout:  opts.RequestTimeout,
		limit:    opts.BodyLimit,
		mux:      http.NewServeMux(),
	}

	// add routes
	for _, route := range s.Routes() {
		s.mux.Handle(route.Method+" "+route.Path, s.handle(route))
	}

	// add metrics
	if opts.Metrics != nil {
		s.mux.Handle("GET /metrics", opts.Metrics)
	}

	// add fallback
	s.mux.Handle("/", s.handle(Route{
		Handler: func(ctx *Context) error {
			return NotFound("unknown route")
		},
	}))

	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handle(route Route) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// prepare context
		parent := r.Context()
		if s.timeout > 0 {
			var cancel context.CancelFunc
			parent, cancel = context.WithTimeout(parent, s.timeout)
			defer cancel()
		}

		// limit body
		serve.LimitBody(w, r, s.limit)

		// prepare context
		ctx := &Context{
			Context: parent,
			Request: r,
			Writer:  w,
			server:  s,
		}

		// run gates and handler
		err := xo.Catch(func() error {
			for _, gate := range route.Gates {
				err := gate(ctx)
				if err != nil {
					return err
				}
			}

			return route.Handler(ctx)
		})
		if err != nil {
			s.fail(ctx, err)
		}
	})
}

func (s *Server) fail(ctx *Context, err error) {
	// convert error
	anError, unexpected := Convert(err)
	if unexpected && s.reporter != nil {
		s.reporter(err)
	}

	// write error
	_ = ctx.Respond(anError.Status, map[string]*Error{
		"error": anError,
	})
}
