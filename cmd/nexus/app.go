package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/tomb.v2"

	"github.com/threadnexus/nexus/api"
	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/config"
	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/reconcile"
	"github.com/threadnexus/nexus/repo"
	"github.com/threadnexus/nexus/tools"
)

type app struct {
	config   *config.Config
	logger   hclog.Logger
	reporter func(error)
	store    *coal.Store
	repos    *repo.Repos
	notary   *heat.Notary
}

func newApp(cfg *config.Config) (*app, error) {
	// validate config
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	// create logger
	logger := tools.NewLogger("nexus", cfg.Log.Level, cfg.Production(), os.Stderr)

	// open store
	var store *coal.Store
	if cfg.Mongo.Memory {
		logger.Warn("using in-memory database")
		store, err = coal.Open(nil, cfg.Mongo.Database)
	} else {
		var uri string
		uri, err = cfg.MongoURI()
		if err == nil {
			store, err = coal.Connect(uri)
		}
	}
	if err != nil {
		return nil, err
	}

	// get secret
	secret := heat.Secret(cfg.Token.Secret)
	if len(secret) == 0 {
		logger.Warn("using random token secret")
		secret = heat.MustRandomSecret(32)
	}

	return &app{
		config:   cfg,
		logger:   logger,
		reporter: tools.NewReporter(logger),
		store:    store,
		repos:    repo.New(store),
		notary:   heat.NewNotary(cfg.Token.Issuer, secret),
	}, nil
}

func (a *app) handler() (http.Handler, error) {
	// parse limit
	var limit int64
	err := xo.Catch(func() error {
		limit = serve.MustByteSize(a.config.Server.BodyLimit)
		return nil
	})
	if err != nil {
		return nil, xo.WF(err, "invalid body limit %q", a.config.Server.BodyLimit)
	}

	// create metrics
	metrics := tools.NewMetrics("nexus")

	// create bridge
	bridge := payment.NewBridge(payment.Config{
		Secret:   a.config.Stripe.Secret,
		URL:      a.config.Stripe.URL,
		Currency: a.config.Stripe.Currency,
		Timeout:  a.config.Stripe.Timeout,
	})

	// create server
	server := api.NewServer(api.Options{
		Repos:          a.repos,
		Notary:         a.notary,
		Bridge:         bridge,
		Reporter:       a.reporter,
		RequestTimeout: a.config.Server.RequestTimeout,
		BodyLimit:      limit,
		Metrics:        metrics.Handler(),
	})

	return serve.Compose(
		tools.NewProtector(a.config.Server.BodyLimit, a.config.CORS.Origins),
		tools.NewThrottle(a.config.Server.Rate, a.config.Server.Burst),
		tools.NewRequestLogger(a.logger),
		metrics.Middleware(),
		server,
	), nil
}

func (a *app) run() error {
	// ensure store is closed
	defer a.store.Close()

	// ensure indexes
	err := repo.Indexer().Ensure(a.store)
	if err != nil {
		return err
	}

	// get handler
	handler, err := a.handler()
	if err != nil {
		return err
	}

	// prepare server
	server := &http.Server{
		Addr:              ":" + strconv.Itoa(a.config.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// prepare scheduler
	var scheduler *reconcile.Scheduler
	if a.config.Reconcile.Schedule != "" {
		scheduler, err = reconcile.NewScheduler(a.config.Reconcile.Schedule, a.repos, a.logger, a.reporter)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()
	}

	// handle signals
	signals, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// run server
	var t tomb.Tomb
	t.Go(func() error {
		a.logger.Info("server is running", "port", a.config.Port)
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return xo.W(err)
	})

	// shutdown server
	t.Go(func() error {
		select {
		case <-signals.Done():
			a.logger.Info("shutting down")
		case <-t.Dying():
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		return xo.W(server.Shutdown(ctx))
	})

	return t.Wait()
}
