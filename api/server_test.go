package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"
	"github.com/stretchr/testify/assert"
	"github.com/tidwall/gjson"

	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/payment"
	"github.com/threadnexus/nexus/repo"
)

func TestConvert(t *testing.T) {
	for _, item := range []struct {
		err        error
		status     int
		code       string
		unexpected bool
	}{
		{Forbidden("foo"), 403, "forbidden", false},
		{xo.W(NotFound("foo")), 404, "not_found", false},
		{xo.SF("foo"), 400, "invalid_argument", false},
		{xo.W(repo.ErrNotFound), 404, "not_found", false},
		{repo.ErrConflict, 409, "conflict", false},
		{heat.ErrExpiredToken, 401, "unauthenticated", false},
		{&payment.UpstreamError{Message: "foo"}, 502, "upstream_failure", false},
		{serve.ErrBodyLimitExceeded, 413, "too_large", false},
		{xo.W(context.DeadlineExceeded), 504, "timeout", true},
		{xo.F("foo"), 500, "internal", true},
	} {
		anError, unexpected := Convert(item.err)
		assert.Equal(t, item.status, anError.Status, item.err.Error())
		assert.Equal(t, item.code, anError.Code, item.err.Error())
		assert.Equal(t, item.unexpected, unexpected, item.err.Error())
	}

	anError, _ := Convert(xo.F("secret"))
	assert.Empty(t, anError.Detail)
	assert.Equal(t, "Internal Server Error", anError.Title)
}

func TestRoutes(t *testing.T) {
	server := NewServer(Options{})

	seen := map[string]bool{}
	for _, route := range server.Routes() {
		key := route.Method + " " + route.Path
		assert.False(t, seen[key], key)
		assert.NotNil(t, route.Handler, key)
		seen[key] = true
	}

	assert.Len(t, seen, 27)
}

func TestServerFailures(t *testing.T) {
	var reported []error
	server := NewServer(Options{
		Reporter: func(err error) {
			reported = append(reported, err)
		},
		RequestTimeout: time.Millisecond,
	})

	// panic
	handler := server.handle(Route{
		Handler: func(ctx *Context) error {
			panic("boom")
		},
	})
	res := serve.Record(context.Background(), handler, "GET", "/", nil, "")
	assertError(t, res, http.StatusInternalServerError, "internal")
	assert.Len(t, reported, 1)

	// deadline
	handler = server.handle(Route{
		Handler: func(ctx *Context) error {
			<-ctx.Done()
			return xo.W(ctx.Err())
		},
	})
	res = serve.Record(context.Background(), handler, "GET", "/", nil, "")
	assertError(t, res, http.StatusGatewayTimeout, "timeout")
	assert.Len(t, reported, 2)

	// gate order
	var calls []string
	handler = server.handle(Route{
		Gates: []Gate{
			func(ctx *Context) error {
				calls = append(calls, "a")
				return nil
			},
			func(ctx *Context) error {
				calls = append(calls, "b")
				return Forbidden("stop")
			},
		},
		Handler: func(ctx *Context) error {
			calls = append(calls, "handler")
			return nil
		},
	})
	res = serve.Record(context.Background(), handler, "GET", "/", nil, "")
	assertError(t, res, http.StatusForbidden, "forbidden")
	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Len(t, reported, 2)
}

func TestBodyLimit(t *testing.T) {
	withTester(t, nil, func(t *testing.T, tester *Tester) {
		tester.Request("POST", "/users", `{"email":"`+strings.Repeat("x", 5000)+`@example.com"}`, func(r *httptest.ResponseRecorder) {
			assertError(t, r, http.StatusRequestEntityTooLarge, "too_large")
		})

		assert.Empty(t, tester.Reported())
	})
}

func TestMetricsRoute(t *testing.T) {
	server := NewServer(Options{
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	})

	res := serve.Record(context.Background(), server, "GET", "/metrics", nil, "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, "metrics", res.Body.String())

	res = serve.Record(context.Background(), server, "PUT", "/posts", nil, "")
	assertError(t, res, http.StatusNotFound, "not_found")
	assert.Equal(t, "unknown route", gjson.Get(res.Body.String(), "error.detail").String())
}
