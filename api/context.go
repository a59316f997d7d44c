package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/256dpi/serve"
	"github.com/256dpi/xo"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/heat"
	"github.com/threadnexus/nexus/model"
)

// Context carries the state of a single request through gates and handlers.
type Context struct {
	context.Context

	// The underlying request.
	Request *http.Request

	// The underlying writer.
	Writer http.ResponseWriter

	// The verified identity, set by the Authenticate gate.
	Identity *heat.Identity

	// The user of the identity, set by the RequireAdmin gate or Caller.
	User *model.User

	server *Server
}

// Param returns the named path parameter.
func (c *Context) Param(name string) string {
	return c.Request.PathValue(name)
}

// Query returns the named query parameter.
func (c *Context) Query(name string) string {
	return c.Request.URL.Query().Get(name)
}

// Has returns whether the named query parameter is present.
func (c *Context) Has(name string) bool {
	return c.Request.URL.Query().Has(name)
}

// ID parses the named path parameter as an object id.
func (c *Context) ID(name string) (coal.ID, error) {
	id, err := coal.FromHex(c.Param(name))
	if err != nil {
		return coal.ID{}, InvalidArgument("invalid id")
	}

	return id, nil
}

// Page parses the optional page and size query parameters. It returns nil if
// either is absent.
func (c *Context) Page() (*coal.Page, error) {
	// check presence
	if c.Query("page") == "" || c.Query("size") == "" {
		return nil, nil
	}

	// parse values
	number, err := strconv.ParseInt(c.Query("page"), 10, 64)
	if err != nil || number < 1 {
		return nil, InvalidArgument("invalid page")
	}
	size, err := strconv.ParseInt(c.Query("size"), 10, 64)
	if err != nil || size < 1 {
		return nil, InvalidArgument("invalid size")
	}

	return &coal.Page{Number: number, Size: size}, nil
}

// Decode will decode the JSON body into the value. Validatable values are
// validated.
func (c *Context) Decode(v interface{}) error {
	// read body
	body, err := io.ReadAll(c.Request.Body)
	if errors.Is(err, serve.ErrBodyLimitExceeded) {
		return TooLarge("body limit exceeded")
	} else if err != nil {
		return xo.W(err)
	}

	// unmarshal body
	err = json.Unmarshal(body, v)
	if err != nil {
		return InvalidArgument("invalid body")
	}

	// validate
	if validatable, ok := v.(model.Validatable); ok {
		err = validatable.Validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// Respond will write the value as JSON with the specified status.
func (c *Context) Respond(status int, v interface{}) error {
	// marshal value
	body, err := json.Marshal(v)
	if err != nil {
		return xo.W(err)
	}

	// write header
	c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	c.Writer.WriteHeader(status)

	// write body
	_, _ = c.Writer.Write(body)

	return nil
}

// Caller returns the user of the authenticated identity. It returns nil if
// no such user exists.
func (c *Context) Caller() (*model.User, error) {
	// check identity
	if c.Identity == nil {
		return nil, Unauthenticated("missing credential")
	}

	// check cache
	if c.User != nil {
		return c.User, nil
	}

	// load user
	user, err := c.server.repos.Users.Get(c, c.Identity.Email)
	if err != nil {
		return nil, err
	}

	// cache user
	c.User = user

	return user, nil
}

// Authorize checks whether the authenticated identity may act for the
// specified email. Admins may act for everyone.
func (c *Context) Authorize(email string) error {
	// check identity
	if c.Identity == nil {
		return Unauthenticated("missing credential")
	}

	// check self
	if email == c.Identity.Email {
		return nil
	}

	// check admin
	user, err := c.Caller()
	if err != nil {
		return err
	}
	if !user.IsAdmin() {
		return Forbidden("identity mismatch")
	}

	return nil
}
