package api

import (
	"errors"
	"strings"

	"github.com/threadnexus/nexus/heat"
)

// A Gate checks a request before its handler runs. Gates run in order and
// the first error aborts the request.
type Gate func(ctx *Context) error

// Authenticate returns a gate that verifies the credential in the
// Authorization header and attaches the identity. A "Bearer" prefix is
// accepted.
func Authenticate(notary *heat.Notary) Gate {
	return func(ctx *Context) error {
		// get header
		header := strings.TrimSpace(ctx.Request.Header.Get("Authorization"))
		if header == "" {
			return Unauthenticated("missing credential")
		}

		// trim scheme
		token := header
		if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
			token = strings.TrimSpace(header[7:])
		}

		// verify token
		identity, err := notary.Verify(token)
		if errors.Is(err, heat.ErrExpiredToken) {
			return Unauthenticated("expired credential")
		} else if err != nil {
			return Unauthenticated("invalid credential")
		}

		// set identity
		ctx.Identity = identity

		return nil
	}
}

// RequireAdmin returns a gate that only passes identities whose user has the
// admin role. It must run after Authenticate.
func RequireAdmin() Gate {
	return func(ctx *Context) error {
		// check identity
		if ctx.Identity == nil {
			return Unauthenticated("missing credential")
		}

		// get user
		user, err := ctx.Caller()
		if err != nil {
			return err
		}

		// check role
		if !user.IsAdmin() {
			return Forbidden("admin role required")
		}

		return nil
	}
}
