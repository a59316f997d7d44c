package api

import (
	"net/http"

	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/repo"
)

func (s *Server) listUsers(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list users
	users, err := s.repos.Users.List(ctx, page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, users)
}

func (s *Server) countUsers(ctx *Context) error {
	// count users
	n, err := s.repos.Users.Count(ctx, nil)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, count{Count: n})
}

func (s *Server) createUser(ctx *Context) error {
	// decode user
	var user model.User
	user.MembershipStatus = model.Free
	user.UserRole = model.Member
	err := ctx.Decode(&user)
	if err != nil {
		return err
	}

	// roles are only granted by admins
	if user.UserRole != model.Member || user.MembershipStatus != model.Free {
		return Forbidden("role and membership are managed separately")
	}

	// ensure user
	res, err := s.repos.Users.Ensure(ctx, &user)
	if err != nil {
		return err
	}

	// check existing
	if res.UpsertedCount == 0 {
		return ctx.Respond(http.StatusOK, map[string]interface{}{
			"message":    "user already exists",
			"insertedId": nil,
		})
	}

	return ctx.Respond(http.StatusOK, repo.InsertResult{
		Acknowledged: true,
		InsertedID:   res.UpsertedID,
	})
}

func (s *Server) getUser(ctx *Context) error {
	// get user
	user, err := s.repos.Users.Get(ctx, ctx.Param("email"))
	if err != nil {
		return err
	} else if user == nil {
		return NotFound("user not found")
	}

	return ctx.Respond(http.StatusOK, user)
}

func (s *Server) patchUser(ctx *Context) error {
	// get email
	email := ctx.Param("email")

	// decode patch
	var patch model.UserPatch
	err := ctx.Decode(&patch)
	if err != nil {
		return err
	}

	// check privileges
	if patch.UserRole != nil {
		caller, err := ctx.Caller()
		if err != nil {
			return err
		} else if !caller.IsAdmin() {
			return Forbidden("admin role required")
		}
	}
	if patch.MembershipStatus != nil {
		err = ctx.Authorize(email)
		if err != nil {
			return err
		}
	}

	// patch user
	res, err := s.repos.Users.Patch(ctx, email, &patch)
	if err != nil {
		return err
	} else if res.MatchedCount == 0 {
		return NotFound("user not found")
	}

	return ctx.Respond(http.StatusOK, res)
}
