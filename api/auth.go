package api

import (
	"net/http"
)

func (s *Server) status(ctx *Context) error {
	// write text
	ctx.Writer.Header().Set("Content-Type", "text/plain; charset=utf-8")
	ctx.Writer.WriteHeader(http.StatusOK)
	_, _ = ctx.Writer.Write([]byte("Server is running"))

	return nil
}

func (s *Server) issueToken(ctx *Context) error {
	// decode body
	var body struct {
		Email string `json:"email"`
	}
	err := ctx.Decode(&body)
	if err != nil {
		return err
	}

	// issue token
	token, err := s.notary.Issue(body.Email)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, map[string]string{
		"token": token,
	})
}
