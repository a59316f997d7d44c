package api

import (
	"net/http"
	"strings"

	"github.com/threadnexus/nexus/model"
)

func (s *Server) listTags(ctx *Context) error {
	// search posts by tag
	if ctx.Query("search") != "" {
		posts, err := s.repos.Posts.SearchTags(ctx, ctx.Query("search"))
		if err != nil {
			return err
		}

		return ctx.Respond(http.StatusOK, posts)
	}

	// list tags
	tags, err := s.repos.Tags.List(ctx)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, tags)
}

func (s *Server) createTag(ctx *Context) error {
	// decode body
	var body struct {
		Label string `json:"label"`
		Tag   string `json:"tag"`
	}
	err := ctx.Decode(&body)
	if err != nil {
		return err
	}

	// get label
	label := body.Label
	if strings.TrimSpace(label) == "" {
		label = body.Tag
	}

	// create tag
	res, err := s.repos.Tags.Create(ctx, &model.Tag{Label: label})
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}
