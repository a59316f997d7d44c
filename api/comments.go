package api

import (
	"net/http"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

func (s *Server) listComments(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list comments
	comments, err := s.repos.Comments.List(ctx, page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, comments)
}

func (s *Server) createComment(ctx *Context) error {
	// decode comment
	var comment model.Comment
	comment.Author.Email = ctx.Identity.Email
	err := ctx.Decode(&comment)
	if err != nil {
		return err
	}

	// check author
	err = ctx.Authorize(comment.Author.Email)
	if err != nil {
		return err
	}

	// check post
	post, err := s.repos.Posts.Get(ctx, coal.MustFromHex(comment.PostID))
	if err != nil {
		return err
	} else if post == nil {
		return NotFound("post not found")
	}

	// set title
	if comment.PostTitle == "" {
		comment.PostTitle = post.Title
	}

	// create comment
	res, err := s.repos.Comments.Create(ctx, &comment)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}

func (s *Server) postComments(ctx *Context) error {
	// get id
	id, err := ctx.ID("postId")
	if err != nil {
		return err
	}

	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list comments
	comments, err := s.repos.Comments.ByPost(ctx, id.Hex(), page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, comments)
}

func (s *Server) countComments(ctx *Context) error {
	// get id
	id, err := ctx.ID("postId")
	if err != nil {
		return err
	}

	// count comments
	n, err := s.repos.Comments.CountByPost(ctx, id.Hex())
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, count{Count: n})
}
