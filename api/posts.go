package api

import (
	"net/http"

	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/repo"
)

var counters = []model.Counter{
	model.CommentCounter,
	model.UpvoteCounter,
	model.DownvoteCounter,
}

func (s *Server) listPosts(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list posts
	posts, err := s.repos.Posts.List(ctx, ctx.Query("email"), page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, posts)
}

func (s *Server) countPosts(ctx *Context) error {
	// count posts
	n, err := s.repos.Posts.CountBy(ctx, ctx.Query("email"))
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, count{Count: n})
}

func (s *Server) createPost(ctx *Context) error {
	// decode post
	var post model.Post
	if post.Author.Email == "" {
		post.Author.Email = ctx.Identity.Email
	}
	err := ctx.Decode(&post)
	if err != nil {
		return err
	}

	// check author
	err = ctx.Authorize(post.Author.Email)
	if err != nil {
		return err
	}

	// create post
	res, err := s.repos.Posts.Create(ctx, &post)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}

func (s *Server) getPost(ctx *Context) error {
	// get id
	id, err := ctx.ID("id")
	if err != nil {
		return err
	}

	// get post
	post, err := s.repos.Posts.Get(ctx, id)
	if err != nil {
		return err
	} else if post == nil {
		return NotFound("post not found")
	}

	return ctx.Respond(http.StatusOK, post)
}

func (s *Server) bumpPost(ctx *Context) error {
	// get id
	id, err := ctx.ID("id")
	if err != nil {
		return err
	}

	// get counter
	var counter model.Counter
	for _, c := range counters {
		if ctx.Has(string(c)) {
			if counter != "" {
				return InvalidArgument("multiple counters")
			}
			counter = c
		}
	}
	if counter == "" {
		return InvalidArgument("missing counter")
	}

	// bump counter
	res, err := s.repos.Posts.Bump(ctx, id, counter)
	if err != nil {
		return err
	} else if res.MatchedCount == 0 {
		return NotFound("post not found")
	}

	return ctx.Respond(http.StatusOK, res)
}

func (s *Server) deletePost(ctx *Context) error {
	// get id
	id, err := ctx.ID("id")
	if err != nil {
		return err
	}

	// get post
	post, err := s.repos.Posts.Get(ctx, id)
	if err != nil {
		return err
	} else if post == nil {
		return NotFound("post not found")
	}

	// check author
	err = ctx.Authorize(post.Author.Email)
	if err != nil {
		return err
	}

	// delete post
	res, err := s.repos.Posts.Remove(ctx, id)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}

func (s *Server) sortPosts(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// get ranking
	ranking := repo.Ranking(ctx.Query("sort"))
	if ranking == "" {
		ranking = repo.Newest
	}

	// list posts
	posts, err := s.repos.Posts.Ranked(ctx, ranking, page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, posts)
}
