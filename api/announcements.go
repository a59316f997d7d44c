package api

import (
	"net/http"

	"github.com/threadnexus/nexus/model"
)

func (s *Server) listAnnouncements(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list announcements
	announcements, err := s.repos.Announcements.List(ctx, page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, announcements)
}

func (s *Server) countAnnouncements(ctx *Context) error {
	// count announcements
	n, err := s.repos.Announcements.Count(ctx, nil)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, count{Count: n})
}

func (s *Server) createAnnouncement(ctx *Context) error {
	// decode announcement
	var announcement model.Announcement
	announcement.Author = model.Author{
		Name:  ctx.User.Name,
		Email: ctx.User.Email,
		Image: ctx.User.Image,
	}
	err := ctx.Decode(&announcement)
	if err != nil {
		return err
	}

	// create announcement
	res, err := s.repos.Announcements.Create(ctx, &announcement)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}
