package api

import (
	"net/http"

	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/repo"
)

func (s *Server) listReports(ctx *Context) error {
	// get page
	page, err := ctx.Page()
	if err != nil {
		return err
	}

	// list reports
	reports, err := s.repos.Reports.List(ctx, page)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, reports)
}

func (s *Server) createReport(ctx *Context) error {
	// decode report
	var report model.Report
	report.Reporter = ctx.Identity.Email
	report.Status = model.Pending
	err := ctx.Decode(&report)
	if err != nil {
		return err
	}

	// check reporter
	err = ctx.Authorize(report.Reporter)
	if err != nil {
		return err
	}

	// create report
	res, err := s.repos.Reports.Create(ctx, &report)
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}

func (s *Server) moderateReport(ctx *Context) error {
	// get id
	id, err := ctx.ID("id")
	if err != nil {
		return err
	}

	// get report
	report, err := s.repos.Reports.Get(ctx, id)
	if err != nil {
		return err
	} else if report == nil {
		return NotFound("report not found")
	}

	// check references
	if ctx.Has("commentId") && ctx.Query("commentId") != report.CommentID {
		return InvalidArgument("comment id mismatch")
	}
	if ctx.Has("postId") && ctx.Query("postId") != report.PostID {
		return InvalidArgument("post id mismatch")
	}

	// apply action
	var res *repo.UpdateResult
	switch ctx.Query("status") {
	case "resolve":
		res, err = s.repos.Reports.Resolve(ctx, id)
	case "ignore":
		res, err = s.repos.Reports.Ignore(ctx, id)
	default:
		return InvalidArgument("status must be resolve or ignore")
	}
	if err != nil {
		return err
	}

	return ctx.Respond(http.StatusOK, res)
}
