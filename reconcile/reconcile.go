// Package reconcile repairs the denormalized comment counts of posts.
package reconcile

import (
	"context"

	"github.com/256dpi/xo"
	"github.com/hashicorp/go-hclog"
	"github.com/robfig/cron/v3"

	"github.com/threadnexus/nexus/model"
	"github.com/threadnexus/nexus/repo"
)

// Result summarizes a reconciliation run.
type Result struct {
	Checked  int
	Repaired int
}

// Run will recompute the comment count of every post from the comments
// collection and store counts that drifted. A count that changed since it was
// read is left for the next run.
func Run(ctx context.Context, repos *repo.Repos) (*Result, error) {
	// check posts
	var result Result
	err := repos.Posts.Each(ctx, nil, func(post *model.Post) error {
		result.Checked++

		// count comments
		n, err := repos.Comments.CountByPost(ctx, post.ID.Hex())
		if err != nil {
			return err
		}

		// compare count
		if post.CommentsCount == n {
			return nil
		}

		// repair count
		res, err := repos.Posts.SetCommentsCount(ctx, post.ID, post.CommentsCount, n)
		if err != nil {
			return err
		} else if res.MatchedCount > 0 {
			result.Repaired++
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// Scheduler runs reconciliations on a cron schedule.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler creates a scheduler that runs a reconciliation using the
// repositories on the specified schedule. Failed runs are passed to the
// reporter.
func NewScheduler(schedule string, repos *repo.Repos, logger hclog.Logger, reporter func(error)) (*Scheduler, error) {
	// create cron
	c := cron.New()

	// add job
	_, err := c.AddFunc(schedule, func() {
		result, err := Run(context.Background(), repos)
		if err != nil {
			reporter(xo.W(err))
			return
		}

		logger.Info("reconciled comment counts", "checked", result.Checked, "repaired", result.Repaired)
	})
	if err != nil {
		return nil, xo.WF(err, "invalid schedule %q", schedule)
	}

	return &Scheduler{cron: c}, nil
}

// Start will start the scheduler in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop will stop the scheduler and wait for a running reconciliation.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
