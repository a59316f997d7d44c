package repo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/256dpi/xo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

type reportFixture struct {
	post    coal.ID
	comment coal.ID
	report  coal.ID
}

func seedReport(t *testing.T, repos *Repos, comments int64) reportFixture {
	ctx := context.Background()

	post := seedPosts(t, repos, 1)[0]

	var comment coal.ID
	for i := int64(0); i < comments; i++ {
		res, err := repos.Comments.Create(ctx, &model.Comment{PostID: post.Hex(), Author: author, Comment: "Hi"})
		require.NoError(t, err)
		_, err = repos.Posts.Bump(ctx, post, model.CommentCounter)
		require.NoError(t, err)
		comment = *res.InsertedID
	}

	res, err := repos.Reports.Create(ctx, &model.Report{
		CommentID: comment.Hex(),
		PostID:    post.Hex(),
		Reporter:  "ann@example.com",
		Status:    model.Deleted,
	})
	require.NoError(t, err)

	return reportFixture{post: post, comment: comment, report: *res.InsertedID}
}

func TestReportsCreate(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		fixture := seedReport(t, repos, 1)

		report, err := repos.Reports.Get(context.Background(), fixture.report)
		assert.NoError(t, err)
		assert.Equal(t, model.Pending, report.Status)

		list, err := repos.Reports.List(context.Background(), nil)
		assert.NoError(t, err)
		assert.Len(t, list, 1)

		res, err := repos.Reports.Create(context.Background(), &model.Report{CommentID: "foo"})
		assert.Error(t, err)
		assert.Nil(t, res)
	})
}

func TestReportsResolve(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		ctx := context.Background()
		fixture := seedReport(t, repos, 3)

		res, err := repos.Reports.Resolve(ctx, fixture.report)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ModifiedCount)

		// comment is gone
		var comment model.Comment
		assert.False(t, tester.Fetch(model.Comments, fixture.comment, &comment))
		assert.Equal(t, int64(2), tester.Count(model.Comments, nil))

		// report is deleted
		report, err := repos.Reports.Get(ctx, fixture.report)
		assert.NoError(t, err)
		assert.Equal(t, model.Deleted, report.Status)

		// counter is decremented
		post, err := repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), post.CommentsCount)

		// resolving again is rejected without side effects
		res, err = repos.Reports.Resolve(ctx, fixture.report)
		assert.Equal(t, ErrConflict, err)
		assert.Nil(t, res)

		post, err = repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(2), post.CommentsCount)

		// ignoring a resolved report is rejected
		res, err = repos.Reports.Ignore(ctx, fixture.report)
		assert.Equal(t, ErrConflict, err)
		assert.Nil(t, res)
	})
}

func TestReportsResolveMissing(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		res, err := repos.Reports.Resolve(context.Background(), coal.New())
		assert.Equal(t, ErrNotFound, err)
		assert.Nil(t, res)

		res, err = repos.Reports.Ignore(context.Background(), coal.New())
		assert.Equal(t, ErrNotFound, err)
		assert.Nil(t, res)
	})
}

func TestReportsResolveDeletedComment(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		ctx := context.Background()
		fixture := seedReport(t, repos, 1)

		// comment removed out of band
		_, err := repos.Comments.Remove(ctx, fixture.comment)
		assert.NoError(t, err)

		_, err = repos.Reports.Resolve(ctx, fixture.report)
		assert.NoError(t, err)

		// counter is not touched for a missing comment
		post, err := repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), post.CommentsCount)
	})
}

func TestReportsForeignComment(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		ctx := context.Background()
		fixture := seedReport(t, repos, 1)
		other := seedReport(t, repos, 1)

		// comment of one post reported against another
		res, err := repos.Reports.Create(ctx, &model.Report{
			CommentID: fixture.comment.Hex(),
			PostID:    other.post.Hex(),
			Reporter:  "ann@example.com",
		})
		assert.Error(t, err)
		assert.True(t, xo.IsSafe(err))
		assert.Nil(t, res)

		// mismatched report stored directly
		id := tester.Insert(model.Reports, &model.Report{
			CommentID: fixture.comment.Hex(),
			PostID:    other.post.Hex(),
			Reporter:  "ann@example.com",
			Status:    model.Pending,
			Time:      time.Now(),
		})

		_, err = repos.Reports.Resolve(ctx, id)
		assert.NoError(t, err)

		// the comment is kept and no counter moves
		var comment model.Comment
		assert.True(t, tester.Fetch(model.Comments, fixture.comment, &comment))

		post, err := repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), post.CommentsCount)

		post, err = repos.Posts.Get(ctx, other.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), post.CommentsCount)
	})
}

func TestReportsConcurrentResolve(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		ctx := context.Background()
		fixture := seedReport(t, repos, 5)

		var wg sync.WaitGroup
		var mutex sync.Mutex
		var succeeded, conflicted int
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := repos.Reports.Resolve(ctx, fixture.report)

				mutex.Lock()
				defer mutex.Unlock()
				if err == nil {
					succeeded++
				} else if err == ErrConflict {
					conflicted++
				} else {
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 9, conflicted)

		post, err := repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(4), post.CommentsCount)
	})
}

func TestReportsIgnore(t *testing.T) {
	withRepos(t, func(t *testing.T, tester *coal.Tester, repos *Repos) {
		ctx := context.Background()
		fixture := seedReport(t, repos, 1)

		res, err := repos.Reports.Ignore(ctx, fixture.report)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.ModifiedCount)

		report, err := repos.Reports.Get(ctx, fixture.report)
		assert.NoError(t, err)
		assert.Equal(t, model.Ignored, report.Status)

		// no side effects
		assert.Equal(t, int64(1), tester.Count(model.Comments, nil))
		post, err := repos.Posts.Get(ctx, fixture.post)
		assert.NoError(t, err)
		assert.Equal(t, int64(1), post.CommentsCount)

		// terminal
		_, err = repos.Reports.Resolve(ctx, fixture.report)
		assert.Equal(t, ErrConflict, err)
	})
}
