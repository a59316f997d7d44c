package model

import (
	"testing"

	"github.com/256dpi/xo"
	"github.com/stretchr/testify/assert"

	"github.com/threadnexus/nexus/coal"
)

var author = Author{Name: "Joe", Email: "joe@example.com"}

func TestUserValidate(t *testing.T) {
	user := &User{Email: "joe@example.com", MembershipStatus: Free, UserRole: Member}
	assert.NoError(t, user.Validate())
	assert.False(t, user.IsAdmin())

	user.UserRole = Admin
	assert.True(t, user.IsAdmin())

	user.UserRole = "root"
	assert.Error(t, user.Validate())

	user = &User{Email: "joe", MembershipStatus: Free, UserRole: Member}
	err := user.Validate()
	assert.Error(t, err)
	assert.True(t, xo.IsSafe(err))

	user = &User{Email: "joe@example.com", MembershipStatus: "gold", UserRole: Member}
	assert.Error(t, user.Validate())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
}

func TestUserPatch(t *testing.T) {
	patch := &UserPatch{}
	assert.Error(t, patch.Validate())

	role := Admin
	patch = &UserPatch{UserRole: &role}
	assert.NoError(t, patch.Validate())
	assert.Equal(t, map[string]interface{}{
		"user_role": Admin,
	}, patch.Fields())

	membership := Membership("gold")
	patch = &UserPatch{MembershipStatus: &membership}
	assert.Error(t, patch.Validate())

	membership = Subscribed
	assert.NoError(t, patch.Validate())
	assert.Equal(t, map[string]interface{}{
		"membership_status": Subscribed,
	}, patch.Fields())
}

func TestPostValidate(t *testing.T) {
	post := &Post{Author: author, Title: "Hello", Tags: []string{"go"}}
	assert.NoError(t, post.Validate())

	post.Title = "  "
	assert.Error(t, post.Validate())

	post = &Post{Author: Author{Email: "bad"}, Title: "Hello"}
	assert.Error(t, post.Validate())

	post = &Post{Author: author, Title: "Hello", Tags: []string{""}}
	assert.Error(t, post.Validate())

	post = &Post{Author: author, Title: "Hello", UpvoteCount: -1}
	assert.Error(t, post.Validate())
}

func TestCounterIncrements(t *testing.T) {
	inc, err := CommentCounter.Increments()
	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"comments_count": 1}, inc)

	inc, err = UpvoteCounter.Increments()
	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"upvote_count": 1, "vote_difference": 1}, inc)

	inc, err = DownvoteCounter.Increments()
	assert.NoError(t, err)
	assert.Equal(t, map[string]int64{"downvote_count": 1, "vote_difference": -1}, inc)

	inc, err = Counter("views").Increments()
	assert.Error(t, err)
	assert.Nil(t, inc)
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"go", "db"}, NormalizeTags([]string{" go ", "", "db", "  "}))
	assert.Equal(t, []string{}, NormalizeTags(nil))
}

func TestCommentValidate(t *testing.T) {
	comment := &Comment{PostID: coal.New().Hex(), Author: author, Comment: "Nice"}
	assert.NoError(t, comment.Validate())

	comment.PostID = "123"
	assert.Error(t, comment.Validate())

	comment = &Comment{PostID: coal.New().Hex(), Author: author}
	assert.Error(t, comment.Validate())
}

func TestReportValidate(t *testing.T) {
	report := &Report{
		CommentID: coal.New().Hex(),
		PostID:    coal.New().Hex(),
		Reporter:  "joe@example.com",
		Status:    Pending,
	}
	assert.NoError(t, report.Validate())

	report.Status = "resolved"
	assert.Error(t, report.Validate())

	report.Status = Pending
	report.CommentID = "foo"
	assert.Error(t, report.Validate())
}

func TestTagAndAnnouncementValidate(t *testing.T) {
	assert.NoError(t, (&Tag{Label: "go"}).Validate())
	assert.Error(t, (&Tag{}).Validate())

	assert.NoError(t, (&Announcement{Author: author, Title: "News"}).Validate())
	assert.Error(t, (&Announcement{Author: author}).Validate())
}
