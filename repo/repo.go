package repo

import (
	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Repos bundles the repositories of all collections.
type Repos struct {
	Users         *Users
	Posts         *Posts
	Comments      *Comments
	Reports       *Reports
	Tags          *Tags
	Announcements *Announcements
}

// New creates the repositories using the provided store.
func New(store *coal.Store) *Repos {
	posts := &Posts{NewCollection[model.Post](store, model.Posts)}
	comments := &Comments{NewCollection[model.Comment](store, model.Comments)}

	return &Repos{
		Users:    &Users{NewCollection[model.User](store, model.Users)},
		Posts:    posts,
		Comments: comments,
		Reports: &Reports{
			Collection: NewCollection[model.Report](store, model.Reports),
			store:      store,
			posts:      posts,
			comments:   comments,
		},
		Tags:          &Tags{NewCollection[model.Tag](store, model.Tags)},
		Announcements: &Announcements{NewCollection[model.Announcement](store, model.Announcements)},
	}
}

// Indexer returns an indexer with the indexes required by the repositories.
func Indexer() *coal.Indexer {
	indexer := coal.NewIndexer()
	indexer.Add(model.Users, true, "email")
	indexer.Add(model.Posts, false, "author.email", "-time")
	indexer.Add(model.Posts, false, "-vote_difference", "-time")
	indexer.Add(model.Posts, false, "tags")
	indexer.Add(model.Comments, false, "postId", "time")
	indexer.Add(model.Reports, false, "status", "-time")
	indexer.Add(model.Announcements, false, "-date")
	return indexer
}
