package repo

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/256dpi/xo"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Ranking selects the order of a post listing.
type Ranking string

// The available rankings.
const (
	Newest     Ranking = "newest"
	Popularity Ranking = "popularity"
)

// Sort returns the sort fields of the ranking.
func (r Ranking) Sort() ([]string, error) {
	switch r {
	case Newest, "":
		return []string{"-time", "-_id"}, nil
	case Popularity:
		return []string{"-vote_difference", "-time", "-_id"}, nil
	default:
		return nil, xo.SF("unknown sort %q", string(r))
	}
}

// Posts manages the forum posts.
type Posts struct {
	*Collection[model.Post]
}

func byAuthor(email string) bson.M {
	// check email
	if email == "" {
		return bson.M{}
	}

	return bson.M{"author.email": email}
}

// List returns the posts newest first, optionally restricted to the posts of
// an author.
func (p *Posts) List(ctx context.Context, email string, page *coal.Page) ([]model.Post, error) {
	return p.FindMany(ctx, byAuthor(email), []string{"-time", "-_id"}, page)
}

// CountBy counts the posts, optionally restricted to the posts of an author.
func (p *Posts) CountBy(ctx context.Context, email string) (int64, error) {
	return p.Count(ctx, byAuthor(email))
}

// Ranked returns the posts in the order of the ranking.
func (p *Posts) Ranked(ctx context.Context, ranking Ranking, page *coal.Page) ([]model.Post, error) {
	// get sort
	sort, err := ranking.Sort()
	if err != nil {
		return nil, err
	}

	return p.FindMany(ctx, nil, sort, page)
}

// Get returns the post with the specified id or nil.
func (p *Posts) Get(ctx context.Context, id coal.ID) (*model.Post, error) {
	return p.FindOne(ctx, bson.M{"_id": id})
}

// Create will insert a new post. Counters start at zero.
func (p *Posts) Create(ctx context.Context, post *model.Post) (*InsertResult, error) {
	// reset fields
	post.ID = coal.ID{}
	post.Tags = model.NormalizeTags(post.Tags)
	post.CommentsCount = 0
	post.UpvoteCount = 0
	post.DownvoteCount = 0
	post.VoteDifference = 0
	if post.Time.IsZero() {
		post.Time = time.Now()
	}

	// validate
	err := post.Validate()
	if err != nil {
		return nil, err
	}

	return p.Insert(ctx, post)
}

// Bump will increment the counter of the specified post by one.
func (p *Posts) Bump(ctx context.Context, id coal.ID, counter model.Counter) (*UpdateResult, error) {
	// get increments
	increments, err := counter.Increments()
	if err != nil {
		return nil, err
	}

	// prepare fields
	fields := bson.M{}
	for field, n := range increments {
		fields[field] = n
	}

	return p.Increment(ctx, bson.M{"_id": id}, fields)
}

// Remove will delete the post with the specified id. Comments of the post
// are kept.
func (p *Posts) Remove(ctx context.Context, id coal.ID) (*DeleteResult, error) {
	return p.Delete(ctx, bson.M{"_id": id})
}

// SearchTags returns the posts that have a tag containing the term ignoring
// case, newest first.
func (p *Posts) SearchTags(ctx context.Context, term string) ([]model.Post, error) {
	// prepare term
	term = strings.ToLower(term)

	// collect matching posts
	list := make([]model.Post, 0)
	err := p.Each(ctx, bson.M{"tags": bson.M{"$exists": true}}, func(post *model.Post) error {
		for _, tag := range post.Tags {
			if strings.Contains(strings.ToLower(tag), term) {
				list = append(list, *post)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// sort by time and id
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].Time.Equal(list[j].Time) {
			return list[i].Time.After(list[j].Time)
		}
		return list[i].ID.Hex() > list[j].ID.Hex()
	})

	return list, nil
}

// SetCommentsCount will set the comment count of a post if it still holds
// the previous value.
func (p *Posts) SetCommentsCount(ctx context.Context, id coal.ID, previous, count int64) (*UpdateResult, error) {
	return p.Set(ctx, bson.M{
		"_id":            id,
		"comments_count": previous,
	}, bson.M{
		"comments_count": count,
	})
}
