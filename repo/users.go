package repo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/threadnexus/nexus/coal"
	"github.com/threadnexus/nexus/model"
)

// Users manages the user accounts. Users are keyed by their email.
type Users struct {
	*Collection[model.User]
}

// List returns the users in creation order.
func (u *Users) List(ctx context.Context, page *coal.Page) ([]model.User, error) {
	return u.FindMany(ctx, nil, []string{"_id"}, page)
}

// Get returns the user with the specified email or nil.
func (u *Users) Get(ctx context.Context, email string) (*model.User, error) {
	return u.FindOne(ctx, bson.M{"email": email})
}

// Ensure will create the user if no user with the same email exists. The
// result reports whether a user has been inserted.
func (u *Users) Ensure(ctx context.Context, user *model.User) (*UpdateResult, error) {
	// apply defaults
	if user.MembershipStatus == "" {
		user.MembershipStatus = model.Free
	}
	if user.UserRole == "" {
		user.UserRole = model.Member
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	// validate
	err := user.Validate()
	if err != nil {
		return nil, err
	}

	// upsert by email
	res, err := u.SetOnInsert(ctx, bson.M{"email": user.Email}, bson.M{
		"email":             user.Email,
		"name":              user.Name,
		"image":             user.Image,
		"membership_status": user.MembershipStatus,
		"user_role":         user.UserRole,
		"created_at":        user.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		// lost a concurrent upsert
		return &UpdateResult{Acknowledged: true}, nil
	} else if err != nil {
		return nil, err
	}

	return res, nil
}

// Patch will apply the patch to the user with the specified email.
func (u *Users) Patch(ctx context.Context, email string, patch *model.UserPatch) (*UpdateResult, error) {
	// validate
	err := patch.Validate()
	if err != nil {
		return nil, err
	}

	return u.Set(ctx, bson.M{"email": email}, patch.Fields())
}
