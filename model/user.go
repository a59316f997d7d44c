package model

import (
	"time"

	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"

	"github.com/threadnexus/nexus/coal"
)

// Membership is the subscription state of a user.
type Membership string

// The available memberships.
const (
	Free       Membership = "free"
	Subscribed Membership = "subscribed"
)

// Valid returns whether the membership is known.
func (m Membership) Valid() bool {
	return m == Free || m == Subscribed
}

// Role is the privilege level of a user.
type Role string

// The available roles.
const (
	Member Role = "member"
	Admin  Role = "admin"
)

// Valid returns whether the role is known.
func (r Role) Valid() bool {
	return r == Member || r == Admin
}

// User is an account identified by its email.
type User struct {
	ID               coal.ID    `json:"_id" bson:"_id,omitempty"`
	Email            string     `json:"email" bson:"email"`
	Name             string     `json:"name,omitempty" bson:"name,omitempty"`
	Image            string     `json:"image,omitempty" bson:"image,omitempty"`
	MembershipStatus Membership `json:"membership_status" bson:"membership_status"`
	UserRole         Role       `json:"user_role" bson:"user_role"`
	CreatedAt        time.Time  `json:"created_at" bson:"created_at"`
}

// IsAdmin returns whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.UserRole == Admin
}

// Validate will validate the user.
func (u *User) Validate() error {
	// check email
	if !govalidator.IsEmail(u.Email) {
		return xo.SF("invalid email")
	}

	// check membership
	if !u.MembershipStatus.Valid() {
		return xo.SF("invalid membership status")
	}

	// check role
	if !u.UserRole.Valid() {
		return xo.SF("invalid user role")
	}

	return nil
}

// UserPatch describes a change to the membership or role of a user.
type UserPatch struct {
	MembershipStatus *Membership `json:"membership_status,omitempty"`
	UserRole         *Role       `json:"user_role,omitempty"`
}

// Validate will validate the patch.
func (p *UserPatch) Validate() error {
	// check presence
	if p.MembershipStatus == nil && p.UserRole == nil {
		return xo.SF("empty patch")
	}

	// check membership
	if p.MembershipStatus != nil && !p.MembershipStatus.Valid() {
		return xo.SF("invalid membership status")
	}

	// check role
	if p.UserRole != nil && !p.UserRole.Valid() {
		return xo.SF("invalid user role")
	}

	return nil
}

// Fields returns the document fields set by the patch.
func (p *UserPatch) Fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.MembershipStatus != nil {
		fields["membership_status"] = *p.MembershipStatus
	}
	if p.UserRole != nil {
		fields["user_role"] = *p.UserRole
	}

	return fields
}
