// Package model defines the documents stored by the forum.
package model

import (
	"strings"

	"github.com/256dpi/xo"
	"github.com/asaskevich/govalidator"
)

// The collection names.
const (
	Users         = "users"
	Posts         = "posts"
	Comments      = "comments"
	Reports       = "reports"
	Tags          = "tags"
	Announcements = "announcements"
)

// Collections lists all collection names.
func Collections() []string {
	return []string{Users, Posts, Comments, Reports, Tags, Announcements}
}

// Validatable is implemented by documents and patches that are checked
// before they reach a repository.
type Validatable interface {
	Validate() error
}

// Author is the embedded description of the user that wrote a document.
type Author struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Image string `json:"image,omitempty" bson:"image,omitempty"`
}

// Validate will validate the author.
func (a *Author) Validate() error {
	// check email
	if !govalidator.IsEmail(a.Email) {
		return xo.SF("invalid author email")
	}

	return nil
}

func blank(str string) bool {
	return strings.TrimSpace(str) == ""
}
