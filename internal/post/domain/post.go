package domain

import (
	"time"

	userdomain "github.com/avolkov/scribe/internal/user/domain"
)

type ID string

type Post struct {
	ID        ID
	Title     string
	Content   string
	AuthorID  userdomain.ID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WithAuthor pairs a post with its author's public projection.
type WithAuthor struct {
	Post
	Author userdomain.Public
}

// Patch is a partial update; nil fields are left unchanged.
type Patch struct {
	Title   *string
	Content *string
}
