// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Post is a single blog article.
type Post struct {
	ID        uuid.UUID
	Title     string
	Slug      string // URL-safe identifier derived from the title, unique.
	Summary   string // Short teaser shown on listing pages.
	Content   string // Full article body (markdown).
	Published bool   // Unpublished posts are visible to admins only.
	AuthorID  uuid.UUID
	Tags      []*Tag
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is a reader response attached to a post.
type Comment struct {
	ID         uuid.UUID
	PostID     uuid.UUID
	AuthorID   uuid.UUID // The identity who wrote the comment.
	AuthorName string    // Display name captured at write time.
	Content    string
	CreatedAt  time.Time
}

// Tag labels posts and products. Shared between blog and shop.
type Tag struct {
	ID   uuid.UUID
	Name string // Unique display name.
	Slug string // URL-safe form of the name.
}

// AboutPage is the single editable "about me" document.
type AboutPage struct {
	Title     string
	Content   string
	UpdatedAt time.Time
}
