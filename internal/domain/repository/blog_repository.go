// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for blog persistence.
var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrCommentNotFound is returned when a comment is not found.
	ErrCommentNotFound = errors.New("comment not found")
	// ErrTagNotFound is returned when a tag is not found.
	ErrTagNotFound = errors.New("tag not found")
	// ErrDuplicateSlug is returned when a slug collides with an existing record.
	ErrDuplicateSlug = errors.New("slug already exists")
)

// PostFilter narrows post listings.
type PostFilter struct {
	PublishedOnly bool
	TagSlug       string
	Page          int // 1-based
	PageSize      int
}

// PostRepository defines the standard operations for blog post persistence.
type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) error
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Post, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Post, error)
	// List returns a page of posts plus the total count for the filter.
	List(ctx context.Context, filter PostFilter) ([]*entity.Post, int64, error)
}

// CommentRepository defines the standard operations for comment persistence.
type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Comment, error)
	ListByPostID(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)
}

// TagRepository defines the standard operations for tag persistence.
// Tags are shared between blog posts and shop products.
type TagRepository interface {
	Create(ctx context.Context, tag *entity.Tag) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindBySlug(ctx context.Context, slug string) (*entity.Tag, error)
	List(ctx context.Context) ([]*entity.Tag, error)
	// FindOrCreateByNames resolves tag names to entities, creating missing ones.
	FindOrCreateByNames(ctx context.Context, names []string) ([]*entity.Tag, error)
}

// AboutRepository manages the single "about me" document.
type AboutRepository interface {
	Get(ctx context.Context) (*entity.AboutPage, error)
	Upsert(ctx context.Context, page *entity.AboutPage) error
}
