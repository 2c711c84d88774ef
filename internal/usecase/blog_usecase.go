// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"inkwell/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// PostInput defines the data for creating or updating a post.
type PostInput struct {
	Title     string
	Summary   string
	Content   string
	Published bool
	TagNames  []string
}

// ListPostsInput narrows and pages post listings.
type ListPostsInput struct {
	IncludeDrafts bool // Only honored for admin callers.
	TagSlug       string
	Page          int
	PageSize      int
}

// CommentInput defines the data for adding a comment to a post.
type CommentInput struct {
	Content string
}

// AboutInput defines the data for updating the about page.
type AboutInput struct {
	Title   string
	Content string
}

// --- Output DTOs ---

// PostPage is one page of posts with the total count for the filter.
type PostPage struct {
	Posts    []*entity.Post
	Total    int64
	Page     int
	PageSize int
}

// BlogUsecase defines the interface for blog content operations.
type BlogUsecase interface {
	// CreatePost creates a post authored by the given admin identity. The
	// slug is derived from the title; tag names are resolved or created.
	CreatePost(ctx context.Context, authorID uuid.UUID, input *PostInput) (*entity.Post, error)

	// UpdatePost rewrites a post's content and tag set.
	UpdatePost(ctx context.Context, postID uuid.UUID, input *PostInput) (*entity.Post, error)

	// DeletePost removes a post and its comments.
	DeletePost(ctx context.Context, postID uuid.UUID) error

	// GetPostBySlug returns one post. Unpublished posts are only visible
	// when includeDrafts is set.
	GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (*entity.Post, error)

	// ListPosts returns a page of posts.
	ListPosts(ctx context.Context, input *ListPostsInput) (*PostPage, error)

	// AddComment attaches a comment to a published post on behalf of the
	// given identity. The display name is captured at write time.
	AddComment(ctx context.Context, postID, authorID uuid.UUID, input *CommentInput) (*entity.Comment, error)

	// DeleteComment removes a comment. Authors may delete their own;
	// admins may delete any.
	DeleteComment(ctx context.Context, commentID, callerID uuid.UUID, callerIsAdmin bool) error

	// ListComments returns the comments of a post, oldest first.
	ListComments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error)

	// ListTags returns all tags.
	ListTags(ctx context.Context) ([]*entity.Tag, error)

	// GetAbout returns the about page.
	GetAbout(ctx context.Context) (*entity.AboutPage, error)

	// UpdateAbout rewrites the about page.
	UpdateAbout(ctx context.Context, input *AboutInput) (*entity.AboutPage, error)
}
