package impl

import (
	"context"
	"log/slog"

	"inkwell/config"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	"inkwell/internal/usecase"
	"inkwell/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// blogService implements the BlogUsecase interface.
type blogService struct {
	txManager  repository.TransactionManager
	pagination *config.PaginationConfig
	logger     *slog.Logger
}

// NewBlogService is the constructor for blogService.
func NewBlogService(
	txManager repository.TransactionManager,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.BlogUsecase {
	return &blogService{
		txManager:  txManager,
		pagination: cfg.Pagination,
		logger:     logger,
	}
}

// CreatePost creates a post with a slug derived from the title.
func (srv *blogService) CreatePost(ctx context.Context, authorID uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	srv.logger.Info("Creating post", "title", input.Title, "authorID", authorID)

	var created *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		tags, err := repoFactory.TagRepo().FindOrCreateByNames(ctx, input.TagNames)
		if err != nil {
			return errors.Wrap(err, "failed to resolve tags")
		}

		post := &entity.Post{
			Title:     input.Title,
			Slug:      util.Slugify(input.Title),
			Summary:   input.Summary,
			Content:   input.Content,
			Published: input.Published,
			AuthorID:  authorID,
			Tags:      tags,
		}
		if err := repoFactory.PostRepo().Create(ctx, post); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrConflict.WrapMessage("a post with this title already exists")
			}

			return errors.WithStack(err)
		}
		created = post

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to create post", "error", err)

		return nil, err
	}

	return created, nil
}

// UpdatePost rewrites a post's content and tag set.
func (srv *blogService) UpdatePost(ctx context.Context, postID uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	var updated *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		post, err := postRepo.FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("post not found")
			}

			return errors.Wrap(err, "failed to find post")
		}

		tags, err := repoFactory.TagRepo().FindOrCreateByNames(ctx, input.TagNames)
		if err != nil {
			return errors.Wrap(err, "failed to resolve tags")
		}

		post.Title = input.Title
		post.Slug = util.Slugify(input.Title)
		post.Summary = input.Summary
		post.Content = input.Content
		post.Published = input.Published
		post.Tags = tags

		if err := postRepo.Update(ctx, post); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlug) {
				return domainerrors.ErrConflict.WrapMessage("a post with this title already exists")
			}

			return errors.WithStack(err)
		}
		updated = post

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to update post", "error", err, "postID", postID)

		return nil, err
	}

	return updated, nil
}

// DeletePost removes a post and its comments.
func (srv *blogService) DeletePost(ctx context.Context, postID uuid.UUID) error {
	srv.logger.Info("Deleting post", "postID", postID)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.PostRepo().Delete(ctx, postID); err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("post not found")
			}

			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to delete post", "error", err, "postID", postID)

		return err
	}

	return nil
}

// GetPostBySlug returns one post, hiding drafts from non-admin callers.
func (srv *blogService) GetPostBySlug(ctx context.Context, slug string, includeDrafts bool) (*entity.Post, error) {
	var post *entity.Post

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.PostRepo().FindBySlug(ctx, slug)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("post not found")
			}

			return errors.Wrap(err, "failed to find post")
		}
		// A draft behaves like a missing post for ordinary readers.
		if !found.Published && !includeDrafts {
			return domainerrors.ErrNotFound.WrapMessage("post not found")
		}
		post = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return post, nil
}

// ListPosts returns a page of posts.
func (srv *blogService) ListPosts(ctx context.Context, input *usecase.ListPostsInput) (*usecase.PostPage, error) {
	page, pageSize := srv.pagination.Normalize(input.Page, input.PageSize)

	var result *usecase.PostPage

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		posts, total, err := repoFactory.PostRepo().List(ctx, repository.PostFilter{
			PublishedOnly: !input.IncludeDrafts,
			TagSlug:       input.TagSlug,
			Page:          page,
			PageSize:      pageSize,
		})
		if err != nil {
			return errors.Wrap(err, "failed to list posts")
		}
		result = &usecase.PostPage{Posts: posts, Total: total, Page: page, PageSize: pageSize}

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to list posts", "error", err)

		return nil, err
	}

	return result, nil
}

// AddComment attaches a comment to a published post.
func (srv *blogService) AddComment(ctx context.Context, postID, authorID uuid.UUID, input *usecase.CommentInput) (*entity.Comment, error) {
	var created *entity.Comment

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		post, err := repoFactory.PostRepo().FindByID(ctx, postID)
		if err != nil {
			if errors.Is(err, repository.ErrPostNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("post not found")
			}

			return errors.Wrap(err, "failed to find post")
		}
		if !post.Published {
			return domainerrors.ErrNotFound.WrapMessage("post not found")
		}

		author, err := repoFactory.IdentityRepo().FindByID(ctx, authorID)
		if err != nil {
			return errors.Wrap(err, "failed to find comment author")
		}

		name := author.DisplayName
		if name == "" {
			name = author.Username
		}
		comment := &entity.Comment{
			PostID:     postID,
			AuthorID:   authorID,
			AuthorName: name,
			Content:    input.Content,
		}
		if err := repoFactory.CommentRepo().Create(ctx, comment); err != nil {
			return errors.WithStack(err)
		}
		created = comment

		return nil
	})
	if err != nil {
		srv.logger.Error("Failed to add comment", "error", err, "postID", postID)

		return nil, err
	}

	return created, nil
}

// DeleteComment removes a comment, enforcing ownership for non-admins.
func (srv *blogService) DeleteComment(ctx context.Context, commentID, callerID uuid.UUID, callerIsAdmin bool) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commentRepo := repoFactory.CommentRepo()

		comment, err := commentRepo.FindByID(ctx, commentID)
		if err != nil {
			if errors.Is(err, repository.ErrCommentNotFound) {
				return domainerrors.ErrNotFound.WrapMessage("comment not found")
			}

			return errors.Wrap(err, "failed to find comment")
		}

		if !callerIsAdmin && comment.AuthorID != callerID {
			return domainerrors.ErrForbidden.WrapMessage("comment does not belong to caller")
		}

		return commentRepo.Delete(ctx, commentID)
	})
	if err != nil {
		srv.logger.Error("Failed to delete comment", "error", err, "commentID", commentID)

		return err
	}

	return nil
}

// ListComments returns the comments of a post, oldest first.
func (srv *blogService) ListComments(ctx context.Context, postID uuid.UUID) ([]*entity.Comment, error) {
	var comments []*entity.Comment

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.CommentRepo().ListByPostID(ctx, postID)
		if err != nil {
			return errors.Wrap(err, "failed to list comments")
		}
		comments = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// ListTags returns all tags.
func (srv *blogService) ListTags(ctx context.Context) ([]*entity.Tag, error) {
	var tags []*entity.Tag

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.TagRepo().List(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to list tags")
		}
		tags = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return tags, nil
}

// GetAbout returns the about page.
func (srv *blogService) GetAbout(ctx context.Context) (*entity.AboutPage, error) {
	var page *entity.AboutPage

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AboutRepo().Get(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to get about page")
		}
		page = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return page, nil
}

// UpdateAbout rewrites the about page.
func (srv *blogService) UpdateAbout(ctx context.Context, input *usecase.AboutInput) (*entity.AboutPage, error) {
	page := &entity.AboutPage{Title: input.Title, Content: input.Content}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.AboutRepo().Upsert(ctx, page)
	})
	if err != nil {
		srv.logger.Error("Failed to update about page", "error", err)

		return nil, err
	}

	return page, nil
}
