package impl

import (
	"context"
	"testing"

	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/domain/repository"
	mockRepo "inkwell/internal/mocks/repository"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBlogService_CreatePost_SlugAndTags(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	tagRepo := mockRepo.NewMockTagRepository(t)

	factory.EXPECT().TagRepo().Return(tagRepo)
	factory.EXPECT().PostRepo().Return(postRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	authorID := uuid.New()
	goTag := &entity.Tag{ID: uuid.New(), Name: "Go", Slug: "go"}

	tagRepo.EXPECT().
		FindOrCreateByNames(ctx, []string{"Go"}).
		Return([]*entity.Tag{goTag}, nil)
	postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Run(func(_ context.Context, post *entity.Post) {
			assert.Equal(t, "hello-world-again", post.Slug)
			assert.Equal(t, authorID, post.AuthorID)
			assert.Equal(t, []*entity.Tag{goTag}, post.Tags)
		}).
		Return(nil)

	post, err := service.CreatePost(ctx, authorID, &usecase.PostInput{
		Title:     "Hello, World! Again",
		Content:   "body",
		Published: true,
		TagNames:  []string{"Go"},
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-again", post.Slug)
}

func TestBlogService_CreatePost_DuplicateTitle(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	tagRepo := mockRepo.NewMockTagRepository(t)

	factory.EXPECT().TagRepo().Return(tagRepo)
	factory.EXPECT().PostRepo().Return(postRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	tagRepo.EXPECT().FindOrCreateByNames(ctx, mock.Anything).Return(nil, nil)
	postRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Post")).
		Return(repository.ErrDuplicateSlug)

	_, err := service.CreatePost(ctx, uuid.New(), &usecase.PostInput{Title: "Taken", Content: "body"})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)
}

func TestBlogService_GetPostBySlug_DraftVisibility(t *testing.T) {
	ctx := context.Background()
	draft := &entity.Post{ID: uuid.New(), Slug: "draft-post", Published: false}

	newService := func(t *testing.T) (usecase.BlogUsecase, *mockRepo.MockPostRepository) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		postRepo := mockRepo.NewMockPostRepository(t)
		factory.EXPECT().PostRepo().Return(postRepo)

		return NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger()), postRepo
	}

	t.Run("hidden from readers", func(t *testing.T) {
		service, postRepo := newService(t)
		postRepo.EXPECT().FindBySlug(ctx, "draft-post").Return(draft, nil)

		_, err := service.GetPostBySlug(ctx, "draft-post", false)
		assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	})

	t.Run("visible to admins", func(t *testing.T) {
		service, postRepo := newService(t)
		postRepo.EXPECT().FindBySlug(ctx, "draft-post").Return(draft, nil)

		post, err := service.GetPostBySlug(ctx, "draft-post", true)
		require.NoError(t, err)
		assert.Equal(t, draft, post)
	})
}

func TestBlogService_ListPosts_NormalizesPaging(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	factory.EXPECT().PostRepo().Return(postRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	postRepo.EXPECT().
		List(ctx, repository.PostFilter{PublishedOnly: true, Page: 1, PageSize: 10}).
		Return([]*entity.Post{}, 0, nil)

	result, err := service.ListPosts(ctx, &usecase.ListPostsInput{Page: 0, PageSize: -5})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PageSize)
}

func TestBlogService_AddComment_UsesDisplayName(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	identityRepo := mockRepo.NewMockIdentityRepository(t)
	commentRepo := mockRepo.NewMockCommentRepository(t)

	factory.EXPECT().PostRepo().Return(postRepo)
	factory.EXPECT().IdentityRepo().Return(identityRepo)
	factory.EXPECT().CommentRepo().Return(commentRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	postID := uuid.New()
	authorID := uuid.New()

	postRepo.EXPECT().
		FindByID(ctx, postID).
		Return(&entity.Post{ID: postID, Published: true}, nil)
	identityRepo.EXPECT().
		FindByID(ctx, authorID).
		Return(&entity.Identity{ID: authorID, Username: "alice", DisplayName: "Alice B."}, nil)
	commentRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Comment")).
		Return(nil)

	comment, err := service.AddComment(ctx, postID, authorID, &usecase.CommentInput{Content: "nice"})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", comment.AuthorName)
}

func TestBlogService_AddComment_DraftRejected(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	postRepo := mockRepo.NewMockPostRepository(t)
	factory.EXPECT().PostRepo().Return(postRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()
	postID := uuid.New()

	postRepo.EXPECT().
		FindByID(ctx, postID).
		Return(&entity.Post{ID: postID, Published: false}, nil)

	_, err := service.AddComment(ctx, postID, uuid.New(), &usecase.CommentInput{Content: "nice"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestBlogService_DeleteComment_Ownership(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	commentID := uuid.New()
	comment := &entity.Comment{ID: commentID, AuthorID: ownerID}

	newService := func(t *testing.T) (usecase.BlogUsecase, *mockRepo.MockCommentRepository) {
		factory := mockRepo.NewMockRepositoryFactory(t)
		commentRepo := mockRepo.NewMockCommentRepository(t)
		factory.EXPECT().CommentRepo().Return(commentRepo)

		return NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger()), commentRepo
	}

	t.Run("author deletes own comment", func(t *testing.T) {
		service, commentRepo := newService(t)
		commentRepo.EXPECT().FindByID(ctx, commentID).Return(comment, nil)
		commentRepo.EXPECT().Delete(ctx, commentID).Return(nil)

		require.NoError(t, service.DeleteComment(ctx, commentID, ownerID, false))
	})

	t.Run("stranger is rejected", func(t *testing.T) {
		service, commentRepo := newService(t)
		commentRepo.EXPECT().FindByID(ctx, commentID).Return(comment, nil)

		err := service.DeleteComment(ctx, commentID, uuid.New(), false)
		assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	})

	t.Run("admin deletes any comment", func(t *testing.T) {
		service, commentRepo := newService(t)
		commentRepo.EXPECT().FindByID(ctx, commentID).Return(comment, nil)
		commentRepo.EXPECT().Delete(ctx, commentID).Return(nil)

		require.NoError(t, service.DeleteComment(ctx, commentID, uuid.New(), true))
	})
}

func TestBlogService_UpdateAbout(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	aboutRepo := mockRepo.NewMockAboutRepository(t)
	factory.EXPECT().AboutRepo().Return(aboutRepo)

	service := NewBlogService(newTxManager(t, factory), newTestConfig(0), newDiscardLogger())

	ctx := context.Background()

	aboutRepo.EXPECT().
		Upsert(ctx, mock.AnythingOfType("*entity.AboutPage")).
		Return(nil)

	page, err := service.UpdateAbout(ctx, &usecase.AboutInput{Title: "About me", Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "About me", page.Title)
}
