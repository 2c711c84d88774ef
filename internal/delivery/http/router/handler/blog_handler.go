package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"inkwell/internal/delivery/http/middleware"
	"inkwell/internal/delivery/http/response"
	"inkwell/internal/domain/entity"
	domainerrors "inkwell/internal/domain/errors"
	"inkwell/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// BlogHandler holds dependencies for blog content handlers.
type BlogHandler struct {
	uc     usecase.BlogUsecase
	logger *slog.Logger
}

// NewBlogHandler is the constructor for BlogHandler, injected by Fx.
func NewBlogHandler(uc usecase.BlogUsecase, logger *slog.Logger) *BlogHandler {
	return &BlogHandler{uc: uc, logger: logger}
}

type postRequest struct {
	Title     string   `json:"title" validate:"required,max=255"`
	Summary   string   `json:"summary"`
	Content   string   `json:"content" validate:"required"`
	Published bool     `json:"published"`
	Tags      []string `json:"tags"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required,max=4000"`
}

type aboutRequest struct {
	Title   string `json:"title" validate:"required,max=255"`
	Content string `json:"content" validate:"required"`
}

type postView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Summary   string    `json:"summary,omitempty"`
	Content   string    `json:"content,omitempty"`
	Published bool      `json:"published"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type commentView struct {
	ID         string    `json:"id"`
	PostID     string    `json:"postId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type pageView struct {
	Items    any   `json:"items"`
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
}

func newPostView(post *entity.Post, withContent bool) postView {
	tags := make([]string, 0, len(post.Tags))
	for _, t := range post.Tags {
		tags = append(tags, t.Name)
	}

	view := postView{
		ID:        post.ID.String(),
		Title:     post.Title,
		Slug:      post.Slug,
		Summary:   post.Summary,
		Published: post.Published,
		Tags:      tags,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
	if withContent {
		view.Content = post.Content
	}

	return view
}

func newCommentView(comment *entity.Comment) commentView {
	return commentView{
		ID:         comment.ID.String(),
		PostID:     comment.PostID.String(),
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		CreatedAt:  comment.CreatedAt,
	}
}

func pagingParams(c echo.Context) (int, int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	pageSize, _ := strconv.Atoi(c.QueryParam("pageSize"))

	return page, pageSize
}

// ListPosts returns a page of posts. Drafts are included only for admin
// callers asking for them.
func (h *BlogHandler) ListPosts(c echo.Context) error {
	page, pageSize := pagingParams(c)
	includeDrafts := c.QueryParam("drafts") == "true" && middleware.CallerIsAdmin(c)

	result, err := h.uc.ListPosts(c.Request().Context(), &usecase.ListPostsInput{
		IncludeDrafts: includeDrafts,
		TagSlug:       c.QueryParam("tag"),
		Page:          page,
		PageSize:      pageSize,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]postView, 0, len(result.Posts))
	for _, p := range result.Posts {
		views = append(views, newPostView(p, false))
	}

	return response.Success(c, http.StatusOK, pageView{
		Items:    views,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, "")
}

// GetPost returns one post by slug.
func (h *BlogHandler) GetPost(c echo.Context) error {
	post, err := h.uc.GetPostBySlug(c.Request().Context(), c.Param("slug"), middleware.CallerIsAdmin(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newPostView(post, true), "")
}

// CreatePost creates a post. Admin only.
func (h *BlogHandler) CreatePost(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.uc.CreatePost(c.Request().Context(), identityID, &usecase.PostInput{
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Published: req.Published,
		TagNames:  req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newPostView(post, true), "Post created")
}

// UpdatePost rewrites a post. Admin only.
func (h *BlogHandler) UpdatePost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post ID")
	}

	var req postRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	post, err := h.uc.UpdatePost(c.Request().Context(), postID, &usecase.PostInput{
		Title:     req.Title,
		Summary:   req.Summary,
		Content:   req.Content,
		Published: req.Published,
		TagNames:  req.Tags,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newPostView(post, true), "Post updated")
}

// DeletePost removes a post. Admin only.
func (h *BlogHandler) DeletePost(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post ID")
	}

	if err := h.uc.DeletePost(c.Request().Context(), postID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Post deleted")
}

// ListComments returns the comments of a post.
func (h *BlogHandler) ListComments(c echo.Context) error {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post ID")
	}

	comments, err := h.uc.ListComments(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, newCommentView(comment))
	}

	return response.Success(c, http.StatusOK, views, "")
}

// AddComment attaches a comment to a post. Requires authentication.
func (h *BlogHandler) AddComment(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid post ID")
	}

	var req commentRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.uc.AddComment(c.Request().Context(), postID, identityID, &usecase.CommentInput{
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, newCommentView(comment), "Comment added")
}

// DeleteComment removes a comment. Authors delete their own; admins any.
func (h *BlogHandler) DeleteComment(c echo.Context) error {
	identityID, ok := middleware.CallerIdentityID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid comment ID")
	}

	if err := h.uc.DeleteComment(c.Request().Context(), commentID, identityID, middleware.CallerIsAdmin(c)); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Comment deleted")
}

// ListTags returns all tags.
func (h *BlogHandler) ListTags(c echo.Context) error {
	tags, err := h.uc.ListTags(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	type tagView struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	views := make([]tagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, tagView{Name: t.Name, Slug: t.Slug})
	}

	return response.Success(c, http.StatusOK, views, "")
}

// GetAbout returns the about page.
func (h *BlogHandler) GetAbout(c echo.Context) error {
	page, err := h.uc.GetAbout(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "")
}

// UpdateAbout rewrites the about page. Admin only.
func (h *BlogHandler) UpdateAbout(c echo.Context) error {
	var req aboutRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid about input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	page, err := h.uc.UpdateAbout(c.Request().Context(), &usecase.AboutInput{
		Title:   req.Title,
		Content: req.Content,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page, "About page updated")
}
