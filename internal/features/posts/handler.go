package posts

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/pagination"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/request"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

// Store is the persistence the handler needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, post *Post) error
	FindAll(ctx context.Context, f Filter, page pagination.Request) ([]Post, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Post, error)
	View(ctx context.Context, id primitive.ObjectID) (*Post, error)
	Like(ctx context.Context, id primitive.ObjectID) (*Post, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Post, error)
}

// Handler serves /posts
type Handler struct {
	store   Store
	timeout time.Duration
}

func NewHandler(store Store, timeout time.Duration) *Handler {
	return &Handler{store: store, timeout: timeout}
}

// Add godoc
// @Summary Publish a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddRequest true "Post"
// @Success 201 {object} response.APIResponse{data=Post}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /posts/add [post]
func (h *Handler) Add(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.FromError(c, apperrors.Authentication("AUTH_REQUIRED", "Authentication required"))
		return
	}
	authorID, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		response.FromError(c, apperrors.Authentication("TOKEN_INVALID", "Invalid token"))
		return
	}

	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	post := &Post{
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		Type:       req.Type,
		MediaURL:   req.MediaURL,
		AuthorID:   authorID,
		AuthorType: claims.Role,
		AuthorName: claims.Name,
		Tags:       normalizeTags(req.Tags),
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	if err := h.store.Create(ctx, post); err != nil {
		h.fail(c, err, "Failed to create post")
		return
	}

	response.Created(c, post, "Post created successfully")
}

// GetAll godoc
// @Summary List posts
// @Description Filters are exact matches. Pagination applies only when page or limit is given.
// @Tags posts
// @Produce json
// @Param type query string false "article | story | guide | video | infographic"
// @Param authorId query string false "Author ID"
// @Param authorType query string false "user | ngo | socialworker | admin"
// @Param tag query string false "Tag"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.APIResponse{data=[]Post}
// @Router /posts/getall [get]
func (h *Handler) GetAll(c *gin.Context) {
	f := Filter{
		Type:       c.Query("type"),
		AuthorType: c.Query("authorType"),
		Tag:        strings.ToLower(strings.TrimSpace(c.Query("tag"))),
	}
	if raw := c.Query("authorId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.FromError(c, apperrors.Validation("INVALID_QUERY", "Invalid authorId"))
			return
		}
		f.AuthorID = &id
	}

	h.list(c, f, pagination.FromRequest(c.Query("page"), c.Query("limit")))
}

// GetByAuthor godoc
// @Summary List posts of one author
// @Tags posts
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} response.APIResponse{data=[]Post}
// @Router /posts/getbyauthor/{id} [get]
func (h *Handler) GetByAuthor(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	h.list(c, Filter{AuthorID: &id}, pagination.FromRequest(c.Query("page"), c.Query("limit")))
}

func (h *Handler) list(c *gin.Context, f Filter, page pagination.Request) {
	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	posts, total, err := h.store.FindAll(ctx, f, page)
	if err != nil {
		h.fail(c, err, "Failed to load posts")
		return
	}

	if page.Enabled() {
		response.Paginated(c, posts, total, page.Limit, page.Page)
		return
	}
	response.Success(c, posts)
}

// GetByID godoc
// @Summary Read a post
// @Description Reading a post increments its view counter
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} response.APIResponse{data=Post}
// @Failure 404 {object} response.APIResponse
// @Router /posts/getbyid/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	h.increment(c, h.store.View)
}

// Like godoc
// @Summary Like a post
// @Description Every call adds one like
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.APIResponse{data=Post}
// @Failure 404 {object} response.APIResponse
// @Router /posts/like/{id} [post]
func (h *Handler) Like(c *gin.Context) {
	h.increment(c, h.store.Like)
}

func (h *Handler) increment(c *gin.Context, op func(context.Context, primitive.ObjectID) (*Post, error)) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	post, err := op(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load post")
		return
	}
	if post == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Post not found"))
		return
	}

	response.Success(c, post)
}

// Update godoc
// @Summary Edit a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} response.APIResponse{data=Post}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /posts/update/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}
	set := updateFields(&req)
	if len(set) == 0 {
		response.FromError(c, apperrors.Validation("EMPTY_UPDATE", "No fields to update"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	post, err := h.store.Update(ctx, id, set)
	if err != nil {
		h.fail(c, err, "Failed to update post")
		return
	}
	if post == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Post not found"))
		return
	}

	response.Success(c, post, "Post updated successfully")
}

// Delete godoc
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} response.APIResponse{data=Post}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /posts/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	post, err := h.store.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete post")
		return
	}

	response.Success(c, post, "Post deleted successfully")
}

// authorize loads the post named by :id and lets only its author or an
// admin continue
func (h *Handler) authorize(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := request.ParamID(c)
	if !ok {
		return id, false
	}
	claims, ok := middleware.Claims(c)
	if !ok {
		response.FromError(c, apperrors.Authentication("AUTH_REQUIRED", "Authentication required"))
		return id, false
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	post, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load post")
		return id, false
	}
	if post == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Post not found"))
		return id, false
	}
	if !request.IsOwnerOrAdmin(claims, post.AuthorID) {
		response.FromError(c, apperrors.Authorization("FORBIDDEN", "Only the author or an admin can modify this post"))
		return id, false
	}
	return id, true
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	response.FromError(c, apperrors.Internal("DATABASE_ERROR", msg, err))
}
