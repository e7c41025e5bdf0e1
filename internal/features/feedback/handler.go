package feedback

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/request"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

type Store interface {
	Create(ctx context.Context, s *Submission) error
	FindAll(ctx context.Context, category string) ([]Submission, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Submission, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Submission, error)
	Summarize(ctx context.Context) (*Summary, error)
}

type Handler struct {
	store   Store
	timeout time.Duration
}

func NewHandler(store Store, timeout time.Duration) *Handler {
	return &Handler{store: store, timeout: timeout}
}

// Add godoc
// @Summary Submit feedback
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body AddRequest true "Feedback"
// @Success 201 {object} response.APIResponse{data=Submission}
// @Failure 400 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /feedback/add [post]
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	category := req.Category
	if category == "" {
		category = "general"
	}

	s := &Submission{
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Rating:   req.Rating,
		Category: category,
		Comment:  strings.TrimSpace(req.Comment),
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	if err := h.store.Create(ctx, s); err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to save feedback", err))
		return
	}

	response.Created(c, s, "Thank you for your feedback")
}

// GetAll godoc
// @Summary List feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param category query string false "general | bug | feature | content | other"
// @Success 200 {object} response.APIResponse{data=[]Submission}
// @Failure 403 {object} response.APIResponse
// @Router /feedback/getall [get]
func (h *Handler) GetAll(c *gin.Context) {
	category := c.Query("category")
	if category != "" && !slices.Contains(Categories, category) {
		response.FromError(c, apperrors.Validation("INVALID_QUERY", "category must be one of ["+strings.Join(Categories, " ")+"]"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	list, err := h.store.FindAll(ctx, category)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to load feedback", err))
		return
	}
	response.Success(c, list)
}

// GetSummary godoc
// @Summary Feedback rating summary
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=Summary}
// @Router /feedback/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	sum, err := h.store.Summarize(ctx)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to summarize feedback", err))
		return
	}
	response.Success(c, sum)
}

// GetByID godoc
// @Summary Get feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.APIResponse{data=Submission}
// @Failure 404 {object} response.APIResponse
// @Router /feedback/getbyid/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	s, err := h.store.FindByID(ctx, id)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to load feedback", err))
		return
	}
	if s == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Feedback not found"))
		return
	}
	response.Success(c, s)
}

// Delete godoc
// @Summary Delete feedback
// @Tags feedback
// @Produce json
// @Security BearerAuth
// @Param id path string true "Feedback ID"
// @Success 200 {object} response.APIResponse{data=Submission}
// @Failure 404 {object} response.APIResponse
// @Router /feedback/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	s, err := h.store.Delete(ctx, id)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to delete feedback", err))
		return
	}
	if s == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Feedback not found"))
		return
	}
	response.Success(c, s, "Feedback deleted")
}
