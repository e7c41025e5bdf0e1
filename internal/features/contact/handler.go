package contact

import (
	"context"
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
	FindAll(ctx context.Context) ([]Submission, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Submission, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Submission, error)
}

type Handler struct {
	store   Store
	timeout time.Duration
}

func NewHandler(store Store, timeout time.Duration) *Handler {
	return &Handler{store: store, timeout: timeout}
}

// Add godoc
// @Summary Send a contact message
// @Tags contact
// @Accept json
// @Produce json
// @Param request body AddRequest true "Message"
// @Success 201 {object} response.APIResponse{data=Submission}
// @Failure 400 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /contact/add [post]
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	s := &Submission{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:   req.Phone,
		Subject: strings.TrimSpace(req.Subject),
		Message: req.Message,
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	if err := h.store.Create(ctx, s); err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to save message", err))
		return
	}

	response.Created(c, s, "Message received")
}

// GetAll godoc
// @Summary List contact messages
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.APIResponse{data=[]Submission}
// @Failure 403 {object} response.APIResponse
// @Router /contact/getall [get]
func (h *Handler) GetAll(c *gin.Context) {
	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	list, err := h.store.FindAll(ctx)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to load messages", err))
		return
	}
	response.Success(c, list)
}

// GetByID godoc
// @Summary Get a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.APIResponse{data=Submission}
// @Failure 404 {object} response.APIResponse
// @Router /contact/getbyid/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	s, err := h.store.FindByID(ctx, id)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to load message", err))
		return
	}
	if s == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Message not found"))
		return
	}
	response.Success(c, s)
}

// Delete godoc
// @Summary Delete a contact message
// @Tags contact
// @Produce json
// @Security BearerAuth
// @Param id path string true "Message ID"
// @Success 200 {object} response.APIResponse{data=Submission}
// @Failure 404 {object} response.APIResponse
// @Router /contact/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	s, err := h.store.Delete(ctx, id)
	if err != nil {
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to delete message", err))
		return
	}
	if s == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Message not found"))
		return
	}
	response.Success(c, s, "Message deleted")
}
