package follows

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/request"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

// Store is the persistence the handler needs. *Repository implements it.
type Store interface {
	Follow(ctx context.Context, targetID primitive.ObjectID, entry accounts.Follower) (int, error)
	Unfollow(ctx context.Context, targetID, followerID primitive.ObjectID) (int, error)
	Followers(ctx context.Context, targetID primitive.ObjectID) (*FollowersResponse, error)
	IsFollowing(ctx context.Context, targetID, followerID primitive.ObjectID) (bool, error)
}

// Handler handles follow requests against one followable kind
type Handler struct {
	kind    accounts.Kind
	store   Store
	timeout time.Duration
	now     func() time.Time
}

// NewHandler creates a new follow handler
func NewHandler(kind accounts.Kind, store Store, timeout time.Duration) *Handler {
	return &Handler{
		kind:    kind,
		store:   store,
		timeout: timeout,
		now:     time.Now,
	}
}

// Follow godoc
// @Summary Follow an NGO or social worker
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ngo | socialworker"
// @Param id path string true "Target ID"
// @Success 200 {object} response.APIResponse{data=FollowActionResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /{kind}/follow/{id} [post]
func (h *Handler) Follow(c *gin.Context) {
	claims, me, targetID, ok := h.actors(c)
	if !ok {
		return
	}
	if me == targetID {
		response.FromError(c, apperrors.Validation("CANNOT_FOLLOW_SELF", "You cannot follow yourself"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	count, err := h.store.Follow(ctx, targetID, accounts.Follower{
		FollowerID:   me,
		FollowerType: claims.Role,
		FollowerName: claims.Name,
		FollowedAt:   h.now().UTC(),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, FollowActionResponse{IsFollowing: true, FollowerCount: count}, "Followed successfully")
}

// Unfollow godoc
// @Summary Unfollow an NGO or social worker
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ngo | socialworker"
// @Param id path string true "Target ID"
// @Success 200 {object} response.APIResponse{data=FollowActionResponse}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /{kind}/unfollow/{id} [post]
func (h *Handler) Unfollow(c *gin.Context) {
	_, me, targetID, ok := h.actors(c)
	if !ok {
		return
	}
	if me == targetID {
		response.FromError(c, apperrors.Validation("CANNOT_FOLLOW_SELF", "You cannot unfollow yourself"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	count, err := h.store.Unfollow(ctx, targetID, me)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, FollowActionResponse{IsFollowing: false, FollowerCount: count}, "Unfollowed successfully")
}

// Followers godoc
// @Summary List followers
// @Tags follows
// @Produce json
// @Param kind path string true "ngo | socialworker"
// @Param id path string true "Target ID"
// @Success 200 {object} response.APIResponse{data=FollowersResponse}
// @Failure 404 {object} response.APIResponse
// @Router /{kind}/followers/{id} [get]
func (h *Handler) Followers(c *gin.Context) {
	targetID, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	out, err := h.store.Followers(ctx, targetID)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, out)
}

// IsFollowing godoc
// @Summary Whether the caller follows the target
// @Tags follows
// @Produce json
// @Security BearerAuth
// @Param kind path string true "ngo | socialworker"
// @Param id path string true "Target ID"
// @Success 200 {object} response.APIResponse{data=FollowStatusResponse}
// @Router /{kind}/isfollowing/{id} [get]
func (h *Handler) IsFollowing(c *gin.Context) {
	_, me, targetID, ok := h.actors(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	following, err := h.store.IsFollowing(ctx, targetID, me)
	if err != nil {
		h.fail(c, err)
		return
	}

	response.Success(c, FollowStatusResponse{IsFollowing: following})
}

// actors resolves the caller and the target
func (h *Handler) actors(c *gin.Context) (*jwt.Claims, primitive.ObjectID, primitive.ObjectID, bool) {
	var nilID primitive.ObjectID

	claims, ok := middleware.Claims(c)
	if !ok {
		response.FromError(c, apperrors.Authentication("AUTH_REQUIRED", "Authentication required"))
		return nil, nilID, nilID, false
	}

	targetID, ok := request.ParamID(c)
	if !ok {
		return nil, nilID, nilID, false
	}

	me, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		response.FromError(c, apperrors.Authentication("TOKEN_INVALID", "Invalid token"))
		return nil, nilID, nilID, false
	}

	return claims, me, targetID, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTargetNotFound):
		response.FromError(c, apperrors.NotFound("NOT_FOUND", h.kind.Label+" not found"))
	case errors.Is(err, ErrAlreadyFollowing):
		response.FromError(c, apperrors.Validation("ALREADY_FOLLOWING", "Already following"))
	case errors.Is(err, ErrNotFollowing):
		response.FromError(c, apperrors.Validation("NOT_FOLLOWING", "Not following"))
	default:
		response.FromError(c, apperrors.Internal("DATABASE_ERROR", "Failed to update followers", err))
	}
}
