package accounts

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/request"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

var (
	compareHash = bcrypt.CompareHashAndPassword
	dummyHash   = sync.OnceValue(func() []byte {
		hash, _ := bcrypt.GenerateFromPassword([]byte("sahyogi-no-such-account"), bcrypt.DefaultCost)
		return hash
	})
)

// Store is the persistence the handler needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, acc *Account) error
	FindAll(ctx context.Context, f Filter) ([]Account, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*Account, error)
	FindByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*Account, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*Account, error)
}

// Handler serves the account routes of one kind
type Handler struct {
	kind    Kind
	store   Store
	tokens  *jwt.Manager
	timeout time.Duration
}

// NewHandler creates a handler for kind
func NewHandler(kind Kind, store Store, tokens *jwt.Manager, timeout time.Duration) *Handler {
	return &Handler{
		kind:    kind,
		store:   store,
		tokens:  tokens,
		timeout: timeout,
	}
}

// Add godoc
// @Summary Create an account
// @Description Registers a user, NGO or social worker. Creating an admin requires an admin token.
// @Tags accounts
// @Accept json
// @Produce json
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param request body AddRequest true "Account data"
// @Success 200 {object} response.APIResponse{data=Account}
// @Failure 400 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /{kind}/add [post]
func (h *Handler) Add(c *gin.Context) {
	var req AddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		response.FromError(c, apperrors.Internal("PASSWORD_HASH_FAILED", "Failed to process password", err))
		return
	}

	acc := newAccount(h.kind, &req, string(hash))

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	if err := h.store.Create(ctx, acc); err != nil {
		h.fail(c, err, "Failed to create account")
		return
	}

	response.Success(c, acc, fmt.Sprintf("%s added successfully", h.kind.Label))
}

// GetAll godoc
// @Summary List accounts
// @Description Lists accounts of a kind filtered by exact name, email and (NGOs) isVerified
// @Tags accounts
// @Produce json
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param name query string false "Exact name"
// @Param email query string false "Exact email"
// @Param isVerified query bool false "Verification flag (NGOs)"
// @Success 200 {object} response.APIResponse{data=[]Account}
// @Router /{kind}/getall [get]
func (h *Handler) GetAll(c *gin.Context) {
	f := Filter{
		Name:  c.Query("name"),
		Email: c.Query("email"),
	}
	if raw := c.Query("isVerified"); raw != "" && h.kind.Role == NGOs.Role {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			response.FromError(c, apperrors.Validation("INVALID_QUERY", "isVerified must be true or false"))
			return
		}
		f.IsVerified = &v
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	list, err := h.store.FindAll(ctx, f)
	if err != nil {
		h.fail(c, err, "Failed to load accounts")
		return
	}

	response.Success(c, list)
}

// GetByID godoc
// @Summary Get an account
// @Tags accounts
// @Produce json
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse{data=Account}
// @Failure 400 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /{kind}/getbyid/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	acc, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load account")
		return
	}
	if acc == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", h.kind.Label+" not found"))
		return
	}

	response.Success(c, acc)
}

// Update godoc
// @Summary Update an account
// @Description Partial update. Only the account itself or an admin may update it; only admins may change isVerified.
// @Tags accounts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param id path string true "Account ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} response.APIResponse{data=Account}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /{kind}/update/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	claims, ok := h.authorize(c, id)
	if !ok {
		return
	}

	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	isAdmin := claims.Role == jwt.RoleAdmin
	if req.IsVerified != nil && !isAdmin {
		response.FromError(c, apperrors.Authorization("VERIFY_FORBIDDEN", "Only an admin can change verification"))
		return
	}

	var hash string
	if req.Password != nil {
		b, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			response.FromError(c, apperrors.Internal("PASSWORD_HASH_FAILED", "Failed to process password", err))
			return
		}
		hash = string(b)
	}

	set := updateFields(h.kind, &req, hash, isAdmin)
	if len(set) == 0 {
		response.FromError(c, apperrors.Validation("EMPTY_UPDATE", "No fields to update"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	acc, err := h.store.Update(ctx, id, set)
	if err != nil {
		h.fail(c, err, "Failed to update account")
		return
	}
	if acc == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", h.kind.Label+" not found"))
		return
	}

	response.Success(c, acc, fmt.Sprintf("%s updated successfully", h.kind.Label))
}

// Delete godoc
// @Summary Delete an account
// @Description Hard delete. Deleting an id that does not exist succeeds with null data.
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param id path string true "Account ID"
// @Success 200 {object} response.APIResponse{data=Account}
// @Failure 403 {object} response.APIResponse
// @Router /{kind}/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	if _, ok := h.authorize(c, id); !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	acc, err := h.store.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete account")
		return
	}
	// acc is nil when nothing matched; that still answers 200 with null data
	response.Success(c, acc, fmt.Sprintf("%s deleted successfully", h.kind.Label))
}

// Authenticate godoc
// @Summary Log in
// @Description Verifies credentials against the kind's collection and issues a 48h token
// @Tags accounts
// @Accept json
// @Produce json
// @Param kind path string true "user | ngo | socialworker | admin"
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.APIResponse{data=AuthResponse}
// @Failure 401 {object} response.APIResponse
// @Failure 429 {object} response.APIResponse
// @Router /{kind}/authenticate [post]
func (h *Handler) Authenticate(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	acc, err := h.store.FindByEmail(ctx, req.Email)
	if err != nil {
		h.fail(c, err, "Failed to authenticate")
		return
	}
	// unknown emails still pay for one comparison so timing does not
	// reveal which addresses are registered
	hash := dummyHash()
	if acc != nil {
		hash = []byte(acc.Password)
	}
	matched := compareHash(hash, []byte(req.Password)) == nil
	if acc == nil || !matched {
		response.FromError(c, apperrors.Authentication("INVALID_CREDENTIALS", "Invalid email or password"))
		return
	}

	token, err := h.tokens.GenerateToken(acc.ID.Hex(), acc.Name, acc.Email, h.kind.Role)
	if err != nil {
		response.FromError(c, apperrors.Internal("TOKEN_ERROR", "Failed to generate token", err))
		return
	}

	response.Success(c, AuthResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.tokens.Expiry()).Unix(),
		Account:   acc,
	}, "Authenticated successfully")
}

// Me godoc
// @Summary Current account
// @Tags accounts
// @Produce json
// @Security BearerAuth
// @Param kind path string true "user | ngo | socialworker | admin"
// @Success 200 {object} response.APIResponse{data=Account}
// @Failure 401 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /{kind}/me [get]
func (h *Handler) Me(c *gin.Context) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.FromError(c, apperrors.Authentication("AUTH_REQUIRED", "Authentication required"))
		return
	}
	id, err := primitive.ObjectIDFromHex(claims.ID)
	if err != nil {
		response.FromError(c, apperrors.Authentication("TOKEN_INVALID", "Invalid token"))
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	acc, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load account")
		return
	}
	if acc == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", h.kind.Label+" not found"))
		return
	}

	response.Success(c, acc)
}

// authorize lets the account itself or an admin through
func (h *Handler) authorize(c *gin.Context, id primitive.ObjectID) (*jwt.Claims, bool) {
	claims, ok := middleware.Claims(c)
	if !ok {
		response.FromError(c, apperrors.Authentication("AUTH_REQUIRED", "Authentication required"))
		return nil, false
	}
	if claims.Role == jwt.RoleAdmin || (claims.Role == h.kind.Role && claims.ID == id.Hex()) {
		return claims, true
	}
	response.FromError(c, apperrors.Authorization("FORBIDDEN", "You can only manage your own account"))
	return nil, false
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		response.FromError(c, appErr)
		return
	}
	response.FromError(c, apperrors.Internal("DATABASE_ERROR", msg, err))
}
