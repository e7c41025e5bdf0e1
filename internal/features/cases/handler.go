package cases

import (
	"context"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/request"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

// Store is the persistence the handler needs. *Repository implements it.
type Store interface {
	Create(ctx context.Context, rec *CaseRecord) error
	FindAll(ctx context.Context, f Filter) ([]CaseRecord, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*CaseRecord, error)
	Update(ctx context.Context, id primitive.ObjectID, set bson.M) (*CaseRecord, error)
	Delete(ctx context.Context, id primitive.ObjectID) (*CaseRecord, error)
}

// Handler serves /casemanagement
type Handler struct {
	store   Store
	timeout time.Duration
}

func NewHandler(store Store, timeout time.Duration) *Handler {
	return &Handler{store: store, timeout: timeout}
}

// Add godoc
// @Summary Record a case
// @Description New records start Pending. Only NGOs, social workers and admins may add.
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AddRequest true "Case record"
// @Success 201 {object} response.APIResponse{data=CaseRecord}
// @Failure 400 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /casemanagement/add [post]
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

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	rec := &CaseRecord{
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		Category:           strings.TrimSpace(req.Category),
		Location:           req.Location,
		BeneficiaryName:    req.BeneficiaryName,
		Images:             orEmpty(req.Images),
		Videos:             orEmpty(req.Videos),
		Documents:          orEmpty(req.Documents),
		VerificationStatus: StatusPending,
		IsPublic:           isPublic,
		AuthorID:           authorID,
		AuthorType:         claims.Role,
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	if err := h.store.Create(ctx, rec); err != nil {
		h.fail(c, err, "Failed to create case record")
		return
	}

	response.Created(c, rec, "Case record created successfully")
}

// GetAll godoc
// @Summary List case records
// @Description Public records only; admins see every record
// @Tags cases
// @Produce json
// @Param category query string false "Category"
// @Param verificationStatus query string false "Pending | Verified | Rejected"
// @Param authorId query string false "Author ID"
// @Success 200 {object} response.APIResponse{data=[]CaseRecord}
// @Router /casemanagement/getall [get]
func (h *Handler) GetAll(c *gin.Context) {
	claims, _ := middleware.Claims(c)

	f := Filter{
		Category:           c.Query("category"),
		VerificationStatus: c.Query("verificationStatus"),
		PublicOnly:         !isAdmin(claims),
	}
	if raw := c.Query("authorId"); raw != "" {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			response.FromError(c, apperrors.Validation("INVALID_QUERY", "Invalid authorId"))
			return
		}
		f.AuthorID = &id
	}

	h.list(c, f)
}

// GetByAuthor godoc
// @Summary List case records of one author
// @Description Private records are included only for the author and admins
// @Tags cases
// @Produce json
// @Param id path string true "Author ID"
// @Success 200 {object} response.APIResponse{data=[]CaseRecord}
// @Router /casemanagement/getbyauthor/{id} [get]
func (h *Handler) GetByAuthor(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	claims, _ := middleware.Claims(c)

	h.list(c, Filter{AuthorID: &id, PublicOnly: !request.IsOwnerOrAdmin(claims, id)})
}

func (h *Handler) list(c *gin.Context, f Filter) {
	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	records, err := h.store.FindAll(ctx, f)
	if err != nil {
		h.fail(c, err, "Failed to load case records")
		return
	}
	response.Success(c, records)
}

// GetByID godoc
// @Summary Get a case record
// @Description Private records answer 404 to anyone but the author and admins
// @Tags cases
// @Produce json
// @Param id path string true "Case ID"
// @Success 200 {object} response.APIResponse{data=CaseRecord}
// @Failure 404 {object} response.APIResponse
// @Router /casemanagement/getbyid/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}
	claims, _ := middleware.Claims(c)

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	rec, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load case record")
		return
	}
	if rec == nil || (!rec.IsPublic && !request.IsOwnerOrAdmin(claims, rec.AuthorID)) {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Case record not found"))
		return
	}

	response.Success(c, rec)
}

// Update godoc
// @Summary Edit a case record
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body UpdateRequest true "Fields to change"
// @Success 200 {object} response.APIResponse{data=CaseRecord}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /casemanagement/update/{id} [put]
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

	h.apply(c, id, set, "Case record updated successfully")
}

// Verify godoc
// @Summary Set the verification status of a case record
// @Tags cases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Param request body VerifyRequest true "Status and note"
// @Success 200 {object} response.APIResponse{data=CaseRecord}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /casemanagement/verify/{id} [put]
func (h *Handler) Verify(c *gin.Context) {
	id, ok := request.ParamID(c)
	if !ok {
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	h.apply(c, id, bson.M{
		"verificationStatus": req.VerificationStatus,
		"verificationNote":   strings.TrimSpace(req.VerificationNote),
	}, "Case record "+strings.ToLower(req.VerificationStatus))
}

func (h *Handler) apply(c *gin.Context, id primitive.ObjectID, set bson.M, msg string) {
	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	rec, err := h.store.Update(ctx, id, set)
	if err != nil {
		h.fail(c, err, "Failed to update case record")
		return
	}
	if rec == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Case record not found"))
		return
	}
	response.Success(c, rec, msg)
}

// Delete godoc
// @Summary Delete a case record
// @Tags cases
// @Produce json
// @Security BearerAuth
// @Param id path string true "Case ID"
// @Success 200 {object} response.APIResponse{data=CaseRecord}
// @Failure 403 {object} response.APIResponse
// @Failure 404 {object} response.APIResponse
// @Router /casemanagement/delete/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.authorize(c)
	if !ok {
		return
	}

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	rec, err := h.store.Delete(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to delete case record")
		return
	}
	response.Success(c, rec, "Case record deleted successfully")
}

func (h *Handler) authorize(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := request.ParamID(c)
	if !ok {
		return id, false
	}
	claims, _ := middleware.Claims(c)

	ctx, cancel := request.Context(c, h.timeout)
	defer cancel()

	rec, err := h.store.FindByID(ctx, id)
	if err != nil {
		h.fail(c, err, "Failed to load case record")
		return id, false
	}
	if rec == nil {
		response.FromError(c, apperrors.NotFound("NOT_FOUND", "Case record not found"))
		return id, false
	}
	if !request.IsOwnerOrAdmin(claims, rec.AuthorID) {
		response.FromError(c, apperrors.Authorization("FORBIDDEN", "Only the author or an admin can modify this case record"))
		return id, false
	}
	return id, true
}

func isAdmin(claims *jwt.Claims) bool {
	return claims != nil && claims.Role == jwt.RoleAdmin
}

func (h *Handler) fail(c *gin.Context, err error, msg string) {
	response.FromError(c, apperrors.Internal("DATABASE_ERROR", msg, err))
}
