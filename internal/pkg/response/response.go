package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/logger"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/pagination"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/validator"
	apperrors "github.com/sahyogi/sahyogi-backend/pkg/errors"
)

// APIResponse is the envelope every endpoint returns
type APIResponse struct {
	Success    bool        `json:"success" example:"true"`
	StatusCode int         `json:"statusCode" example:"200"`
	Message    string      `json:"message,omitempty" example:"ok"`
	Code       string      `json:"code,omitempty" example:"AUTH_REQUIRED"`
	Data       interface{} `json:"data,omitempty"`
}

// PageData is the data payload of a paginated list
type PageData struct {
	Items   interface{} `json:"items"`
	Total   int64       `json:"total" example:"25"`
	Limit   int         `json:"limit" example:"10"`
	Page    int         `json:"page" example:"1"`
	Pages   int         `json:"pages" example:"3"`
	HasNext bool        `json:"hasNext"`
	HasPrev bool        `json:"hasPrev"`
}

// successBody always carries data, so an empty result serializes as null
type successBody struct {
	Success    bool        `json:"success"`
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data"`
}

func send(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, successBody{
		Success:    true,
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	})
}

// Success sends a 200 OK response with data
func Success(c *gin.Context, data interface{}, message ...string) {
	send(c, http.StatusOK, data, first(message))
}

// Created sends a 201 Created response
func Created(c *gin.Context, data interface{}, message ...string) {
	send(c, http.StatusCreated, data, first(message))
}

// Paginated sends a paginated response
func Paginated(c *gin.Context, items interface{}, total int64, limit int, page ...int) {
	pageNum := 1
	if len(page) > 0 {
		pageNum = page[0]
	}

	meta := pagination.New(pageNum, limit, total)
	send(c, http.StatusOK, PageData{
		Items:   items,
		Total:   meta.Total,
		Limit:   meta.Limit,
		Page:    meta.Page,
		Pages:   meta.Pages,
		HasNext: meta.HasNext,
		HasPrev: meta.HasPrev,
	}, "")
}

// Error sends an error response with custom status code and message
func Error(c *gin.Context, statusCode int, message string, errorCode ...string) {
	c.JSON(statusCode, APIResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Code:       first(errorCode),
	})
}

// ErrorWithData sends an error response carrying extra details
func ErrorWithData(c *gin.Context, statusCode int, message, code string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success:    false,
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
		Data:       data,
	})
}

// FromError writes the response for an application error. Causes of server
// errors are logged and never reach the client.
func FromError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	if appErr.Kind == apperrors.KindServer {
		logger.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", appErr.Code),
			zap.Error(appErr.Err),
		)
	}
	Error(c, appErr.Status(), appErr.Message, appErr.Code)
}

// BadRequest sends a 400 Bad Request error
func BadRequest(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusBadRequest, message, errorCode...)
}

// Unauthorized sends a 401 Unauthorized error
func Unauthorized(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusUnauthorized, message, errorCode...)
}

// Forbidden sends a 403 Forbidden error
func Forbidden(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusForbidden, message, errorCode...)
}

// InternalServerError sends a 500 Internal Server Error
func InternalServerError(c *gin.Context, message string, errorCode ...string) {
	Error(c, http.StatusInternalServerError, message, errorCode...)
}

// BindJSONError answers a body that failed to decode or validate
func BindJSONError(c *gin.Context, err error) {
	BadRequest(c, validator.Describe(err), "VALIDATION_ERROR")
}

func first(values []string) string {
	if len(values) > 0 {
		return values[0]
	}
	return ""
}
