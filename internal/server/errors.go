package server

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	analyticsdomain "github.com/dantecodex/graph-mongo/internal/analytics/domain"
	customerdomain "github.com/dantecodex/graph-mongo/internal/customer/domain"
	"github.com/dantecodex/graph-mongo/internal/lineitem"
	"github.com/dantecodex/graph-mongo/internal/observability/logger"
	orderdomain "github.com/dantecodex/graph-mongo/internal/order/domain"
	productdomain "github.com/dantecodex/graph-mongo/internal/product/domain"
)

type apiError struct {
	Status  int
	Code    string
	Message string
}

func (e *apiError) Error() string { return e.Message }

var (
	ErrNotFound = &apiError{Status: 404, Code: "not_found", Message: "resource not found"}
	ErrInternal = &apiError{Status: 500, Code: "internal_error", Message: "internal error"}
)

func newValidationError(code, message string) *apiError {
	return &apiError{Status: 400, Code: code, Message: message}
}

// AbortWithError maps domain errors onto HTTP responses. Validation and
// decode failures are caller-actionable and pass through with detail; any
// other failure is logged with its cause and reported as an opaque internal
// error.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		respond(c, apiErr)
		return
	}

	var decodeErr *lineitem.DecodeError
	if errors.As(err, &decodeErr) {
		respond(c, &apiError{Status: 422, Code: "malformed_line_items", Message: decodeErr.Error()})
		return
	}

	switch {
	case isValidationError(err):
		respond(c, newValidationError(err.Error(), err.Error()))
	case isNotFoundError(err):
		respond(c, ErrNotFound)
	default:
		logger.FromContext(c.Request.Context()).Error("request failed", zap.Error(err))
		respond(c, ErrInternal)
	}
}

func respond(c *gin.Context, apiErr *apiError) {
	c.AbortWithStatusJSON(apiErr.Status, gin.H{
		"error": gin.H{"code": apiErr.Code, "message": apiErr.Message},
	})
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, analyticsdomain.ErrInvalidStartDate),
		errors.Is(err, analyticsdomain.ErrInvalidEndDate),
		errors.Is(err, analyticsdomain.ErrInvalidPage),
		errors.Is(err, analyticsdomain.ErrInvalidLimit),
		errors.Is(err, customerdomain.ErrInvalidID),
		errors.Is(err, productdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidID),
		errors.Is(err, orderdomain.ErrInvalidStatus):
		return true
	}
	return false
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound):
		return true
	}
	return false
}
