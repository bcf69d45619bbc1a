package types

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// Handler utility functions shared by every endpoint package

// ErrorResponse is the typed error envelope
type ErrorResponse struct {
	ErrorName string                 `json:"error_name" example:"duplicate_track"`
	Message   string                 `json:"message" example:"Track already exists for asset 42 and surah 7"`
	Extra     map[string]interface{} `json:"extra,omitempty"`
}

// SendError writes err as the typed envelope. Errors that are not AppErrors
// become server_error with the fixed message; their cause only reaches the log.
func SendError(c *gin.Context, deps *Dependencies, err error) {
	appErr, ok := apperrors.As(err)
	if !ok || appErr.Code == apperrors.ErrCodeServerError {
		deps.Log().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			ErrorName: string(apperrors.ErrCodeServerError),
			Message:   apperrors.ServerErrorMessage,
		})
		return
	}

	if appErr.GetHTTPCode() >= http.StatusInternalServerError {
		deps.Log().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("error_name", string(appErr.Code)),
			zap.Error(err))
	}

	c.JSON(appErr.GetHTTPCode(), ErrorResponse{
		ErrorName: string(appErr.Code),
		Message:   appErr.Message,
		Extra:     appErr.Details,
	})
}

// AbortWithError is SendError for middleware
func AbortWithError(c *gin.Context, deps *Dependencies, err error) {
	SendError(c, deps, err)
	c.Abort()
}

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, deps *Dependencies, paramName string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(paramName), 10, 32)
	if err != nil || value == 0 {
		SendError(c, deps, apperrors.InvalidRequest(paramName, "must be a positive integer"))
		return 0, false
	}
	return uint(value), true
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, deps *Dependencies, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		SendError(c, deps, apperrors.New(apperrors.ErrCodeInvalidRequest, "Invalid request body").
			WithDetail("details", err.Error()))
		return false
	}
	return true
}
