package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/api/types"
	authService "github.com/qurancms/recitation-api/internal/services/auth"
	apperrors "github.com/qurancms/recitation-api/pkg/errors"
)

// RequireStaff rejects every request without a valid staff bearer token
// with 403, before any handler runs
func RequireStaff(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		if deps == nil || deps.Auth == nil {
			types.AbortWithError(c, deps, forbidden("Authentication is not configured"))
			return
		}

		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			types.AbortWithError(c, deps, forbidden("Staff credentials are required"))
			return
		}

		principal, err := deps.Auth.Authenticate(parts[1])
		if err != nil {
			deps.Log().Info("staff authentication rejected",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			types.AbortWithError(c, deps, forbidden("Staff credentials are required"))
			return
		}

		c.Set(types.PrincipalKey, principal)
		c.Next()
	}
}

// Me returns the authenticated staff principal
// @Summary Get current staff principal
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} auth.Principal
// @Failure 403 {object} types.ErrorResponse
// @Router /me [get]
func Me(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := c.Get(types.PrincipalKey)
		if !ok {
			types.SendError(c, deps, forbidden("Staff credentials are required"))
			return
		}
		c.JSON(http.StatusOK, principal.(*authService.Principal))
	}
}

func forbidden(message string) *apperrors.AppError {
	return apperrors.New(apperrors.ErrCodeForbidden, message)
}
