package assets

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/qurancms/recitation-api/api/types"
)

const (
	// FlashCookie carries a one-shot message to the admin page after a redirect
	FlashCookie = "flash"

	flashMaxAge         = 60
	defaultRedirectPath = "/admin/assets/%d/"
)

// Flash levels
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// SyncRecitationsJSON publishes the asset's track manifest and redirects back to the admin page
// @Summary      Publish the recitations manifest
// @Description  Renders the manifest of every finalized track and attaches it to the latest asset version.
// @Description  Success redirects to the asset admin page with a flash cookie; failures set an error flash.
// @Tags         assets
// @Security     BearerAuth
// @Param        id path int true "Asset ID"
// @Success      302 "Redirect to the asset admin page"
// @Failure      403 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse "asset_not_found or no_asset_version"
// @Failure      500 {object} types.ErrorResponse
// @Router       /assets/{id}/sync-recitations-json [post]
func SyncRecitationsJSON(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := types.ParseUintParam(c, deps, "id")
		if !ok {
			return
		}

		res, err := deps.Manifest.SyncAssetManifest(c.Request.Context(), assetID)
		if err != nil {
			setFlash(c, FlashError, fmt.Sprintf("Failed to sync recitations JSON for asset %d", assetID))
			types.SendError(c, deps, err)
			return
		}

		deps.Log().Info("recitations json synced",
			zap.Uint("asset_id", assetID),
			zap.String("filename", res.Filename))

		setFlash(c, FlashSuccess, fmt.Sprintf("Recitations JSON synced: %s (%d tracks)", res.Filename, res.Tracks))
		c.Redirect(http.StatusFound, redirectPath(deps, assetID))
	}
}

// PreviewManifest renders the manifest without publishing it
// @Summary      Preview the recitations manifest
// @Tags         assets
// @Security     BearerAuth
// @Produce      json
// @Param        id path int true "Asset ID"
// @Success      200 {array} manifest.Entry
// @Failure      403 {object} types.ErrorResponse
// @Failure      404 {object} types.ErrorResponse "asset_not_found"
// @Router       /assets/{id}/recitations.json [get]
func PreviewManifest(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		assetID, ok := types.ParseUintParam(c, deps, "id")
		if !ok {
			return
		}

		payload, err := deps.Manifest.Render(c.Request.Context(), assetID)
		if err != nil {
			types.SendError(c, deps, err)
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
	}
}

// setFlash stores "level:message"; gin query-escapes cookie values
func setFlash(c *gin.Context, level, message string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(FlashCookie, level+":"+message, flashMaxAge, "/", "", false, true)
}

func redirectPath(deps *types.Dependencies, assetID uint) string {
	path := defaultRedirectPath
	if deps.Config != nil && deps.Config.Manifest.RedirectPath != "" {
		path = deps.Config.Manifest.RedirectPath
	}
	if strings.Contains(path, "%d") {
		return fmt.Sprintf(path, assetID)
	}
	return path
}
