package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keeptrack-dev/keeptrack/internal/services"
	"github.com/keeptrack-dev/keeptrack/internal/utils"
)

type CreateAssetRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdateAssetRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type AssetHandler struct {
	assets  *services.AssetService
	records *services.MaintenanceService
}

func NewAssetHandler(assets *services.AssetService, records *services.MaintenanceService) *AssetHandler {
	return &AssetHandler{assets: assets, records: records}
}

func (h *AssetHandler) CreateAsset(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateAssetRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	asset, err := h.assets.Create(userID, services.AssetInput{
		Name:        req.Name,
		Description: req.Description,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Asset created successfully", "asset": asset})
}

func (h *AssetHandler) GetAsset(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "asset")

	if !ok {
		return
	}

	asset, err := h.assets.GetByID(id, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	if asset == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Asset not found"})
		return
	}

	ctx.JSON(http.StatusOK, asset)
}

func (h *AssetHandler) ListAssets(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assets, err := h.assets.List(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, assets)
}

func (h *AssetHandler) UpdateAsset(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "asset")

	if !ok {
		return
	}

	var req UpdateAssetRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	asset, err := h.assets.Update(id, userID, services.AssetPatch{
		Name:        req.Name,
		Description: req.Description,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Asset updated successfully", "asset": asset})
}

func (h *AssetHandler) DeleteAsset(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "asset")

	if !ok {
		return
	}

	if err := h.assets.Delete(id, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Asset deleted successfully"})
}

// ListMaintenanceRecords serves GET /assets/:id/maintenance-records; the
// service checks asset ownership before touching the records.
func (h *AssetHandler) ListMaintenanceRecords(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	assetID, ok := paramID(ctx, "id", "asset")

	if !ok {
		return
	}

	records, err := h.records.ListByAsset(assetID, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, records)
}
