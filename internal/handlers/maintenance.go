package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/keeptrack-dev/keeptrack/internal/services"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"github.com/keeptrack-dev/keeptrack/internal/utils"
)

// Field-level rules (required service type, date formats, date ordering) live
// in the service so their messages surface as 400s; binding only guards the
// asset reference.
type CreateMaintenanceRecordRequest struct {
	AssetID              uint     `json:"asset_id" binding:"required"`
	ServiceType          string   `json:"service_type"`
	ServiceDate          string   `json:"service_date"`
	Description          *string  `json:"description"`
	Cost                 *float64 `json:"cost"`
	PerformedBy          *string  `json:"performed_by"`
	NextMaintenanceDate  *string  `json:"next_maintenance_date"`
	NextMaintenanceNotes *string  `json:"next_maintenance_notes"`
}

type UpdateMaintenanceRecordRequest struct {
	ServiceType          *string              `json:"service_type"`
	ServiceDate          *string              `json:"service_date"`
	Description          *string              `json:"description"`
	Cost                 *float64             `json:"cost"`
	PerformedBy          *string              `json:"performed_by"`
	NextMaintenanceDate  types.OptionalString `json:"next_maintenance_date"`
	NextMaintenanceNotes *string              `json:"next_maintenance_notes"`
}

type MaintenanceHandler struct {
	records *services.MaintenanceService
}

func NewMaintenanceHandler(records *services.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{records: records}
}

func (h *MaintenanceHandler) CreateRecord(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateMaintenanceRecordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, err := h.records.Create(userID, services.RecordInput{
		AssetID:              req.AssetID,
		ServiceType:          req.ServiceType,
		ServiceDate:          req.ServiceDate,
		Description:          req.Description,
		Cost:                 req.Cost,
		PerformedBy:          req.PerformedBy,
		NextMaintenanceDate:  req.NextMaintenanceDate,
		NextMaintenanceNotes: req.NextMaintenanceNotes,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"message": "Maintenance record created successfully", "record": record})
}

func (h *MaintenanceHandler) GetRecord(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "record")

	if !ok {
		return
	}

	record, err := h.records.GetByID(id, userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, record)
}

func (h *MaintenanceHandler) UpdateRecord(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "record")

	if !ok {
		return
	}

	var req UpdateMaintenanceRecordRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record, err := h.records.Update(id, userID, services.RecordPatch{
		ServiceType:          req.ServiceType,
		ServiceDate:          req.ServiceDate,
		Description:          req.Description,
		Cost:                 req.Cost,
		PerformedBy:          req.PerformedBy,
		NextMaintenanceDate:  req.NextMaintenanceDate,
		NextMaintenanceNotes: req.NextMaintenanceNotes,
	})

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Maintenance record updated successfully", "record": record})
}

func (h *MaintenanceHandler) DeleteRecord(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	id, ok := paramID(ctx, "id", "record")

	if !ok {
		return
	}

	if err := h.records.Delete(id, userID); err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Maintenance record deleted successfully"})
}

// Upcoming serves the panel: per (asset, service type), the latest record's
// next due date, soonest first.
func (h *MaintenanceHandler) Upcoming(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	upcoming, err := h.records.Upcoming(userID)

	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, upcoming)
}
