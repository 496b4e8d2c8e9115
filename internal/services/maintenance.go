package services

import (
	"errors"
	"strings"
	"time"

	"github.com/keeptrack-dev/keeptrack/internal/apperr"
	"github.com/keeptrack-dev/keeptrack/internal/models"
	"github.com/keeptrack-dev/keeptrack/internal/types"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MaintenanceService owns the maintenance-record rules. Records carry no user
// id, so every access path verifies ownership through the record's asset;
// a record behind someone else's asset is reported exactly like a record that
// does not exist.
type MaintenanceService struct {
	db     *gorm.DB
	assets *AssetService
}

func NewMaintenanceService(db *gorm.DB, assets *AssetService) *MaintenanceService {
	return &MaintenanceService{db: db, assets: assets}
}

type RecordInput struct {
	AssetID              uint
	ServiceType          string
	ServiceDate          string
	Description          *string
	Cost                 *float64
	PerformedBy          *string
	NextMaintenanceDate  *string
	NextMaintenanceNotes *string
}

type RecordPatch struct {
	ServiceType          *string
	ServiceDate          *string
	Description          *string
	Cost                 *float64
	PerformedBy          *string
	NextMaintenanceDate  types.OptionalString
	NextMaintenanceNotes *string
}

func (s *MaintenanceService) Create(userID uint, input RecordInput) (*types.MaintenanceRecordResponse, error) {
	if _, err := s.assets.ownedAsset(input.AssetID, userID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.ServiceType) == "" {
		return nil, apperr.Validation("Service type is required")
	}

	if input.ServiceDate == "" {
		return nil, apperr.Validation("Service date is required")
	}

	serviceDate, ok := parseDate(input.ServiceDate)
	if !ok {
		return nil, apperr.Validation("Invalid service date")
	}

	var nextDate *datatypes.Date

	if input.NextMaintenanceDate != nil {
		parsed, ok := parseDate(*input.NextMaintenanceDate)
		if !ok {
			return nil, apperr.Validation("Invalid next maintenance date")
		}
		if dateBefore(parsed, serviceDate) {
			return nil, apperr.Validation("Next maintenance date cannot be before the service date")
		}
		nextDate = &parsed
	}

	record := models.MaintenanceRecord{
		AssetID:              input.AssetID,
		ServiceType:          input.ServiceType,
		ServiceDate:          serviceDate,
		Description:          input.Description,
		Cost:                 input.Cost,
		PerformedBy:          input.PerformedBy,
		NextMaintenanceDate:  nextDate,
		NextMaintenanceNotes: input.NextMaintenanceNotes,
	}

	if err := s.db.Create(&record).Error; err != nil {
		return nil, apperr.Internal("Failed to create maintenance record", err)
	}

	return recordResponse(&record), nil
}

func (s *MaintenanceService) GetByID(id, userID uint) (*types.MaintenanceRecordResponse, error) {
	record, err := s.ownedRecord(id, userID)

	if err != nil {
		return nil, err
	}

	return recordResponse(record), nil
}

func (s *MaintenanceService) ListByAsset(assetID, userID uint) ([]types.MaintenanceRecordResponse, error) {
	if _, err := s.assets.ownedAsset(assetID, userID); err != nil {
		return nil, err
	}

	var records []models.MaintenanceRecord

	err := s.db.Where("asset_id = ?", assetID).
		Order("service_date DESC, created_at DESC, id DESC").
		Find(&records).Error

	if err != nil {
		return nil, apperr.Internal("Failed to list maintenance records", err)
	}

	response := make([]types.MaintenanceRecordResponse, 0, len(records))

	for i := range records {
		response = append(response, *recordResponse(&records[i]))
	}

	return response, nil
}

// Update applies only the supplied fields. The date-order rule is checked
// against the effective values, supplied where present and stored otherwise,
// so a partial update can never leave next_maintenance_date before
// service_date.
func (s *MaintenanceService) Update(id, userID uint, patch RecordPatch) (*types.MaintenanceRecordResponse, error) {
	record, err := s.ownedRecord(id, userID)

	if err != nil {
		return nil, err
	}

	if patch.ServiceType != nil && strings.TrimSpace(*patch.ServiceType) == "" {
		return nil, apperr.Validation("Service type cannot be empty")
	}

	effectiveService := record.ServiceDate

	if patch.ServiceDate != nil {
		parsed, ok := parseDate(*patch.ServiceDate)
		if !ok {
			return nil, apperr.Validation("Invalid service date")
		}
		effectiveService = parsed
	}

	effectiveNext := record.NextMaintenanceDate

	if patch.NextMaintenanceDate.Set {
		if patch.NextMaintenanceDate.Value == nil {
			effectiveNext = nil
		} else {
			parsed, ok := parseDate(*patch.NextMaintenanceDate.Value)
			if !ok {
				return nil, apperr.Validation("Invalid next maintenance date")
			}
			effectiveNext = &parsed
		}
	}

	if effectiveNext != nil && dateBefore(*effectiveNext, effectiveService) {
		return nil, apperr.Validation("Next maintenance date cannot be before the service date")
	}

	updates := make(map[string]interface{})

	if patch.ServiceType != nil {
		updates["service_type"] = *patch.ServiceType
	}
	if patch.ServiceDate != nil {
		updates["service_date"] = effectiveService
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Cost != nil {
		updates["cost"] = *patch.Cost
	}
	if patch.PerformedBy != nil {
		updates["performed_by"] = *patch.PerformedBy
	}
	if patch.NextMaintenanceDate.Set {
		if effectiveNext == nil {
			updates["next_maintenance_date"] = nil
		} else {
			updates["next_maintenance_date"] = *effectiveNext
		}
	}
	if patch.NextMaintenanceNotes != nil {
		updates["next_maintenance_notes"] = *patch.NextMaintenanceNotes
	}

	if len(updates) == 0 {
		return recordResponse(record), nil
	}

	if err := s.db.Model(record).Updates(updates).Error; err != nil {
		return nil, apperr.Internal("Failed to update maintenance record", err)
	}

	record, err = s.ownedRecord(id, userID)

	if err != nil {
		return nil, err
	}

	return recordResponse(record), nil
}

func (s *MaintenanceService) Delete(id, userID uint) error {
	if _, err := s.ownedRecord(id, userID); err != nil {
		return err
	}

	if err := s.db.Delete(&models.MaintenanceRecord{}, id).Error; err != nil {
		return apperr.Internal("Failed to delete maintenance record", err)
	}

	return nil
}

// upcomingQuery keeps, per (asset_id, service_type) pair the caller owns, only
// the record with the most recent service_date, then drops rows without a next
// maintenance date and sorts soonest-first. Ties on service_date resolve to
// the highest id, the latest insert.
const upcomingQuery = `
WITH latest_per_type AS (
	SELECT mr.*, a.name AS asset_name,
	       ROW_NUMBER() OVER (
	           PARTITION BY mr.asset_id, mr.service_type
	           ORDER BY mr.service_date DESC, mr.id DESC
	       ) AS rn
	FROM maintenance_records mr
	JOIN assets a ON a.id = mr.asset_id
	WHERE a.user_id = ?
)
SELECT id, asset_id, service_type, service_date, description, cost,
       performed_by, next_maintenance_date, next_maintenance_notes,
       created_at, updated_at, asset_name
FROM latest_per_type
WHERE rn = 1 AND next_maintenance_date IS NOT NULL
ORDER BY next_maintenance_date ASC`

type upcomingRow struct {
	ID                   uint
	AssetID              uint
	ServiceType          string
	ServiceDate          datatypes.Date
	Description          *string
	Cost                 *float64
	PerformedBy          *string
	NextMaintenanceDate  *datatypes.Date
	NextMaintenanceNotes *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
	AssetName            string
}

func (s *MaintenanceService) Upcoming(userID uint) ([]types.UpcomingMaintenance, error) {
	var rows []upcomingRow

	if err := s.db.Raw(upcomingQuery, userID).Scan(&rows).Error; err != nil {
		return nil, apperr.Internal("Failed to load upcoming maintenances", err)
	}

	response := make([]types.UpcomingMaintenance, 0, len(rows))

	for _, row := range rows {
		response = append(response, types.UpcomingMaintenance{
			MaintenanceRecordResponse: types.MaintenanceRecordResponse{
				ID:                   row.ID,
				AssetID:              row.AssetID,
				ServiceType:          row.ServiceType,
				ServiceDate:          formatDate(row.ServiceDate),
				Description:          row.Description,
				Cost:                 row.Cost,
				PerformedBy:          row.PerformedBy,
				NextMaintenanceDate:  formatDatePtr(row.NextMaintenanceDate),
				NextMaintenanceNotes: row.NextMaintenanceNotes,
				CreatedAt:            row.CreatedAt,
				UpdatedAt:            row.UpdatedAt,
			},
			AssetName: row.AssetName,
		})
	}

	return response, nil
}

// ownedRecord fetches a record and verifies, through its asset, that it
// belongs to userID. Both failure modes answer with the same error.
func (s *MaintenanceService) ownedRecord(id, userID uint) (*models.MaintenanceRecord, error) {
	var record models.MaintenanceRecord

	err := s.db.First(&record, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Maintenance record not found")
		}
		return nil, apperr.Internal("Failed to fetch maintenance record", err)
	}

	if _, err := s.assets.ownedAsset(record.AssetID, userID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.NotFound("Maintenance record not found")
		}
		return nil, err
	}

	return &record, nil
}

func recordResponse(record *models.MaintenanceRecord) *types.MaintenanceRecordResponse {
	return &types.MaintenanceRecordResponse{
		ID:                   record.ID,
		AssetID:              record.AssetID,
		ServiceType:          record.ServiceType,
		ServiceDate:          formatDate(record.ServiceDate),
		Description:          record.Description,
		Cost:                 record.Cost,
		PerformedBy:          record.PerformedBy,
		NextMaintenanceDate:  formatDatePtr(record.NextMaintenanceDate),
		NextMaintenanceNotes: record.NextMaintenanceNotes,
		CreatedAt:            record.CreatedAt,
		UpdatedAt:            record.UpdatedAt,
	}
}
