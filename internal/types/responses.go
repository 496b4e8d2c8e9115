package types

import "time"

type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type AssetResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MaintenanceRecordResponse renders dates as YYYY-MM-DD strings so clients
// never see timezone noise on what are calendar dates.
type MaintenanceRecordResponse struct {
	ID                   uint      `json:"id"`
	AssetID              uint      `json:"asset_id"`
	ServiceType          string    `json:"service_type"`
	ServiceDate          string    `json:"service_date"`
	Description          *string   `json:"description"`
	Cost                 *float64  `json:"cost"`
	PerformedBy          *string   `json:"performed_by"`
	NextMaintenanceDate  *string   `json:"next_maintenance_date"`
	NextMaintenanceNotes *string   `json:"next_maintenance_notes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// UpcomingMaintenance is a panel row: the latest record per (asset, service
// type) plus the asset's name for display.
type UpcomingMaintenance struct {
	MaintenanceRecordResponse
	AssetName string `json:"asset_name"`
}
