package models

import "gorm.io/datatypes"

// MaintenanceRecord carries no user id of its own; ownership is transitive
// through the Asset and every access path must verify it there.
//
// idx_maintenance_upcoming backs the upcoming panel's latest-per-(asset,
// service type) window query.
type MaintenanceRecord struct {
	BaseModel

	AssetID              uint            `gorm:"not null;index;index:idx_maintenance_upcoming,priority:1"`
	ServiceType          string          `gorm:"size:255;not null;index:idx_maintenance_upcoming,priority:2"`
	ServiceDate          datatypes.Date  `gorm:"not null;index;index:idx_maintenance_upcoming,priority:3,sort:desc"`
	Description          *string         `gorm:"type:text"`
	Cost                 *float64        `gorm:"type:numeric(10,2)"`
	PerformedBy          *string         `gorm:"size:255"`
	NextMaintenanceDate  *datatypes.Date `gorm:"index"`
	NextMaintenanceNotes *string         `gorm:"type:text"`

	// Relationships
	Asset Asset `gorm:"foreignKey:AssetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
