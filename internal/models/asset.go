package models

type Asset struct {
	BaseModel

	UserID      uint   `gorm:"not null;index"`
	Name        string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`

	// Relationships
	User               User                `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	MaintenanceRecords []MaintenanceRecord `gorm:"foreignKey:AssetID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
