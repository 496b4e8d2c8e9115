package models

import "time"

// BaseModel is gorm.Model without soft deletes. Deletes must be hard so the
// ON DELETE CASCADE constraints actually fire.
type BaseModel struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
