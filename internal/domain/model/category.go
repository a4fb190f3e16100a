package model

import (
	"time"

	"gorm.io/gorm"
)

// Category groups products. Name is unique among rows that are not deleted.
type Category struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null;uniqueIndex:idx_categories_name_live,where:deleted_at IS NULL" json:"name"`
	Description *string        `gorm:"type:varchar(1000)" json:"description"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *int64         `json:"created_by"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
