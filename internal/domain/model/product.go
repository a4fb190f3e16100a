package model

import (
	"time"

	"gorm.io/gorm"
)

type ProductType string

const (
	ProductTypeRawMaterial ProductType = "RAW_MATERIAL"
	ProductTypeFinished    ProductType = "FINISHED"
)

func (t ProductType) Valid() bool {
	return t == ProductTypeRawMaterial || t == ProductTypeFinished
}

// accepted units of measure
var UnitsOfMeasure = []string{"PC", "KG", "G", "L", "ML", "PACK", "BOX"}

type Product struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	CategoryID  int64          `gorm:"not null;index" json:"category_id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	SKU         string         `gorm:"column:sku;type:varchar(255);not null;uniqueIndex" json:"sku"`
	UOM         string         `gorm:"column:uom;type:varchar(10);not null" json:"uom"`
	ProductType ProductType    `gorm:"type:varchar(20);not null;index" json:"product_type"`
	ImageURL    *string        `gorm:"type:varchar(1000)" json:"image_url"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedBy   *int64         `json:"created_by"`
	UpdatedBy   *int64         `json:"updated_by"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
