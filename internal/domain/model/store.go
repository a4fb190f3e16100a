package model

import "time"

type StoreType string

const (
	StoreTypeFranchise      StoreType = "FR"
	StoreTypeCentralKitchen StoreType = "CK"
	StoreTypeSupplyCenter   StoreType = "SC"
)

func (t StoreType) Valid() bool {
	switch t {
	case StoreTypeFranchise, StoreTypeCentralKitchen, StoreTypeSupplyCenter:
		return true
	}
	return false
}

// Type is fixed at creation.
type Store struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Type      StoreType `gorm:"type:varchar(2);not null;index" json:"type"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(500)" json:"address"`
	CreatedBy *int64    `json:"created_by"`
	UpdatedBy *int64    `json:"updated_by"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
