package model

import "time"

// Inventory is keyed by (store_id, product_id).
// 0 <= reserved_quantity <= quantity must hold after every statement.
type Inventory struct {
	StoreID          int64     `gorm:"primaryKey;autoIncrement:false" json:"store_id"`
	ProductID        int64     `gorm:"primaryKey;autoIncrement:false" json:"product_id"`
	Quantity         int64     `gorm:"not null;default:0;check:chk_inventories_quantity,quantity >= 0" json:"quantity"`
	ReservedQuantity int64     `gorm:"not null;default:0;check:chk_inventories_reserved,reserved_quantity >= 0 AND reserved_quantity <= quantity" json:"reserved_quantity"`
	UpdatedAt        time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Inventory) TableName() string { return "inventories" }

func (i Inventory) Available() int64 {
	return i.Quantity - i.ReservedQuantity
}

// InventoryItem is an inventory row joined with its product.
type InventoryItem struct {
	StoreID           int64       `json:"store_id"`
	ProductID         int64       `json:"product_id"`
	Name              string      `json:"name"`
	SKU               string      `gorm:"column:sku" json:"sku"`
	UOM               string      `gorm:"column:uom" json:"uom"`
	ProductType       ProductType `json:"product_type"`
	CategoryID        int64       `json:"category_id"`
	Quantity          int64       `json:"quantity"`
	ReservedQuantity  int64       `json:"reserved_quantity"`
	AvailableQuantity int64       `json:"available_quantity"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

type InventorySummary struct {
	StoreID        int64 `json:"store_id"`
	TotalProducts  int64 `json:"total_products"`
	TotalQuantity  int64 `json:"total_quantity"`
	TotalReserved  int64 `json:"total_reserved"`
	TotalAvailable int64 `json:"total_available"`
}

type MovementAction string

const (
	MovementIncrease MovementAction = "INCREASE"
	MovementDecrease MovementAction = "DECREASE"
	MovementReserve  MovementAction = "RESERVE"
	MovementRelease  MovementAction = "RELEASE"
)

// InventoryMovement records one successful ledger mutation.
type InventoryMovement struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	StoreID     int64          `gorm:"not null;index:idx_movements_store_product" json:"store_id"`
	ProductID   int64          `gorm:"not null;index:idx_movements_store_product" json:"product_id"`
	ActorUserID int64          `gorm:"not null;index" json:"actor_user_id"`
	Action      MovementAction `gorm:"type:varchar(20);not null" json:"action"`
	Quantity    int64          `gorm:"not null" json:"quantity"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime;index" json:"created_at"`
}
