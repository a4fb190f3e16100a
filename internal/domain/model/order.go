package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusSubmitted OrderStatus = "SUBMITTED"
	OrderStatusCancelled OrderStatus = "CANCELLED"

	// not written by any operation yet
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusIssued    OrderStatus = "ISSUED"
)

type Order struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderCode    string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_code"`
	StoreID      int64           `gorm:"not null;index" json:"store_id"`
	OrderDate    time.Time       `gorm:"not null" json:"order_date"`
	DeliveryDate *time.Time      `json:"delivery_date"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount  decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"total_amount"`
	CreatedBy    int64           `gorm:"not null;index" json:"created_by"`
	ConfirmedBy  *int64          `json:"confirmed_by"`
	IssuedBy     *int64          `json:"issued_by"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime;index" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// OrderLine is one row of the header LEFT JOIN items read.
// Item columns are nil for an order without items.
type OrderLine struct {
	ID           int64
	OrderCode    string
	StoreID      int64
	OrderDate    time.Time
	DeliveryDate *time.Time
	Status       OrderStatus
	TotalAmount  decimal.Decimal
	CreatedBy    int64
	ConfirmedBy  *int64
	IssuedBy     *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time

	OrderItemID *int64
	ProductID   *int64
	ProductName *string
	Quantity    *int64
	UnitPrice   decimal.NullDecimal
	TotalPrice  decimal.NullDecimal
}
