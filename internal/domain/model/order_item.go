package model

import "github.com/shopspring/decimal"

// TotalPrice is quantity x unit_price, fixed at insert time.
type OrderItem struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"order_item_id"`
	OrderID    int64           `gorm:"not null;index" json:"order_id"`
	ProductID  int64           `gorm:"not null;index" json:"product_id"`
	Quantity   int64           `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"unit_price"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"total_price"`
}
