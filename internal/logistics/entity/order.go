package entity

import (
	"time"
)

// Order 销售订单（按销售季）。TotalValue 必须与明细行小计之和保持一致，
// 明细被编辑时由服务层重算。
type Order struct {
	ID         string  `json:"id" gorm:"primaryKey;size:32"`
	ClientID   string  `json:"client_id" gorm:"size:32;not null;index"`
	SellerID   string  `json:"seller_id" gorm:"size:32;index"`
	CampaignID string  `json:"campaign_id" gorm:"size:32;not null;index"`
	TotalValue float64 `json:"total_value" gorm:"type:decimal(14,2);default:0"`

	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "gl_orders"
}

// RecalcTotal 按明细行重算订单总额
func (o *Order) RecalcTotal() {
	total := 0.0
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	o.TotalValue = total
}

// OrderItem 订单明细行
type OrderItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	OrderID     string    `json:"order_id" gorm:"size:32;not null;index"`
	ReferenceID string    `json:"reference_id" gorm:"size:32;not null;index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "gl_order_items"
}
