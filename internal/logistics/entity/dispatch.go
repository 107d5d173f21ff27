package entity

import (
	"time"
)

// Dispatch 出货单（发往客户）。
// 行上的售价在创建时定格（来源于对应订单），之后不再重算 —— 出货单是时点财务凭证。
type Dispatch struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	ClientID    string `json:"client_id" gorm:"size:32;not null;index"`
	CampaignID  string `json:"campaign_id" gorm:"size:32;not null;index"`
	InvoiceNo   string `json:"invoice_no" gorm:"size:50"`
	RemissionNo string `json:"remission_no" gorm:"size:50"`

	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Items []DispatchItem `json:"items,omitempty" gorm:"foreignKey:DispatchID"`
}

func (Dispatch) TableName() string {
	return "gl_dispatches"
}

// DispatchItem 出货明细行。UnitPrice 为创建时定格的售价。
type DispatchItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	DispatchID  string    `json:"dispatch_id" gorm:"size:32;not null;index"`
	ReferenceID string    `json:"reference_id" gorm:"size:32;not null;index"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	UnitPrice   float64   `json:"unit_price" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (DispatchItem) TableName() string {
	return "gl_dispatch_items"
}
