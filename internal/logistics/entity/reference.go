package entity

import (
	"time"
)

// Reference 款号（SKU）主数据。被各事件流引用，不被其拥有。
type Reference struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Code        string     `json:"code" gorm:"size:32;uniqueIndex;not null"`
	Description string     `json:"description" gorm:"size:200"`
	SalePrice   float64    `json:"sale_price" gorm:"type:decimal(12,2);default:0"`
	Campaigns   StringList `json:"campaigns" gorm:"type:jsonb"` // 该款号参与的销售季ID列表

	// 面料规格（最多两种），单件平均用量
	Cloth1Name        string   `json:"cloth1_name" gorm:"size:100"`
	Cloth1Consumption *float64 `json:"cloth1_consumption" gorm:"type:decimal(10,4)"`
	Cloth2Name        string   `json:"cloth2_name" gorm:"size:100"`
	Cloth2Consumption *float64 `json:"cloth2_consumption" gorm:"type:decimal(10,4)"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Reference) TableName() string {
	return "gl_references"
}
