package entity

import (
	"strings"
	"time"
)

// TempIDPrefix 未持久化行的ID前缀（UI批量编辑时临时生成）
const TempIDPrefix = "temp-"

// IsTempID 是否为未持久化的临时ID
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// DeliveryDate 外协交期记录。
// DeliveredAt 为空表示未交付；一旦非空即视为已交付，
// 调用方选择隐藏已交付时从"待交付"视图中排除。
type DeliveryDate struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	ContractorID string `json:"contractor_id" gorm:"size:32;not null;index"`
	ReferenceID  string `json:"reference_id" gorm:"size:32;not null;index"`
	Quantity     int    `json:"quantity" gorm:"not null"`

	SendDate     *time.Time `json:"send_date"`
	ExpectedDate *time.Time `json:"expected_date"`
	DeliveredAt  *time.Time `json:"delivered_at"`

	Process     string `json:"process" gorm:"size:200"`
	Observation string `json:"observation" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DeliveryDate) TableName() string {
	return "gl_delivery_dates"
}

// RecordID 批量保存协议使用的行标识；新增行为 temp- 前缀临时ID
func (d DeliveryDate) RecordID() string {
	return d.ID
}

// Delivered 是否已交付
func (d *DeliveryDate) Delivered() bool {
	return d.DeliveredAt != nil
}
