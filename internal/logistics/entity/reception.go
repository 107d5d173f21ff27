package entity

import (
	"time"
)

// Reception 收货批次（外协厂交付的成品批次）。
// 创建后不可变，只能通过编辑操作修改，每次编辑追加一条编辑历史。
type Reception struct {
	ID           string `json:"id" gorm:"primaryKey;size:32"`
	ContractorID string `json:"contractor_id" gorm:"size:32;not null;index"`
	BatchCode    string `json:"batch_code" gorm:"size:50"` // 批次/送货单号

	// false 的批次不参与库存计算（信息性批次或已计入的批次）。
	// 历史数据该列为 NULL，等同于 true。
	AffectsInventory *bool `json:"affects_inventory" gorm:"default:true"`

	Notes     string     `json:"notes" gorm:"type:text"`
	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`

	Items []ReceptionItem `json:"items,omitempty" gorm:"foreignKey:ReceptionID"`
	Edits []ReceptionEdit `json:"edits,omitempty" gorm:"foreignKey:ReceptionID"`
}

func (Reception) TableName() string {
	return "gl_receptions"
}

// CountsForInventory 是否参与库存计算（NULL等同true）
func (r *Reception) CountsForInventory() bool {
	return r.AffectsInventory == nil || *r.AffectsInventory
}

// ReceptionItem 收货明细行（款号+尺码+数量）
type ReceptionItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ReceptionID string    `json:"reception_id" gorm:"size:32;not null;index"`
	ReferenceID string    `json:"reference_id" gorm:"size:32;not null;index"`
	Size        string    `json:"size" gorm:"size:10"`
	Quantity    int       `json:"quantity" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ReceptionItem) TableName() string {
	return "gl_reception_items"
}

// ReceptionEdit 收货批次编辑历史（追加写）
type ReceptionEdit struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ReceptionID string    `json:"reception_id" gorm:"size:32;not null;index"`
	EditedBy    string    `json:"edited_by" gorm:"size:64"`
	Summary     string    `json:"summary" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ReceptionEdit) TableName() string {
	return "gl_reception_edits"
}
