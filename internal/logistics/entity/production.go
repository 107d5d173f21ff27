package entity

import (
	"time"
)

// 生产阶段字段名
const (
	StageProgrammed = "programmed" // 已排产
	StageCut        = "cut"        // 已裁剪
	StageInventory  = "inventory"  // 裁剪车间在手库存
)

// ProductionRecord 生产进度记录。
// 每个 (款号, 销售季) 组合唯一一条；不存在等同于全零计数。
// 只清零，不删除。
type ProductionRecord struct {
	ID          string `json:"id" gorm:"primaryKey;size:32"`
	ReferenceID string `json:"reference_id" gorm:"size:32;not null;uniqueIndex:ux_production_ref_campaign"`
	CampaignID  string `json:"campaign_id" gorm:"size:32;not null;uniqueIndex:ux_production_ref_campaign"`

	Programmed int `json:"programmed" gorm:"not null;default:0"`
	Cut        int `json:"cut" gorm:"not null;default:0"`
	Inventory  int `json:"inventory" gorm:"not null;default:0"`

	UpdatedBy string    `json:"updated_by" gorm:"size:64"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProductionRecord) TableName() string {
	return "gl_production_records"
}

// RecordID 批量保存协议使用的自然键：(款号, 销售季) 唯一
func (p ProductionRecord) RecordID() string {
	return p.ReferenceID + ":" + p.CampaignID
}
