package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
)

// StringList JSONB字符串数组类型
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return fmt.Errorf("failed to scan StringList: %v", value)
	}
	return json.Unmarshal(bytes, l)
}

// AutoMigrate 自动迁移所有物流表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// 基础数据
		&Reference{},

		// 事件流
		&Reception{},
		&ReceptionItem{},
		&ReceptionEdit{},
		&Dispatch{},
		&DispatchItem{},
		&Order{},
		&OrderItem{},

		// 生产进度
		&ProductionRecord{},

		// 交期计划
		&DeliveryDate{},
	)
}
