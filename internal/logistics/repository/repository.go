package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound = errors.New("record not found")
)

// Repositories 物流仓库集合
type Repositories struct {
	Reference  *ReferenceRepository
	Reception  *ReceptionRepository
	Dispatch   *DispatchRepository
	Order      *OrderRepository
	Production *ProductionRepository
	Delivery   *DeliveryRepository
}

// NewRepositories 创建物流仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Reference:  NewReferenceRepository(db),
		Reception:  NewReceptionRepository(db),
		Dispatch:   NewDispatchRepository(db),
		Order:      NewOrderRepository(db),
		Production: NewProductionRepository(db),
		Delivery:   NewDeliveryRepository(db),
	}
}
