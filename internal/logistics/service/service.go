package service

import (
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/redis/go-redis/v9"
)

// Services 物流服务集合
type Services struct {
	Reference   *ReferenceService
	Reception   *ReceptionService
	Dispatch    *DispatchService
	Order       *OrderService
	Stock       *StockService
	Production  *ProductionService
	Fulfillment *FulfillmentService
	Delivery    *DeliveryService
}

// NewServices 创建物流服务集合
func NewServices(repos *repository.Repositories, rdb *redis.Client) *Services {
	cache := newReportCache(rdb)
	return &Services{
		Reference:   NewReferenceService(repos.Reference),
		Reception:   NewReceptionService(repos.Reception, cache),
		Dispatch:    NewDispatchService(repos.Dispatch, repos.Order, repos.Reference, cache),
		Order:       NewOrderService(repos.Order, repos.Reference, cache),
		Stock:       NewStockService(repos.Reception, repos.Dispatch),
		Production:  NewProductionService(repos.Production, repos.Reference, cache),
		Fulfillment: NewFulfillmentService(repos, cache),
		Delivery:    NewDeliveryService(repos.Delivery, repos.Reference),
	}
}
