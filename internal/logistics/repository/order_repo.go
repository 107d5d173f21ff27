package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// ListAll 全量拉取订单（含明细，创建顺序）
func (r *OrderRepository) ListAll(ctx context.Context) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var o entity.Order
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND deleted_at IS NULL", id).First(&o).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &o, err
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// Update 更新订单头与明细（整体替换明细行）
func (r *OrderRepository) Update(ctx context.Context, o *entity.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Order{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
			"client_id":   o.ClientID,
			"seller_id":   o.SellerID,
			"campaign_id": o.CampaignID,
			"total_value": o.TotalValue,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", o.ID).Delete(&entity.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range o.Items {
			o.Items[i].OrderID = o.ID
		}
		if len(o.Items) > 0 {
			return tx.Create(&o.Items).Error
		}
		return nil
	})
}

// FindClientOrderPrice 查找某客户在某销售季对某款号的订单价。
// 出货行定价时用：取最近创建的订单里该款号的单价。
func (r *OrderRepository) FindClientOrderPrice(ctx context.Context, clientID, campaignID, referenceID string) (float64, bool, error) {
	var item entity.OrderItem
	err := r.db.WithContext(ctx).
		Joins("JOIN gl_orders ON gl_orders.id = gl_order_items.order_id").
		Where("gl_orders.client_id = ? AND gl_orders.campaign_id = ? AND gl_orders.deleted_at IS NULL", clientID, campaignID).
		Where("gl_order_items.reference_id = ?", referenceID).
		Order("gl_orders.created_at DESC").
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return item.UnitPrice, true, nil
}

type OrderListParams struct {
	ClientID   string
	SellerID   string
	CampaignID string
	Page       int
	Size       int
}

func (r *OrderRepository) List(ctx context.Context, params OrderListParams) ([]entity.Order, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Order{}).Where("deleted_at IS NULL")
	if params.ClientID != "" {
		query = query.Where("client_id = ?", params.ClientID)
	}
	if params.SellerID != "" {
		query = query.Where("seller_id = ?", params.SellerID)
	}
	if params.CampaignID != "" {
		query = query.Where("campaign_id = ?", params.CampaignID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var orders []entity.Order
	err := query.Preload("Items").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&orders).Error
	return orders, total, err
}
