package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/google/uuid"
)

// OrderService 销售订单服务。订单总额始终由明细行重算。
type OrderService struct {
	repo  *repository.OrderRepository
	refs  *repository.ReferenceRepository
	cache *reportCache
}

func NewOrderService(repo *repository.OrderRepository, refs *repository.ReferenceRepository, cache *reportCache) *OrderService {
	return &OrderService{repo: repo, refs: refs, cache: cache}
}

// OrderItemInput 订单明细行输入
type OrderItemInput struct {
	ReferenceID string  `json:"reference_id" binding:"required"`
	Quantity    int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" binding:"required,gt=0"`
}

// CreateOrderRequest 创建订单请求
type CreateOrderRequest struct {
	ClientID   string           `json:"client_id" binding:"required"`
	SellerID   string           `json:"seller_id"`
	CampaignID string           `json:"campaign_id" binding:"required"`
	Items      []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateOrderRequest 编辑订单请求，明细整体替换
type UpdateOrderRequest struct {
	ClientID   *string          `json:"client_id"`
	SellerID   *string          `json:"seller_id"`
	CampaignID *string          `json:"campaign_id"`
	Items      []OrderItemInput `json:"items"`
}

// List 获取订单列表
func (s *OrderService) List(ctx context.Context, params repository.OrderListParams) ([]entity.Order, int64, error) {
	return s.repo.List(ctx, params)
}

// Get 获取订单详情
func (s *OrderService) Get(ctx context.Context, id string) (*entity.Order, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建订单
func (s *OrderService) Create(ctx context.Context, userID string, req *CreateOrderRequest) (*entity.Order, error) {
	o := &entity.Order{
		ID:         uuid.New().String(),
		ClientID:   req.ClientID,
		SellerID:   req.SellerID,
		CampaignID: req.CampaignID,
		CreatedBy:  userID,
	}
	items, err := s.buildItems(ctx, o.ID, req.Items)
	if err != nil {
		return nil, err
	}
	o.Items = items
	o.RecalcTotal()

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, fmt.Errorf("创建订单失败: %w", err)
	}

	s.cache.Invalidate(ctx, req.CampaignID)
	return o, nil
}

// Update 编辑订单并重算总额
func (s *OrderService) Update(ctx context.Context, id string, req *UpdateOrderRequest) (*entity.Order, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prevCampaign := o.CampaignID

	if req.ClientID != nil {
		o.ClientID = *req.ClientID
	}
	if req.SellerID != nil {
		o.SellerID = *req.SellerID
	}
	if req.CampaignID != nil {
		o.CampaignID = *req.CampaignID
	}
	if req.Items != nil {
		items, err := s.buildItems(ctx, o.ID, req.Items)
		if err != nil {
			return nil, err
		}
		o.Items = items
	}
	o.RecalcTotal()

	if err := s.repo.Update(ctx, o); err != nil {
		return nil, fmt.Errorf("编辑订单失败: %w", err)
	}

	s.cache.Invalidate(ctx, prevCampaign)
	if o.CampaignID != prevCampaign {
		s.cache.Invalidate(ctx, o.CampaignID)
	}
	return o, nil
}

func (s *OrderService) buildItems(ctx context.Context, orderID string, inputs []OrderItemInput) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	for _, input := range inputs {
		ok, err := s.refs.Exists(ctx, input.ReferenceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("款号 %s 不存在", input.ReferenceID)
		}
		items = append(items, entity.OrderItem{
			ID:          uuid.New().String(),
			OrderID:     orderID,
			ReferenceID: input.ReferenceID,
			Quantity:    input.Quantity,
			UnitPrice:   input.UnitPrice,
		})
	}
	return items, nil
}
