package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/google/uuid"
)

// DispatchService 出货单服务。
// 出货行售价在创建时定格：优先取该客户在该销售季的订单价，
// 订单里没有该款号时回退到款号主数据的售价。
type DispatchService struct {
	repo   *repository.DispatchRepository
	orders *repository.OrderRepository
	refs   *repository.ReferenceRepository
	cache  *reportCache
}

func NewDispatchService(repo *repository.DispatchRepository, orders *repository.OrderRepository, refs *repository.ReferenceRepository, cache *reportCache) *DispatchService {
	return &DispatchService{repo: repo, orders: orders, refs: refs, cache: cache}
}

// DispatchItemInput 出货明细行输入。UnitPrice 为空时由服务端定价。
type DispatchItemInput struct {
	ReferenceID string   `json:"reference_id" binding:"required"`
	Quantity    int      `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *float64 `json:"unit_price"`
}

// CreateDispatchRequest 创建出货单请求
type CreateDispatchRequest struct {
	ClientID    string              `json:"client_id" binding:"required"`
	CampaignID  string              `json:"campaign_id" binding:"required"`
	InvoiceNo   string              `json:"invoice_no"`
	RemissionNo string              `json:"remission_no"`
	Items       []DispatchItemInput `json:"items" binding:"required,min=1,dive"`
}

// List 获取出货单列表
func (s *DispatchService) List(ctx context.Context, params repository.DispatchListParams) ([]entity.Dispatch, int64, error) {
	return s.repo.List(ctx, params)
}

// Get 获取出货单详情
func (s *DispatchService) Get(ctx context.Context, id string) (*entity.Dispatch, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建出货单，逐行定格售价
func (s *DispatchService) Create(ctx context.Context, userID string, req *CreateDispatchRequest) (*entity.Dispatch, error) {
	d := &entity.Dispatch{
		ID:          uuid.New().String(),
		ClientID:    req.ClientID,
		CampaignID:  req.CampaignID,
		InvoiceNo:   req.InvoiceNo,
		RemissionNo: req.RemissionNo,
		CreatedBy:   userID,
	}
	for _, item := range req.Items {
		price, err := s.resolvePrice(ctx, req.ClientID, req.CampaignID, item)
		if err != nil {
			return nil, err
		}
		d.Items = append(d.Items, entity.DispatchItem{
			ID:          uuid.New().String(),
			DispatchID:  d.ID,
			ReferenceID: item.ReferenceID,
			Quantity:    item.Quantity,
			UnitPrice:   price,
		})
	}
	if err := s.repo.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("创建出货单失败: %w", err)
	}

	s.cache.Invalidate(ctx, req.CampaignID)
	return d, nil
}

func (s *DispatchService) resolvePrice(ctx context.Context, clientID, campaignID string, item DispatchItemInput) (float64, error) {
	if item.UnitPrice != nil {
		return *item.UnitPrice, nil
	}
	price, found, err := s.orders.FindClientOrderPrice(ctx, clientID, campaignID, item.ReferenceID)
	if err != nil {
		return 0, fmt.Errorf("查询订单价失败: %w", err)
	}
	if found {
		return price, nil
	}
	ref, err := s.refs.FindByID(ctx, item.ReferenceID)
	if err != nil {
		return 0, fmt.Errorf("款号 %s 不存在", item.ReferenceID)
	}
	return ref.SalePrice, nil
}
