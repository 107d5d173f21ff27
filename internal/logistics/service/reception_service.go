package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/google/uuid"
)

// ReceptionService 收货批次服务
type ReceptionService struct {
	repo  *repository.ReceptionRepository
	cache *reportCache
}

func NewReceptionService(repo *repository.ReceptionRepository, cache *reportCache) *ReceptionService {
	return &ReceptionService{repo: repo, cache: cache}
}

// ReceptionItemInput 收货明细行输入
type ReceptionItemInput struct {
	ReferenceID string `json:"reference_id" binding:"required"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity" binding:"required,gt=0"`
}

// CreateReceptionRequest 创建收货批次请求
type CreateReceptionRequest struct {
	ContractorID     string               `json:"contractor_id" binding:"required"`
	BatchCode        string               `json:"batch_code"`
	AffectsInventory *bool                `json:"affects_inventory"`
	Notes            string               `json:"notes"`
	Items            []ReceptionItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateReceptionRequest 编辑收货批次请求。编辑整体替换明细并追加一条历史。
type UpdateReceptionRequest struct {
	ContractorID     *string              `json:"contractor_id"`
	BatchCode        *string              `json:"batch_code"`
	AffectsInventory *bool                `json:"affects_inventory"`
	Notes            *string              `json:"notes"`
	Items            []ReceptionItemInput `json:"items"`
	EditSummary      string               `json:"edit_summary"`
}

// List 获取收货批次列表
func (s *ReceptionService) List(ctx context.Context, params repository.ReceptionListParams) ([]entity.Reception, int64, error) {
	return s.repo.List(ctx, params)
}

// Get 获取收货批次详情（含编辑历史）
func (s *ReceptionService) Get(ctx context.Context, id string) (*entity.Reception, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建收货批次
func (s *ReceptionService) Create(ctx context.Context, userID string, req *CreateReceptionRequest) (*entity.Reception, error) {
	rec := &entity.Reception{
		ID:               uuid.New().String(),
		ContractorID:     req.ContractorID,
		BatchCode:        req.BatchCode,
		AffectsInventory: req.AffectsInventory,
		Notes:            req.Notes,
		CreatedBy:        userID,
	}
	for _, item := range req.Items {
		rec.Items = append(rec.Items, entity.ReceptionItem{
			ID:          uuid.New().String(),
			ReceptionID: rec.ID,
			ReferenceID: item.ReferenceID,
			Size:        item.Size,
			Quantity:    item.Quantity,
		})
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("创建收货批次失败: %w", err)
	}

	// 库存变动影响所有销售季的报表
	s.cache.InvalidateAll(ctx)
	return rec, nil
}

// Update 编辑收货批次并追加编辑历史
func (s *ReceptionService) Update(ctx context.Context, id, userID string, req *UpdateReceptionRequest) (*entity.Reception, error) {
	rec, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ContractorID != nil {
		rec.ContractorID = *req.ContractorID
	}
	if req.BatchCode != nil {
		rec.BatchCode = *req.BatchCode
	}
	if req.AffectsInventory != nil {
		rec.AffectsInventory = req.AffectsInventory
	}
	if req.Notes != nil {
		rec.Notes = *req.Notes
	}
	if req.Items != nil {
		rec.Items = nil
		for _, item := range req.Items {
			rec.Items = append(rec.Items, entity.ReceptionItem{
				ID:          uuid.New().String(),
				ReceptionID: rec.ID,
				ReferenceID: item.ReferenceID,
				Size:        item.Size,
				Quantity:    item.Quantity,
			})
		}
	}

	edit := &entity.ReceptionEdit{
		ID:          uuid.New().String(),
		ReceptionID: rec.ID,
		EditedBy:    userID,
		Summary:     req.EditSummary,
	}
	if err := s.repo.Update(ctx, rec, edit); err != nil {
		return nil, fmt.Errorf("编辑收货批次失败: %w", err)
	}

	s.cache.InvalidateAll(ctx)
	return s.repo.FindByID(ctx, id)
}
