package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/google/uuid"
)

// ReferenceService 款号主数据服务
type ReferenceService struct {
	repo *repository.ReferenceRepository
}

func NewReferenceService(repo *repository.ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: repo}
}

// CreateReferenceRequest 创建款号请求
type CreateReferenceRequest struct {
	Code              string            `json:"code" binding:"required"`
	Description       string            `json:"description"`
	SalePrice         float64           `json:"sale_price"`
	Campaigns         entity.StringList `json:"campaigns"`
	Cloth1Name        string            `json:"cloth1_name"`
	Cloth1Consumption *float64          `json:"cloth1_consumption"`
	Cloth2Name        string            `json:"cloth2_name"`
	Cloth2Consumption *float64          `json:"cloth2_consumption"`
}

// UpdateReferenceRequest 更新款号请求
type UpdateReferenceRequest struct {
	Description       *string            `json:"description"`
	SalePrice         *float64           `json:"sale_price"`
	Campaigns         *entity.StringList `json:"campaigns"`
	Cloth1Name        *string            `json:"cloth1_name"`
	Cloth1Consumption *float64           `json:"cloth1_consumption"`
	Cloth2Name        *string            `json:"cloth2_name"`
	Cloth2Consumption *float64           `json:"cloth2_consumption"`
}

// List 获取款号列表
func (s *ReferenceService) List(ctx context.Context, params repository.ReferenceListParams) ([]entity.Reference, int64, error) {
	return s.repo.List(ctx, params)
}

// Get 获取款号详情
func (s *ReferenceService) Get(ctx context.Context, id string) (*entity.Reference, error) {
	return s.repo.FindByID(ctx, id)
}

// Create 创建款号，编码重复时报错
func (s *ReferenceService) Create(ctx context.Context, req *CreateReferenceRequest) (*entity.Reference, error) {
	existing, err := s.repo.FindByCode(ctx, req.Code)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("款号编码 %s 已存在", req.Code)
	}

	ref := &entity.Reference{
		ID:                uuid.New().String(),
		Code:              req.Code,
		Description:       req.Description,
		SalePrice:         req.SalePrice,
		Campaigns:         req.Campaigns,
		Cloth1Name:        req.Cloth1Name,
		Cloth1Consumption: req.Cloth1Consumption,
		Cloth2Name:        req.Cloth2Name,
		Cloth2Consumption: req.Cloth2Consumption,
	}
	if err := s.repo.Create(ctx, ref); err != nil {
		return nil, fmt.Errorf("创建款号失败: %w", err)
	}
	return ref, nil
}

// Update 更新款号，编码不可变
func (s *ReferenceService) Update(ctx context.Context, id string, req *UpdateReferenceRequest) (*entity.Reference, error) {
	ref, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		ref.Description = *req.Description
	}
	if req.SalePrice != nil {
		ref.SalePrice = *req.SalePrice
	}
	if req.Campaigns != nil {
		ref.Campaigns = *req.Campaigns
	}
	if req.Cloth1Name != nil {
		ref.Cloth1Name = *req.Cloth1Name
	}
	if req.Cloth1Consumption != nil {
		ref.Cloth1Consumption = req.Cloth1Consumption
	}
	if req.Cloth2Name != nil {
		ref.Cloth2Name = *req.Cloth2Name
	}
	if req.Cloth2Consumption != nil {
		ref.Cloth2Consumption = req.Cloth2Consumption
	}

	if err := s.repo.Update(ctx, ref); err != nil {
		return nil, fmt.Errorf("更新款号失败: %w", err)
	}
	return ref, nil
}

// ClothRequirement 面料需求行（按款号汇总）
type ClothRequirement struct {
	ReferenceID string  `json:"reference_id"`
	Code        string  `json:"code"`
	ClothName   string  `json:"cloth_name"`
	Units       int     `json:"units"`
	Meters      float64 `json:"meters"`
}

// ClothRequirements 按单件用量估算一组款号数量所需面料米数
func (s *ReferenceService) ClothRequirements(ctx context.Context, quantities map[string]int) ([]ClothRequirement, error) {
	var result []ClothRequirement
	for refID, qty := range quantities {
		if qty <= 0 {
			continue
		}
		ref, err := s.repo.FindByID(ctx, refID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if ref.Cloth1Name != "" && ref.Cloth1Consumption != nil {
			result = append(result, ClothRequirement{
				ReferenceID: ref.ID,
				Code:        ref.Code,
				ClothName:   ref.Cloth1Name,
				Units:       qty,
				Meters:      float64(qty) * *ref.Cloth1Consumption,
			})
		}
		if ref.Cloth2Name != "" && ref.Cloth2Consumption != nil {
			result = append(result, ClothRequirement{
				ReferenceID: ref.ID,
				Code:        ref.Code,
				ClothName:   ref.Cloth2Name,
				Units:       qty,
				Meters:      float64(qty) * *ref.Cloth2Consumption,
			})
		}
	}
	return result, nil
}
