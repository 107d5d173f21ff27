package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"gorm.io/gorm"
)

type DispatchRepository struct {
	db *gorm.DB
}

func NewDispatchRepository(db *gorm.DB) *DispatchRepository {
	return &DispatchRepository{db: db}
}

// ListAll 全量拉取出货单（含明细）。按创建顺序排列 ——
// "最近一次发票/送货单号"的口径依赖这个顺序。
func (r *DispatchRepository) ListAll(ctx context.Context) ([]entity.Dispatch, error) {
	var dispatches []entity.Dispatch
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Find(&dispatches).Error
	return dispatches, err
}

func (r *DispatchRepository) FindByID(ctx context.Context, id string) (*entity.Dispatch, error) {
	var d entity.Dispatch
	err := r.db.WithContext(ctx).Preload("Items").
		Where("id = ? AND deleted_at IS NULL", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &d, err
}

func (r *DispatchRepository) Create(ctx context.Context, d *entity.Dispatch) error {
	return r.db.WithContext(ctx).Create(d).Error
}

type DispatchListParams struct {
	ClientID   string
	CampaignID string
	Page       int
	Size       int
}

func (r *DispatchRepository) List(ctx context.Context, params DispatchListParams) ([]entity.Dispatch, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Dispatch{}).Where("deleted_at IS NULL")
	if params.ClientID != "" {
		query = query.Where("client_id = ?", params.ClientID)
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
	var dispatches []entity.Dispatch
	err := query.Preload("Items").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&dispatches).Error
	return dispatches, total, err
}
