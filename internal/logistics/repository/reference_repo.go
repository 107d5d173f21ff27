package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"gorm.io/gorm"
)

type ReferenceRepository struct {
	db *gorm.DB
}

func NewReferenceRepository(db *gorm.DB) *ReferenceRepository {
	return &ReferenceRepository{db: db}
}

func (r *ReferenceRepository) Create(ctx context.Context, ref *entity.Reference) error {
	return r.db.WithContext(ctx).Create(ref).Error
}

func (r *ReferenceRepository) Update(ctx context.Context, ref *entity.Reference) error {
	return r.db.WithContext(ctx).Save(ref).Error
}

func (r *ReferenceRepository) FindByID(ctx context.Context, id string) (*entity.Reference, error) {
	var ref entity.Reference
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &ref, err
}

func (r *ReferenceRepository) FindByCode(ctx context.Context, code string) (*entity.Reference, error) {
	var ref entity.Reference
	err := r.db.WithContext(ctx).Where("code = ? AND deleted_at IS NULL", code).First(&ref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &ref, err
}

type ReferenceListParams struct {
	CampaignID string
	Keyword    string
	Page       int
	Size       int
}

func (r *ReferenceRepository) List(ctx context.Context, params ReferenceListParams) ([]entity.Reference, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Reference{}).Where("deleted_at IS NULL")
	if params.CampaignID != "" {
		query = query.Where("campaigns @> ?", `["`+params.CampaignID+`"]`)
	}
	if params.Keyword != "" {
		kw := "%" + params.Keyword + "%"
		query = query.Where("code ILIKE ? OR description ILIKE ?", kw, kw)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var refs []entity.Reference
	err := query.Order("code ASC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&refs).Error
	return refs, total, err
}

// ListByCampaign 某销售季的全部款号（报表用，不分页）
func (r *ReferenceRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.Reference, error) {
	var refs []entity.Reference
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		Where("campaigns @> ?", `["`+campaignID+`"]`).
		Order("code ASC").
		Find(&refs).Error
	return refs, err
}

// Exists 款号是否存在（服务端约束检查用）
func (r *ReferenceRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Reference{}).
		Where("id = ? AND deleted_at IS NULL", id).Count(&count).Error
	return count > 0, err
}
