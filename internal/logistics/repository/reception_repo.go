package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"gorm.io/gorm"
)

type ReceptionRepository struct {
	db *gorm.DB
}

func NewReceptionRepository(db *gorm.DB) *ReceptionRepository {
	return &ReceptionRepository{db: db}
}

// ListAll 全量拉取收货批次（含明细，创建顺序）。引擎在内存中过滤。
func (r *ReceptionRepository) ListAll(ctx context.Context) ([]entity.Reception, error) {
	var receptions []entity.Reception
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("deleted_at IS NULL").
		Order("created_at ASC").
		Find(&receptions).Error
	return receptions, err
}

func (r *ReceptionRepository) FindByID(ctx context.Context, id string) (*entity.Reception, error) {
	var rec entity.Reception
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Edits", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &rec, err
}

func (r *ReceptionRepository) Create(ctx context.Context, rec *entity.Reception) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

// Update 编辑收货批次：替换头字段与明细行，追加一条编辑历史。同一事务内完成。
func (r *ReceptionRepository) Update(ctx context.Context, rec *entity.Reception, edit *entity.ReceptionEdit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Reception{}).Where("id = ?", rec.ID).Updates(map[string]interface{}{
			"contractor_id":     rec.ContractorID,
			"batch_code":        rec.BatchCode,
			"affects_inventory": rec.AffectsInventory,
			"notes":             rec.Notes,
		}).Error; err != nil {
			return err
		}
		if err := tx.Where("reception_id = ?", rec.ID).Delete(&entity.ReceptionItem{}).Error; err != nil {
			return err
		}
		for i := range rec.Items {
			rec.Items[i].ReceptionID = rec.ID
		}
		if len(rec.Items) > 0 {
			if err := tx.Create(&rec.Items).Error; err != nil {
				return err
			}
		}
		return tx.Create(edit).Error
	})
}

type ReceptionListParams struct {
	ContractorID string
	Page         int
	Size         int
}

func (r *ReceptionRepository) List(ctx context.Context, params ReceptionListParams) ([]entity.Reception, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Reception{}).Where("deleted_at IS NULL")
	if params.ContractorID != "" {
		query = query.Where("contractor_id = ?", params.ContractorID)
	}
	var total int64
	query.Count(&total)
	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Size <= 0 {
		params.Size = 20
	}
	var receptions []entity.Reception
	err := query.Preload("Items").Order("created_at DESC").
		Offset((params.Page - 1) * params.Size).Limit(params.Size).Find(&receptions).Error
	return receptions, total, err
}
