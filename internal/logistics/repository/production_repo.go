package repository

import (
	"context"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/shared/batch"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductionRepository struct {
	db *gorm.DB
}

func NewProductionRepository(db *gorm.DB) *ProductionRepository {
	return &ProductionRepository{db: db}
}

// ListAll 全量拉取生产进度记录
func (r *ProductionRepository) ListAll(ctx context.Context) ([]entity.ProductionRecord, error) {
	var records []entity.ProductionRecord
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&records).Error
	return records, err
}

// ListByCampaign 按销售季拉取生产进度记录
func (r *ProductionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]entity.ProductionRecord, error) {
	var records []entity.ProductionRecord
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at ASC").
		Find(&records).Error
	return records, err
}

// Upsert 按 (款号, 销售季) 写入或覆盖计数
func (r *ProductionRepository) Upsert(ctx context.Context, record *entity.ProductionRecord) error {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "reference_id"}, {Name: "campaign_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"programmed", "cut", "inventory", "updated_by", "updated_at",
		}),
	}).Create(record).Error
}

// SaveChanged 批量提交变更子集。逐条落库，单条失败不影响其余行，
// 失败下标与原因汇总在 SaveResult 里返回。
func (r *ProductionRepository) SaveChanged(ctx context.Context, records []entity.ProductionRecord) (*batch.SaveResult, error) {
	result := &batch.SaveResult{}
	refRepo := NewReferenceRepository(r.db)
	for i := range records {
		ok, err := refRepo.Exists(ctx, records[i].ReferenceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Failed++
			result.Errors = append(result.Errors, batch.RecordError{
				Index:  i,
				Errors: batch.FieldErrors{"reference_id": "款号不存在"},
			})
			continue
		}
		if err := r.Upsert(ctx, &records[i]); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, batch.RecordError{
				Index:  i,
				Errors: batch.FieldErrors{"_": err.Error()},
			})
			continue
		}
		result.Saved++
	}
	return result, nil
}
