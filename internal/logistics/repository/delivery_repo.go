package repository

import (
	"context"
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/shared/batch"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DeliveryRepository struct {
	db *gorm.DB
}

func NewDeliveryRepository(db *gorm.DB) *DeliveryRepository {
	return &DeliveryRepository{db: db}
}

// DeliveryListParams 交期列表过滤条件
type DeliveryListParams struct {
	ContractorID  string
	HideDelivered bool
}

// ListAll 拉取交期记录，HideDelivered 时排除已交付的行
func (r *DeliveryRepository) ListAll(ctx context.Context, params DeliveryListParams) ([]entity.DeliveryDate, error) {
	query := r.db.WithContext(ctx).Model(&entity.DeliveryDate{})
	if params.ContractorID != "" {
		query = query.Where("contractor_id = ?", params.ContractorID)
	}
	if params.HideDelivered {
		query = query.Where("delivered_at IS NULL")
	}
	var dates []entity.DeliveryDate
	err := query.Order("created_at ASC").Find(&dates).Error
	return dates, err
}

func (r *DeliveryRepository) FindByID(ctx context.Context, id string) (*entity.DeliveryDate, error) {
	var d entity.DeliveryDate
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return &d, err
}

// SaveChanged 批量提交变更子集。临时ID的行视为新增并分配正式ID，
// 其余行整行覆盖。逐条落库，单条失败记入 SaveResult 不中断其余行。
func (r *DeliveryRepository) SaveChanged(ctx context.Context, records []entity.DeliveryDate) (*batch.SaveResult, error) {
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
		if err := r.save(ctx, &records[i]); err != nil {
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

func (r *DeliveryRepository) save(ctx context.Context, d *entity.DeliveryDate) error {
	if d.ID == "" || entity.IsTempID(d.ID) {
		d.ID = uuid.New().String()
		return r.db.WithContext(ctx).Create(d).Error
	}
	return r.db.WithContext(ctx).Save(d).Error
}

// Delete 删除单条交期记录（删除是独立操作，不走批量协议）
func (r *DeliveryRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.DeliveryDate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
