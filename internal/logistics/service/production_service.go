package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/engine"
	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/shared/batch"
)

// ProductionService 生产进度服务。
// 三个计数（排产/裁剪/在手库存）互相独立，不是递进扣减的流水线。
type ProductionService struct {
	repo  *repository.ProductionRepository
	refs  *repository.ReferenceRepository
	cache *reportCache
}

func NewProductionService(repo *repository.ProductionRepository, refs *repository.ReferenceRepository, cache *reportCache) *ProductionService {
	return &ProductionService{repo: repo, refs: refs, cache: cache}
}

// ListByCampaign 某销售季的全部生产进度记录
func (s *ProductionService) ListByCampaign(ctx context.Context, campaignID string) ([]entity.ProductionRecord, error) {
	return s.repo.ListByCampaign(ctx, campaignID)
}

// UpdateStage 单条更新某 (款号, 销售季) 的一个计数字段。
// 记录不存在时按全零创建再覆盖目标字段。
func (s *ProductionService) UpdateStage(ctx context.Context, userID, referenceID, campaignID, field string, value int) (*entity.ProductionRecord, error) {
	if value < 0 {
		return nil, fmt.Errorf("计数不能为负: %d", value)
	}
	ok, err := s.refs.Exists(ctx, referenceID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("款号 %s 不存在", referenceID)
	}

	records, err := s.repo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	updated, err := engine.UpsertStage(records, referenceID, campaignID, field, value)
	if err != nil {
		return nil, err
	}

	var record *entity.ProductionRecord
	for i := range updated {
		if updated[i].ReferenceID == referenceID && updated[i].CampaignID == campaignID {
			record = &updated[i]
			break
		}
	}
	record.UpdatedBy = userID

	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("更新生产进度失败: %w", err)
	}

	s.cache.Invalidate(ctx, campaignID)
	return record, nil
}

// ProductionRowInput 批量编辑的一行
type ProductionRowInput struct {
	ReferenceID string `json:"reference_id"`
	Programmed  int    `json:"programmed"`
	Cut         int    `json:"cut"`
	Inventory   int    `json:"inventory"`
}

// BulkSaveProductionRequest 批量保存某销售季的生产进度
type BulkSaveProductionRequest struct {
	CampaignID string               `json:"campaign_id" binding:"required"`
	Rows       []ProductionRowInput `json:"rows"`
}

// productionPersister 在落库前盖上操作人
type productionPersister struct {
	repo   *repository.ProductionRepository
	userID string
}

func (p *productionPersister) SaveChanged(ctx context.Context, records []entity.ProductionRecord) (*batch.SaveResult, error) {
	for i := range records {
		records[i].UpdatedBy = p.userID
	}
	return p.repo.SaveChanged(ctx, records)
}

// BulkSave 批量保存：与当前持久化快照做差异，任一行校验失败整批拒绝，
// 全部通过才把变更行落库。
func (s *ProductionService) BulkSave(ctx context.Context, userID string, req *BulkSaveProductionRequest) (*batch.Outcome, error) {
	existing, err := s.repo.ListByCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}

	committer := batch.NewCommitter[entity.ProductionRecord](
		validateProductionRow,
		&productionPersister{repo: s.repo, userID: userID},
	)
	committer.SetBaseline(productionRows(existing))

	candidate := make([]entity.ProductionRecord, 0, len(req.Rows))
	for _, row := range req.Rows {
		candidate = append(candidate, entity.ProductionRecord{
			ReferenceID: row.ReferenceID,
			CampaignID:  req.CampaignID,
			Programmed:  row.Programmed,
			Cut:         row.Cut,
			Inventory:   row.Inventory,
		})
	}

	outcome, err := committer.Save(ctx, candidate)
	if err != nil {
		return nil, err
	}
	if outcome.Result != nil && outcome.Result.Saved > 0 {
		s.cache.Invalidate(ctx, req.CampaignID)
	}
	return outcome, nil
}

// productionRows 把持久化记录裁成可比较的基线行，
// 只保留用户可编辑的字段，ID和时间戳不参与差异。
func productionRows(records []entity.ProductionRecord) []entity.ProductionRecord {
	rows := make([]entity.ProductionRecord, 0, len(records))
	for _, r := range records {
		rows = append(rows, entity.ProductionRecord{
			ReferenceID: r.ReferenceID,
			CampaignID:  r.CampaignID,
			Programmed:  r.Programmed,
			Cut:         r.Cut,
			Inventory:   r.Inventory,
		})
	}
	return rows
}
