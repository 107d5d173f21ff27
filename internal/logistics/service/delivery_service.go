package service

import (
	"context"
	"time"

	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/shared/batch"
)

// DeliveryService 外协交期服务。
// 交期表是批量编辑的网格：新增行带 temp- 临时ID，保存时换成正式ID；
// 删除是独立的逐条操作，不走批量协议。
type DeliveryService struct {
	repo *repository.DeliveryRepository
	refs *repository.ReferenceRepository
}

func NewDeliveryService(repo *repository.DeliveryRepository, refs *repository.ReferenceRepository) *DeliveryService {
	return &DeliveryService{repo: repo, refs: refs}
}

// List 交期列表，可按外协厂过滤、隐藏已交付
func (s *DeliveryService) List(ctx context.Context, params repository.DeliveryListParams) ([]entity.DeliveryDate, error) {
	return s.repo.ListAll(ctx, params)
}

// DeliveryRowInput 批量编辑的一行
type DeliveryRowInput struct {
	ID           string     `json:"id"`
	ContractorID string     `json:"contractor_id"`
	ReferenceID  string     `json:"reference_id"`
	Quantity     int        `json:"quantity"`
	SendDate     *time.Time `json:"send_date"`
	ExpectedDate *time.Time `json:"expected_date"`
	DeliveredAt  *time.Time `json:"delivered_at"`
	Process      string     `json:"process"`
	Observation  string     `json:"observation"`
}

// BulkSaveDeliveryRequest 批量保存交期行
type BulkSaveDeliveryRequest struct {
	Rows []DeliveryRowInput `json:"rows"`
}

// BulkSave 批量保存：与当前持久化快照做差异，任一行校验失败整批拒绝。
// 持久化层允许部分失败，失败行下次保存会再次出现在差异里。
func (s *DeliveryService) BulkSave(ctx context.Context, req *BulkSaveDeliveryRequest) (*batch.Outcome, error) {
	existing, err := s.repo.ListAll(ctx, repository.DeliveryListParams{})
	if err != nil {
		return nil, err
	}

	committer := batch.NewCommitter[entity.DeliveryDate](validateDeliveryRow, s.repo)
	committer.SetBaseline(deliveryRows(existing))

	candidate := make([]entity.DeliveryDate, 0, len(req.Rows))
	for _, row := range req.Rows {
		candidate = append(candidate, entity.DeliveryDate{
			ID:           row.ID,
			ContractorID: row.ContractorID,
			ReferenceID:  row.ReferenceID,
			Quantity:     row.Quantity,
			SendDate:     row.SendDate,
			ExpectedDate: row.ExpectedDate,
			DeliveredAt:  row.DeliveredAt,
			Process:      row.Process,
			Observation:  row.Observation,
		})
	}

	return committer.Save(ctx, candidate)
}

// MarkDelivered 标记单条交期已交付
func (s *DeliveryService) MarkDelivered(ctx context.Context, id string, deliveredAt time.Time) (*entity.DeliveryDate, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d.DeliveredAt = &deliveredAt
	result, err := s.repo.SaveChanged(ctx, []entity.DeliveryDate{*d})
	if err != nil {
		return nil, err
	}
	if result.Failed > 0 {
		return nil, repository.ErrNotFound
	}
	return s.repo.FindByID(ctx, id)
}

// Delete 删除单条交期记录。临时ID的行从未持久化，直接视为成功。
func (s *DeliveryService) Delete(ctx context.Context, id string) error {
	if entity.IsTempID(id) {
		return nil
	}
	return s.repo.Delete(ctx, id)
}

// deliveryRows 把持久化记录裁成可比较的基线行，时间戳不参与差异
func deliveryRows(records []entity.DeliveryDate) []entity.DeliveryDate {
	rows := make([]entity.DeliveryDate, 0, len(records))
	for _, r := range records {
		r.CreatedAt = time.Time{}
		r.UpdatedAt = time.Time{}
		rows = append(rows, r)
	}
	return rows
}
