package service

import (
	"context"
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/engine"
	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/logistics/repository"
)

// FulfillmentService 履约报表服务。
// 报表每次从事件流快照现算，Redis 只做短TTL缓存。
type FulfillmentService struct {
	repos *repository.Repositories
	cache *reportCache
}

func NewFulfillmentService(repos *repository.Repositories, cache *reportCache) *FulfillmentService {
	return &FulfillmentService{repos: repos, cache: cache}
}

// CampaignReport 某销售季的款号维度报表
type CampaignReport struct {
	CampaignID string                   `json:"campaign_id"`
	References []engine.ReferenceReport `json:"references"`
}

// snapshots 拉取报表计算需要的全部事件流快照
func (s *FulfillmentService) snapshots(ctx context.Context) (
	[]entity.Order, []entity.Dispatch, []entity.Reception, []entity.ProductionRecord, error,
) {
	orders, err := s.repos.Order.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("拉取订单快照失败: %w", err)
	}
	dispatches, err := s.repos.Dispatch.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("拉取出货快照失败: %w", err)
	}
	receptions, err := s.repos.Reception.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("拉取收货快照失败: %w", err)
	}
	productions, err := s.repos.Production.ListAll(ctx)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("拉取生产快照失败: %w", err)
	}
	return orders, dispatches, receptions, productions, nil
}

// ReportByCampaign 某销售季全部款号的履约报表，短TTL缓存
func (s *FulfillmentService) ReportByCampaign(ctx context.Context, campaignID string) (*CampaignReport, error) {
	var cached CampaignReport
	if s.cache.Get(ctx, campaignID, &cached) {
		return &cached, nil
	}

	refs, err := s.repos.Reference.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	orders, dispatches, receptions, productions, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}

	report := &CampaignReport{CampaignID: campaignID, References: []engine.ReferenceReport{}}
	for _, ref := range refs {
		report.References = append(report.References,
			engine.ComputeReferenceReport(ref.ID, campaignID, orders, dispatches, receptions, productions))
	}

	s.cache.Set(ctx, campaignID, report)
	return report, nil
}

// ReferenceReport 单个 (款号, 销售季) 的履约报表
func (s *FulfillmentService) ReferenceReport(ctx context.Context, referenceID, campaignID string) (*engine.ReferenceReport, error) {
	if _, err := s.repos.Reference.FindByID(ctx, referenceID); err != nil {
		return nil, err
	}
	orders, dispatches, receptions, productions, err := s.snapshots(ctx)
	if err != nil {
		return nil, err
	}
	report := engine.ComputeReferenceReport(referenceID, campaignID, orders, dispatches, receptions, productions)
	return &report, nil
}

// ClientReport 某客户在某销售季的款号维度已售/已发对比。
// 取该客户在该季订单里出现过的全部款号。
func (s *FulfillmentService) ClientReport(ctx context.Context, clientID, campaignID string) ([]engine.ClientReport, error) {
	orders, err := s.repos.Order.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dispatches, err := s.repos.Dispatch.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var refIDs []string
	for i := range orders {
		o := &orders[i]
		if o.CampaignID != campaignID || o.ClientID != clientID {
			continue
		}
		for _, item := range o.Items {
			if !seen[item.ReferenceID] {
				seen[item.ReferenceID] = true
				refIDs = append(refIDs, item.ReferenceID)
			}
		}
	}

	reports := make([]engine.ClientReport, 0, len(refIDs))
	for _, refID := range refIDs {
		reports = append(reports, engine.ComputeClientReport(clientID, refID, campaignID, orders, dispatches))
	}
	return reports, nil
}
