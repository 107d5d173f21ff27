package engine

import (
	"github.com/bitfantasy/weave/internal/logistics/entity"
)

// ReferenceReport 某 (款号, 销售季) 的履约汇总。
// Stock 是跨销售季的物理库存（同一物理池）；
// PendingDispatch 则按销售季口径：该季已售 - 该季已发。
type ReferenceReport struct {
	ReferenceID     string `json:"reference_id"`
	CampaignID      string `json:"campaign_id"`
	TotalSold       int    `json:"total_sold"`
	ClientCount     int    `json:"client_count"`
	Stock           int    `json:"stock"`
	Programmed      int    `json:"programmed"`
	Cut             int    `json:"cut"`
	Inventory       int    `json:"inventory"`
	Pending         int    `json:"pending"`
	PendingDispatch int    `json:"pending_dispatch"`
}

// ClientReport 某客户在某销售季对某款号的交付状态
type ClientReport struct {
	ClientID        string `json:"client_id"`
	ReferenceID     string `json:"reference_id"`
	CampaignID      string `json:"campaign_id"`
	TotalSold       int    `json:"total_sold"`
	TotalDispatched int    `json:"total_dispatched"`
	LastInvoiceNo   string `json:"last_invoice_no"`
	LastRemissionNo string `json:"last_remission_no"`
}

// totalSoldFor 某销售季内所有订单中该款号的数量合计，并统计下单客户数
func totalSoldFor(orders []entity.Order, referenceID, campaignID string) (totalSold int, clientCount int) {
	clients := make(map[string]bool)
	for i := range orders {
		o := &orders[i]
		if o.CampaignID != campaignID {
			continue
		}
		touched := false
		for _, item := range o.Items {
			if item.ReferenceID == referenceID {
				totalSold += item.Quantity
				touched = true
			}
		}
		if touched {
			clients[o.ClientID] = true
		}
	}
	return totalSold, len(clients)
}

// totalDispatchedFor 某销售季内该款号的出货数量合计，可按客户过滤（clientID为空不过滤）
func totalDispatchedFor(dispatches []entity.Dispatch, referenceID, campaignID, clientID string) int {
	total := 0
	for i := range dispatches {
		d := &dispatches[i]
		if d.CampaignID != campaignID {
			continue
		}
		if clientID != "" && d.ClientID != clientID {
			continue
		}
		for _, item := range d.Items {
			if item.ReferenceID == referenceID {
				total += item.Quantity
			}
		}
	}
	return total
}

// ComputeReferenceReport 汇总某 (款号, 销售季) 的销售、库存与生产状态。
// 入参均为快照切片；dispatches 需按创建顺序排列。
func ComputeReferenceReport(
	referenceID, campaignID string,
	orders []entity.Order,
	dispatches []entity.Dispatch,
	receptions []entity.Reception,
	productionRecords []entity.ProductionRecord,
) ReferenceReport {
	totalSold, clientCount := totalSoldFor(orders, referenceID, campaignID)

	ledger := ComputeStock(receptions, dispatches)
	stock := StockFor(ledger, referenceID)

	stage := GetStage(productionRecords, referenceID, campaignID)

	return ReferenceReport{
		ReferenceID:     referenceID,
		CampaignID:      campaignID,
		TotalSold:       totalSold,
		ClientCount:     clientCount,
		Stock:           stock.Available,
		Programmed:      stage.Programmed,
		Cut:             stage.Cut,
		Inventory:       stage.Inventory,
		Pending:         PendingToProduce(stage, totalSold),
		PendingDispatch: totalSold - totalDispatchedFor(dispatches, referenceID, campaignID, ""),
	}
}

// ComputeClientReport 某客户在某销售季对某款号的已售/已发对比。
// "最近一次"发票/送货单号取该客户在该季内最后创建的出货单
// （按创建顺序，不按单据上的日期字段）；没有出货时为 "-"。
func ComputeClientReport(
	clientID, referenceID, campaignID string,
	orders []entity.Order,
	dispatches []entity.Dispatch,
) ClientReport {
	report := ClientReport{
		ClientID:        clientID,
		ReferenceID:     referenceID,
		CampaignID:      campaignID,
		LastInvoiceNo:   "-",
		LastRemissionNo: "-",
	}

	for i := range orders {
		o := &orders[i]
		if o.CampaignID != campaignID || o.ClientID != clientID {
			continue
		}
		for _, item := range o.Items {
			if item.ReferenceID == referenceID {
				report.TotalSold += item.Quantity
			}
		}
	}

	report.TotalDispatched = totalDispatchedFor(dispatches, referenceID, campaignID, clientID)

	for i := range dispatches {
		d := &dispatches[i]
		if d.CampaignID == campaignID && d.ClientID == clientID {
			report.LastInvoiceNo = d.InvoiceNo
			report.LastRemissionNo = d.RemissionNo
		}
	}

	return report
}
