package engine

import (
	"testing"

	"github.com/bitfantasy/weave/internal/logistics/entity"
)

func order(id, clientID, campaignID string, items ...entity.OrderItem) entity.Order {
	return entity.Order{ID: id, ClientID: clientID, CampaignID: campaignID, Items: items}
}

func TestComputeReferenceReportSoldAndGap(t *testing.T) {
	// Single order of 15, single dispatch of 5 in the same campaign
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 15, UnitPrice: 30}),
	}
	dispatches := []entity.Dispatch{
		dispatch("D1", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 5, UnitPrice: 30}),
	}

	report := ComputeReferenceReport("A100", "C1", orders, dispatches, nil, nil)
	if report.TotalSold != 15 {
		t.Errorf("totalSold = %d, want 15", report.TotalSold)
	}
	if report.PendingDispatch != 10 {
		t.Errorf("pendingDispatch = %d, want 10", report.PendingDispatch)
	}
	if report.ClientCount != 1 {
		t.Errorf("clientCount = %d, want 1", report.ClientCount)
	}
}

func TestComputeReferenceReportPendingUsesProductionCounters(t *testing.T) {
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 15}),
	}
	production := []entity.ProductionRecord{
		{ReferenceID: "A100", CampaignID: "C1", Programmed: 4, Cut: 3, Inventory: 2},
	}

	report := ComputeReferenceReport("A100", "C1", orders, nil, nil, production)
	if report.Pending != 6 {
		t.Errorf("pending = %d, want max(0, 15-(2+4+3)) = 6", report.Pending)
	}
}

func TestComputeReferenceReportStockIsCampaignAgnostic(t *testing.T) {
	// Stock counts dispatches from every campaign; the sold/dispatched gap only its own
	receptions := []entity.Reception{
		reception("R1", boolPtr(true), entity.ReceptionItem{ReferenceID: "A100", Quantity: 100}),
	}
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 40}),
	}
	dispatches := []entity.Dispatch{
		dispatch("D1", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 10}),
		dispatch("D2", "cli-2", "C2", entity.DispatchItem{ReferenceID: "A100", Quantity: 25}),
	}

	report := ComputeReferenceReport("A100", "C1", orders, dispatches, receptions, nil)
	if report.Stock != 65 {
		t.Errorf("stock = %d, want 100-10-25 = 65 (physical pool)", report.Stock)
	}
	if report.PendingDispatch != 30 {
		t.Errorf("pendingDispatch = %d, want 40-10 = 30 (campaign-scoped)", report.PendingDispatch)
	}
}

func TestComputeReferenceReportClientCountDistinct(t *testing.T) {
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 5}),
		order("O2", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 3}),
		order("O3", "cli-2", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 2}),
		order("O4", "cli-3", "C1", entity.OrderItem{ReferenceID: "B200", Quantity: 9}),
		order("O5", "cli-4", "C2", entity.OrderItem{ReferenceID: "A100", Quantity: 7}),
	}

	report := ComputeReferenceReport("A100", "C1", orders, nil, nil, nil)
	if report.ClientCount != 2 {
		t.Errorf("clientCount = %d, want 2 (distinct clients in campaign)", report.ClientCount)
	}
	if report.TotalSold != 10 {
		t.Errorf("totalSold = %d, want 10", report.TotalSold)
	}
}

func TestComputeClientReport(t *testing.T) {
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 12}),
		order("O2", "cli-2", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 8}),
	}
	d1 := dispatch("D1", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 4})
	d1.InvoiceNo, d1.RemissionNo = "F-001", "RM-001"
	d2 := dispatch("D2", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 3})
	d2.InvoiceNo, d2.RemissionNo = "F-002", "RM-002"
	dispatches := []entity.Dispatch{d1, d2}

	report := ComputeClientReport("cli-1", "A100", "C1", orders, dispatches)
	if report.TotalSold != 12 {
		t.Errorf("totalSold = %d, want 12", report.TotalSold)
	}
	if report.TotalDispatched != 7 {
		t.Errorf("totalDispatched = %d, want 7", report.TotalDispatched)
	}
	// last by creation order, not by any date field
	if report.LastInvoiceNo != "F-002" || report.LastRemissionNo != "RM-002" {
		t.Errorf("last docs = %s/%s, want F-002/RM-002", report.LastInvoiceNo, report.LastRemissionNo)
	}
}

func TestComputeClientReportNoDispatches(t *testing.T) {
	report := ComputeClientReport("cli-9", "A100", "C1", nil, nil)
	if report.LastInvoiceNo != "-" || report.LastRemissionNo != "-" {
		t.Errorf("last docs = %s/%s, want '-'/'-'", report.LastInvoiceNo, report.LastRemissionNo)
	}
}

func TestClientReportsSumMatchesReferenceDispatchTotal(t *testing.T) {
	// Composition consistency: per-client dispatch totals sum to the
	// campaign dispatch total behind the reference-level gap.
	orders := []entity.Order{
		order("O1", "cli-1", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 20}),
		order("O2", "cli-2", "C1", entity.OrderItem{ReferenceID: "A100", Quantity: 10}),
	}
	dispatches := []entity.Dispatch{
		dispatch("D1", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 6}),
		dispatch("D2", "cli-2", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 9}),
		dispatch("D3", "cli-1", "C1", entity.DispatchItem{ReferenceID: "A100", Quantity: 2}),
	}

	sum := 0
	for _, clientID := range []string{"cli-1", "cli-2"} {
		sum += ComputeClientReport(clientID, "A100", "C1", orders, dispatches).TotalDispatched
	}

	report := ComputeReferenceReport("A100", "C1", orders, dispatches, nil, nil)
	if got := report.TotalSold - report.PendingDispatch; sum != got {
		t.Errorf("client dispatch sum = %d, reference-level total = %d", sum, got)
	}
}
