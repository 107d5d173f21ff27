// Package engine 库存与生产对账引擎。
// 所有计算都是对传入快照的纯函数，不持有状态、不产生副作用，
// 可以在任意读取路径上随时重算。
package engine

import (
	"github.com/bitfantasy/weave/internal/logistics/entity"
)

// StockEntry 单个款号的数量台账
type StockEntry struct {
	ReferenceID string `json:"reference_id"`
	Received    int    `json:"received"`
	Dispatched  int    `json:"dispatched"`
	Available   int    `json:"available"`
	LotCount    int    `json:"lot_count"`
}

// ComputeStock 把收货与出货事件流折叠为按款号的数量台账。
//
// 只有参与库存计算的收货批次计入 Received 和 LotCount；
// 出货不看任何标志，全部计入 Dispatched。
// LotCount 统计的是含有该款号至少一行明细的不同批次数，不是明细行数。
// Available = Received - Dispatched，可以为负：负数说明超发，
// 是需要人工排查的数据信号，这里原样透出，不截断也不报错。
func ComputeStock(receptions []entity.Reception, dispatches []entity.Dispatch) map[string]StockEntry {
	ledger := make(map[string]StockEntry)

	get := func(refID string) StockEntry {
		if e, ok := ledger[refID]; ok {
			return e
		}
		return StockEntry{ReferenceID: refID}
	}

	for i := range receptions {
		rec := &receptions[i]
		if !rec.CountsForInventory() {
			continue
		}
		seen := make(map[string]bool, len(rec.Items))
		for _, item := range rec.Items {
			e := get(item.ReferenceID)
			e.Received += item.Quantity
			if !seen[item.ReferenceID] {
				e.LotCount++
				seen[item.ReferenceID] = true
			}
			ledger[item.ReferenceID] = e
		}
	}

	for i := range dispatches {
		for _, item := range dispatches[i].Items {
			e := get(item.ReferenceID)
			e.Dispatched += item.Quantity
			ledger[item.ReferenceID] = e
		}
	}

	for refID, e := range ledger {
		e.Available = e.Received - e.Dispatched
		ledger[refID] = e
	}

	return ledger
}

// StockFor 返回单个款号的台账条目；没有任何事件时返回全零条目。
func StockFor(ledger map[string]StockEntry, referenceID string) StockEntry {
	if e, ok := ledger[referenceID]; ok {
		return e
	}
	return StockEntry{ReferenceID: referenceID}
}
