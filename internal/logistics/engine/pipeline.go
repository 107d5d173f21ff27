package engine

import (
	"fmt"

	"github.com/bitfantasy/weave/internal/logistics/entity"
)

// Stage 某 (款号, 销售季) 的生产阶段计数
type Stage struct {
	Programmed int `json:"programmed"`
	Cut        int `json:"cut"`
	Inventory  int `json:"inventory"`
}

// GetStage 从记录快照中取某 (款号, 销售季) 的阶段计数，缺失等同全零。
func GetStage(records []entity.ProductionRecord, referenceID, campaignID string) Stage {
	for i := range records {
		r := &records[i]
		if r.ReferenceID == referenceID && r.CampaignID == campaignID {
			return Stage{Programmed: r.Programmed, Cut: r.Cut, Inventory: r.Inventory}
		}
	}
	return Stage{}
}

// UpsertStage 返回更新后的记录快照：只替换指定字段，保留其余计数；
// (款号, 销售季) 无记录时先创建一条全零记录。不修改传入切片。
func UpsertStage(records []entity.ProductionRecord, referenceID, campaignID, field string, value int) ([]entity.ProductionRecord, error) {
	if field != entity.StageProgrammed && field != entity.StageCut && field != entity.StageInventory {
		return nil, fmt.Errorf("未知的生产阶段字段: %s", field)
	}

	updated := make([]entity.ProductionRecord, len(records))
	copy(updated, records)

	idx := -1
	for i := range updated {
		if updated[i].ReferenceID == referenceID && updated[i].CampaignID == campaignID {
			idx = i
			break
		}
	}
	if idx < 0 {
		updated = append(updated, entity.ProductionRecord{
			ReferenceID: referenceID,
			CampaignID:  campaignID,
		})
		idx = len(updated) - 1
	}

	switch field {
	case entity.StageProgrammed:
		updated[idx].Programmed = value
	case entity.StageCut:
		updated[idx].Cut = value
	case entity.StageInventory:
		updated[idx].Inventory = value
	}

	return updated, nil
}

// PendingToProduce 待产量 = max(0, 已售 - (在手库存+已排产+已裁剪))。
// 生产过剩不是"负的剩余工作量"，下限截断为零。
func PendingToProduce(stage Stage, totalSold int) int {
	pending := totalSold - (stage.Inventory + stage.Programmed + stage.Cut)
	if pending < 0 {
		return 0
	}
	return pending
}
