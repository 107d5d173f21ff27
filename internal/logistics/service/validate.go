package service

import (
	"github.com/bitfantasy/weave/internal/logistics/entity"
	"github.com/bitfantasy/weave/internal/shared/batch"
)

// validateProductionRow 生产进度批量行的客户端级校验。
// 服务端约束（款号是否存在）在持久化层逐行检查。
func validateProductionRow(r entity.ProductionRecord) batch.FieldErrors {
	errs := batch.FieldErrors{}
	if r.ReferenceID == "" {
		errs["reference_id"] = "款号必填"
	}
	if r.CampaignID == "" {
		errs["campaign_id"] = "销售季必填"
	}
	if r.Programmed < 0 {
		errs["programmed"] = "排产数不能为负"
	}
	if r.Cut < 0 {
		errs["cut"] = "裁剪数不能为负"
	}
	if r.Inventory < 0 {
		errs["inventory"] = "在手库存不能为负"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// validateDeliveryRow 交期批量行的客户端级校验
func validateDeliveryRow(d entity.DeliveryDate) batch.FieldErrors {
	errs := batch.FieldErrors{}
	if d.ContractorID == "" {
		errs["contractor_id"] = "外协厂必填"
	}
	if d.ReferenceID == "" {
		errs["reference_id"] = "款号必填"
	}
	if d.Quantity <= 0 {
		errs["quantity"] = "数量必须大于零"
	}
	if d.SendDate == nil {
		errs["send_date"] = "发出日期必填"
	}
	if d.SendDate != nil && d.ExpectedDate != nil && d.ExpectedDate.Before(*d.SendDate) {
		errs["expected_date"] = "预计交期不能早于发出日期"
	}
	if d.SendDate != nil && d.DeliveredAt != nil && d.DeliveredAt.Before(*d.SendDate) {
		errs["delivered_at"] = "交付日期不能早于发出日期"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
