package handler

import (
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// FulfillmentHandler 履约报表处理器
type FulfillmentHandler struct {
	svc *service.FulfillmentService
}

func NewFulfillmentHandler(svc *service.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{svc: svc}
}

// CampaignReport 某销售季全部款号的履约报表
// GET /api/v1/reports/campaigns/:campaign_id
func (h *FulfillmentHandler) CampaignReport(c *gin.Context) {
	report, err := h.svc.ReportByCampaign(c.Request.Context(), c.Param("campaign_id"))
	if err != nil {
		InternalError(c, "计算销售季报表失败: "+err.Error())
		return
	}
	Success(c, report)
}

// ReferenceReport 单个 (款号, 销售季) 的履约报表
// GET /api/v1/reports/references/:reference_id?campaign_id=xxx
func (h *FulfillmentHandler) ReferenceReport(c *gin.Context) {
	campaignID := c.Query("campaign_id")
	if campaignID == "" {
		BadRequest(c, "campaign_id 必填")
		return
	}

	report, err := h.svc.ReferenceReport(c.Request.Context(), c.Param("reference_id"), campaignID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "款号不存在")
			return
		}
		InternalError(c, "计算款号报表失败: "+err.Error())
		return
	}
	Success(c, report)
}

// ClientReport 某客户在某销售季的已售/已发对比
// GET /api/v1/reports/clients/:client_id?campaign_id=xxx
func (h *FulfillmentHandler) ClientReport(c *gin.Context) {
	campaignID := c.Query("campaign_id")
	if campaignID == "" {
		BadRequest(c, "campaign_id 必填")
		return
	}

	reports, err := h.svc.ClientReport(c.Request.Context(), c.Param("client_id"), campaignID)
	if err != nil {
		InternalError(c, "计算客户报表失败: "+err.Error())
		return
	}
	Success(c, reports)
}
