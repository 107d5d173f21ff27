package handler

import (
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// ProductionHandler 生产进度处理器
type ProductionHandler struct {
	svc *service.ProductionService
}

func NewProductionHandler(svc *service.ProductionService) *ProductionHandler {
	return &ProductionHandler{svc: svc}
}

// ListProduction 某销售季的生产进度记录
// GET /api/v1/production?campaign_id=xxx
func (h *ProductionHandler) ListProduction(c *gin.Context) {
	campaignID := c.Query("campaign_id")
	if campaignID == "" {
		BadRequest(c, "campaign_id 必填")
		return
	}

	records, err := h.svc.ListByCampaign(c.Request.Context(), campaignID)
	if err != nil {
		InternalError(c, "获取生产进度失败: "+err.Error())
		return
	}
	Success(c, records)
}

// UpdateStageRequest 单条更新某个计数字段
type UpdateStageRequest struct {
	ReferenceID string `json:"reference_id" binding:"required"`
	CampaignID  string `json:"campaign_id" binding:"required"`
	Field       string `json:"field" binding:"required"`
	Value       int    `json:"value"`
}

// UpdateStage 单条更新生产计数
// PUT /api/v1/production/stage
func (h *ProductionHandler) UpdateStage(c *gin.Context) {
	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	record, err := h.svc.UpdateStage(c.Request.Context(), GetUserID(c),
		req.ReferenceID, req.CampaignID, req.Field, req.Value)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, record)
}

// BulkSaveProduction 批量保存某销售季的生产进度。
// 任一行校验失败整批拒绝；持久化层允许部分失败。
// POST /api/v1/production/bulk-save
func (h *ProductionHandler) BulkSaveProduction(c *gin.Context) {
	var req service.BulkSaveProductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	outcome, err := h.svc.BulkSave(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, outcome)
}
