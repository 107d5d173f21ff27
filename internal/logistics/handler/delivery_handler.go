package handler

import (
	"errors"
	"time"

	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// DeliveryHandler 外协交期处理器
type DeliveryHandler struct {
	svc *service.DeliveryService
}

func NewDeliveryHandler(svc *service.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{svc: svc}
}

// ListDeliveries 交期列表
// GET /api/v1/deliveries?contractor_id=xxx&hide_delivered=true
func (h *DeliveryHandler) ListDeliveries(c *gin.Context) {
	params := repository.DeliveryListParams{
		ContractorID:  c.Query("contractor_id"),
		HideDelivered: c.Query("hide_delivered") == "true",
	}

	items, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取交期列表失败: "+err.Error())
		return
	}
	Success(c, items)
}

// BulkSaveDeliveries 批量保存交期行
// POST /api/v1/deliveries/bulk-save
func (h *DeliveryHandler) BulkSaveDeliveries(c *gin.Context) {
	var req service.BulkSaveDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	outcome, err := h.svc.BulkSave(c.Request.Context(), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Success(c, outcome)
}

// MarkDelivered 标记已交付
// PUT /api/v1/deliveries/:id/delivered
func (h *DeliveryHandler) MarkDelivered(c *gin.Context) {
	var req struct {
		DeliveredAt *time.Time `json:"delivered_at"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}
	deliveredAt := time.Now()
	if req.DeliveredAt != nil {
		deliveredAt = *req.DeliveredAt
	}

	d, err := h.svc.MarkDelivered(c.Request.Context(), c.Param("id"), deliveredAt)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "交期记录不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, d)
}

// DeleteDelivery 删除单条交期记录
// DELETE /api/v1/deliveries/:id
func (h *DeliveryHandler) DeleteDelivery(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "交期记录不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, nil)
}
