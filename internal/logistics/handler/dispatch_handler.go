package handler

import (
	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// DispatchHandler 出货单处理器
type DispatchHandler struct {
	svc *service.DispatchService
}

func NewDispatchHandler(svc *service.DispatchService) *DispatchHandler {
	return &DispatchHandler{svc: svc}
}

// ListDispatches 出货单列表
// GET /api/v1/dispatches?client_id=xxx&campaign_id=xxx&page=1&page_size=20
func (h *DispatchHandler) ListDispatches(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.DispatchListParams{
		ClientID:   c.Query("client_id"),
		CampaignID: c.Query("campaign_id"),
		Page:       page,
		Size:       pageSize,
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取出货列表失败: "+err.Error())
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}

// GetDispatch 出货单详情
// GET /api/v1/dispatches/:id
func (h *DispatchHandler) GetDispatch(c *gin.Context) {
	d, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "出货单不存在")
		return
	}
	Success(c, d)
}

// CreateDispatch 创建出货单（售价创建时定格）
// POST /api/v1/dispatches
func (h *DispatchHandler) CreateDispatch(c *gin.Context) {
	var req service.CreateDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	d, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, d)
}
