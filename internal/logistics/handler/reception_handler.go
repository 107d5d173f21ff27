package handler

import (
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// ReceptionHandler 收货批次处理器
type ReceptionHandler struct {
	svc *service.ReceptionService
}

func NewReceptionHandler(svc *service.ReceptionService) *ReceptionHandler {
	return &ReceptionHandler{svc: svc}
}

// ListReceptions 收货批次列表
// GET /api/v1/receptions?contractor_id=xxx&page=1&page_size=20
func (h *ReceptionHandler) ListReceptions(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.ReceptionListParams{
		ContractorID: c.Query("contractor_id"),
		Page:         page,
		Size:         pageSize,
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取收货列表失败: "+err.Error())
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}

// GetReception 收货批次详情（含编辑历史）
// GET /api/v1/receptions/:id
func (h *ReceptionHandler) GetReception(c *gin.Context) {
	rec, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "收货批次不存在")
		return
	}
	Success(c, rec)
}

// CreateReception 创建收货批次
// POST /api/v1/receptions
func (h *ReceptionHandler) CreateReception(c *gin.Context) {
	var req service.CreateReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	rec, err := h.svc.Create(c.Request.Context(), GetUserID(c), &req)
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	Created(c, rec)
}

// UpdateReception 编辑收货批次，追加编辑历史
// PUT /api/v1/receptions/:id
func (h *ReceptionHandler) UpdateReception(c *gin.Context) {
	var req service.UpdateReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	rec, err := h.svc.Update(c.Request.Context(), c.Param("id"), GetUserID(c), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "收货批次不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, rec)
}
