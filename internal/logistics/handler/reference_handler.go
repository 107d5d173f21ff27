package handler

import (
	"errors"

	"github.com/bitfantasy/weave/internal/logistics/repository"
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// ReferenceHandler 款号主数据处理器
type ReferenceHandler struct {
	svc *service.ReferenceService
}

func NewReferenceHandler(svc *service.ReferenceService) *ReferenceHandler {
	return &ReferenceHandler{svc: svc}
}

// ListReferences 款号列表
// GET /api/v1/references?campaign_id=xxx&keyword=xxx&page=1&page_size=20
func (h *ReferenceHandler) ListReferences(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.ReferenceListParams{
		CampaignID: c.Query("campaign_id"),
		Keyword:    c.Query("keyword"),
		Page:       page,
		Size:       pageSize,
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取款号列表失败: "+err.Error())
		return
	}
	Success(c, listResponse(items, page, pageSize, total))
}

// GetReference 款号详情
// GET /api/v1/references/:id
func (h *ReferenceHandler) GetReference(c *gin.Context) {
	ref, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "款号不存在")
		return
	}
	Success(c, ref)
}

// CreateReference 创建款号
// POST /api/v1/references
func (h *ReferenceHandler) CreateReference(c *gin.Context) {
	var req service.CreateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ref, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Created(c, ref)
}

// UpdateReference 更新款号
// PUT /api/v1/references/:id
func (h *ReferenceHandler) UpdateReference(c *gin.Context) {
	var req service.UpdateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	ref, err := h.svc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "款号不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}
	Success(c, ref)
}

// ClothRequirements 面料需求估算
// POST /api/v1/references/cloth-requirements
func (h *ReferenceHandler) ClothRequirements(c *gin.Context) {
	var req struct {
		Quantities map[string]int `json:"quantities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "参数错误: "+err.Error())
		return
	}

	result, err := h.svc.ClothRequirements(c.Request.Context(), req.Quantities)
	if err != nil {
		InternalError(c, "估算面料需求失败: "+err.Error())
		return
	}
	Success(c, result)
}
