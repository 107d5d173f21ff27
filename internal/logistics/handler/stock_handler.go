package handler

import (
	"github.com/bitfantasy/weave/internal/logistics/service"
	"github.com/gin-gonic/gin"
)

// StockHandler 库存台账处理器
type StockHandler struct {
	svc *service.StockService
}

func NewStockHandler(svc *service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// GetLedger 全量库存台账（现算）
// GET /api/v1/stock
func (h *StockHandler) GetLedger(c *gin.Context) {
	ledger, err := h.svc.Ledger(c.Request.Context())
	if err != nil {
		InternalError(c, "计算库存台账失败: "+err.Error())
		return
	}
	Success(c, ledger)
}

// GetStock 单个款号的库存行，无流水返回全零行
// GET /api/v1/stock/:reference_id
func (h *StockHandler) GetStock(c *gin.Context) {
	entry, err := h.svc.For(c.Request.Context(), c.Param("reference_id"))
	if err != nil {
		InternalError(c, "计算库存失败: "+err.Error())
		return
	}
	Success(c, entry)
}
