package service

import (
	"context"

	"github.com/bitfantasy/weave/internal/logistics/engine"
	"github.com/bitfantasy/weave/internal/logistics/repository"
)

// StockService 库存台账服务。
// 库存永远由收货和出货全量快照现算，数据库里没有库存列。
type StockService struct {
	receptions *repository.ReceptionRepository
	dispatches *repository.DispatchRepository
}

func NewStockService(receptions *repository.ReceptionRepository, dispatches *repository.DispatchRepository) *StockService {
	return &StockService{receptions: receptions, dispatches: dispatches}
}

// Ledger 现算全量库存台账
func (s *StockService) Ledger(ctx context.Context) (map[string]engine.StockEntry, error) {
	receptions, err := s.receptions.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	dispatches, err := s.dispatches.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return engine.ComputeStock(receptions, dispatches), nil
}

// For 现算单个款号的库存行，无流水返回全零行
func (s *StockService) For(ctx context.Context, referenceID string) (engine.StockEntry, error) {
	ledger, err := s.Ledger(ctx)
	if err != nil {
		return engine.StockEntry{}, err
	}
	return engine.StockFor(ledger, referenceID), nil
}
