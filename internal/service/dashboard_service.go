package service

import (
	"context"

	"go-inventory-ledger/internal/repository"
)

// DashboardStats is the payload of GET /api/dashboard.
type DashboardStats struct {
	Counts              repository.EntityCounts `json:"counts"`
	TotalInventoryValue string                  `json:"total_inventory_value"`
	PotentialSalesValue string                  `json:"potential_sales_value"`
	LowStockItems       int64                   `json:"low_stock_items"`
	LowStockThreshold   int                     `json:"low_stock_threshold"`
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetSummary(ctx context.Context) (*repository.EntityCounts, error)
}

type dashboardService struct {
	repo repository.DashboardRepository
}

func NewDashboardService(repo repository.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.repo.CountEntities(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	valuation, err := s.repo.GetStockValuation(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	return &DashboardStats{
		Counts:              *counts,
		TotalInventoryValue: valuation.TotalInventoryValue.StringFixed(2),
		PotentialSalesValue: valuation.PotentialSalesValue.StringFixed(2),
		LowStockItems:       valuation.LowStockItems,
		LowStockThreshold:   repository.LowStockThreshold,
	}, nil
}

func (s *dashboardService) GetSummary(ctx context.Context) (*repository.EntityCounts, error) {
	counts, err := s.repo.CountEntities(ctx)
	if err != nil {
		return nil, Persistence(err, "")
	}
	return counts, nil
}
