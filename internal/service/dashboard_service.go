package service

import (
	"math"
	"time"

	"github.com/Rafael22222222/smartbiz.lux/internal/repository"

	"github.com/google/uuid"
)

// DashboardStats compares today's aggregates against yesterday's.
type DashboardStats struct {
	TotalSales     float64 `json:"total_sales"`
	NetProfit      float64 `json:"net_profit"`
	Expenses       float64 `json:"expenses"`
	SalesChange    int     `json:"sales_change"`
	ProfitChange   int     `json:"profit_change"`
	ExpensesChange int     `json:"expenses_change"`
}

type DashboardService interface {
	ComputeDashboardStats(ownerID uuid.UUID, asOf time.Time) (*DashboardStats, error)
}

type dashboardService struct {
	saleRepo    repository.SaleRepository
	expenseRepo repository.ExpenseRepository
}

func NewDashboardService(saleRepo repository.SaleRepository, expenseRepo repository.ExpenseRepository) DashboardService {
	return &dashboardService{saleRepo: saleRepo, expenseRepo: expenseRepo}
}

// ComputeDashboardStats sums sales, profit, and expenses over the
// midnight-to-midnight day containing asOf (in asOf's location) and the day
// before it, then derives the percentage deltas.
func (s *dashboardService) ComputeDashboardStats(ownerID uuid.UUID, asOf time.Time) (*DashboardStats, error) {
	todayStart := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 0, 0, 0, 0, asOf.Location())
	tomorrowStart := todayStart.AddDate(0, 0, 1)
	yesterdayStart := todayStart.AddDate(0, 0, -1)

	totalSales, netProfit, err := s.saleRepo.SumBetween(ownerID, todayStart, tomorrowStart)
	if err != nil {
		return nil, err
	}
	yesterdaySales, yesterdayProfit, err := s.saleRepo.SumBetween(ownerID, yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}

	expenses, err := s.expenseRepo.SumBetween(ownerID, todayStart, tomorrowStart)
	if err != nil {
		return nil, err
	}
	yesterdayExpenses, err := s.expenseRepo.SumBetween(ownerID, yesterdayStart, todayStart)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		TotalSales:     totalSales,
		NetProfit:      netProfit,
		Expenses:       expenses,
		SalesChange:    changePercent(totalSales, yesterdaySales),
		ProfitChange:   changePercent(netProfit, yesterdayProfit),
		ExpensesChange: changePercent(expenses, yesterdayExpenses),
	}, nil
}

// changePercent is the day-over-day delta rounded to the nearest integer,
// half away from zero. A zero baseline reports 0, never a division by zero.
func changePercent(today, yesterday float64) int {
	if yesterday == 0 {
		return 0
	}
	return int(math.Round((today - yesterday) / yesterday * 100))
}
