package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/shopspring/decimal"
)

// DashboardParams are the presentation filters for a dashboard view.
type DashboardParams struct {
	DateFilter  string `form:"dateFilter"`
	Category    string `form:"category" binding:"max=50"`
	Search      string `form:"search" binding:"max=100"`
	TargetMonth string `form:"targetMonth" binding:"omitempty,monthkey"`
	Window      int    `form:"window" binding:"omitempty,min=1,max=60"`
	Offset      int    `form:"offset" binding:"min=0"`
	Limit       int    `form:"limit,default=20" binding:"min=0,max=200"`
}

// ToViewParams converts query parameters into engine parameters.
func (p DashboardParams) ToViewParams() domain.ViewParams {
	return domain.ViewParams{
		DateFilter:  domain.DateFilter(p.DateFilter),
		Category:    p.Category,
		Search:      p.Search,
		TargetMonth: domain.MonthKey(p.TargetMonth),
		WindowSize:  p.Window,
		Offset:      p.Offset,
		Limit:       p.Limit,
	}
}

// Money is an amount with its display form.
type Money struct {
	Amount    decimal.Decimal `json:"amount"`
	Formatted string          `json:"formatted"`
}

type TotalsResponse struct {
	Income  Money `json:"income"`
	Expense Money `json:"expense"`
	Balance Money `json:"balance"`
}

type CategoryShareResponse struct {
	Category   string `json:"category"`
	Total      Money  `json:"total"`
	Percentage string `json:"percentage"`
}

type MonthlyPointResponse struct {
	Month string `json:"month"`
	Label string `json:"label"`
	Total Money  `json:"total"`
}

// BudgetStatusResponse omits every numeric field when no budget is set.
type BudgetStatusResponse struct {
	Month         string `json:"month"`
	State         string `json:"state"`
	Limit         *Money `json:"limit,omitempty"`
	Spent         *Money `json:"spent,omitempty"`
	Remaining     *Money `json:"remaining,omitempty"`
	Overage       *Money `json:"overage,omitempty"`
	Percentage    string `json:"percentage,omitempty"`
	RawPercentage string `json:"rawPercentage,omitempty"`
	IsOverBudget  bool   `json:"isOverBudget"`
	Tier          string `json:"tier,omitempty"`
	Severity      string `json:"severity,omitempty"`
	Message       string `json:"message,omitempty"`
}

type TransactionPageResponse struct {
	Items  []TransactionResponse `json:"items"`
	Total  int                   `json:"total"`
	Offset int                   `json:"offset"`
	Limit  int                   `json:"limit"`
}

// DashboardResponse is the view model as sent to clients.
type DashboardResponse struct {
	DateFilter        string                  `json:"dateFilter"`
	TargetMonth       string                  `json:"targetMonth"`
	Totals            TotalsResponse          `json:"totals"`
	CategoryBreakdown []CategoryShareResponse `json:"categoryBreakdown"`
	MonthlySeries     []MonthlyPointResponse  `json:"monthlySeries"`
	BudgetStatus      BudgetStatusResponse    `json:"budgetStatus"`
	Insights          []domain.Insight        `json:"insights"`
	Transactions      TransactionPageResponse `json:"transactions"`
	Categories        []string                `json:"categories"`
	GeneratedAt       time.Time               `json:"generatedAt"`
}

// ToDashboardResponse converts a view model, formatting amounts with symbol.
func ToDashboardResponse(vm *domain.ViewModel, symbol string) DashboardResponse {
	money := func(d decimal.Decimal) Money {
		return Money{Amount: d, Formatted: utils.FormatAmount(d, symbol)}
	}
	moneyPtr := func(d decimal.Decimal) *Money {
		m := money(d)
		return &m
	}

	shares := make([]CategoryShareResponse, len(vm.CategoryBreakdown))
	for i, s := range vm.CategoryBreakdown {
		shares[i] = CategoryShareResponse{Category: s.Category, Total: money(s.Total), Percentage: s.Percentage.StringFixed(2)}
	}

	series := make([]MonthlyPointResponse, len(vm.MonthlySeries))
	for i, p := range vm.MonthlySeries {
		series[i] = MonthlyPointResponse{Month: string(p.Month), Label: p.Label, Total: money(p.Total)}
	}

	bs := vm.BudgetStatus
	status := BudgetStatusResponse{Month: string(bs.Month), State: string(bs.State)}
	if bs.HasBudget() {
		status.Limit = moneyPtr(bs.Limit)
		status.Spent = moneyPtr(bs.Spent)
		status.Remaining = moneyPtr(bs.Remaining)
		status.Overage = moneyPtr(bs.Overage)
		status.Percentage = bs.Percentage.StringFixed(2)
		status.RawPercentage = bs.RawPercentage.StringFixed(2)
		status.IsOverBudget = bs.IsOverBudget
		status.Tier = string(bs.Tier)
		status.Severity = string(bs.Severity)
		status.Message = bs.Message
	}

	insights := vm.Insights
	if insights == nil {
		insights = []domain.Insight{}
	}

	return DashboardResponse{
		DateFilter:        string(vm.DateFilter),
		TargetMonth:       string(vm.TargetMonth),
		Totals:            TotalsResponse{Income: money(vm.Totals.Income), Expense: money(vm.Totals.Expense), Balance: money(vm.Totals.Balance)},
		CategoryBreakdown: shares,
		MonthlySeries:     series,
		BudgetStatus:      status,
		Insights:          insights,
		Transactions: TransactionPageResponse{
			Items:  ToTransactionResponses(vm.Transactions.Items),
			Total:  vm.Transactions.Total,
			Offset: vm.Transactions.Offset,
			Limit:  vm.Transactions.Limit,
		},
		Categories:  vm.Categories,
		GeneratedAt: vm.GeneratedAt,
	}
}
