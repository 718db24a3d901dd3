package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

type MonthTotal struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

type ExpenseSummary struct {
	TotalIncome  float64         `json:"total_income"`
	TotalExpense float64         `json:"total_expense"`
	Net          float64         `json:"net"`
	ByCategory   []CategoryTotal `json:"by_category"`
	Monthly      []MonthTotal    `json:"monthly"`
	Insights     []string        `json:"insights"`
}

// Summarize mengagregasi baris pengeluaran untuk dashboard: total masuk/keluar,
// breakdown kategori (pengeluaran saja, nilai absolut), deret bulanan, plus
// beberapa insight teks.
func Summarize(entries []models.ExpenseEntry, currency string) ExpenseSummary {
	var summary ExpenseSummary

	catTotals := make(map[string]float64)
	monthTotals := make(map[string]*MonthTotal)
	expenseDays := make(map[string]bool)

	for _, e := range entries {
		if e.IsExpense() {
			summary.TotalExpense += math.Abs(e.Amount)
			catTotals[e.Category] += math.Abs(e.Amount)
			expenseDays[e.Date] = true
		} else {
			summary.TotalIncome += e.Amount
		}

		month := e.Month()
		if month == "" {
			continue
		}
		mt, ok := monthTotals[month]
		if !ok {
			mt = &MonthTotal{Month: month}
			monthTotals[month] = mt
		}
		if e.IsExpense() {
			mt.Expense += math.Abs(e.Amount)
		} else {
			mt.Income += e.Amount
		}
	}

	summary.Net = summary.TotalIncome - summary.TotalExpense

	for cat, total := range catTotals {
		summary.ByCategory = append(summary.ByCategory, CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(summary.ByCategory, func(i, j int) bool {
		return summary.ByCategory[i].Total > summary.ByCategory[j].Total
	})

	for _, mt := range monthTotals {
		summary.Monthly = append(summary.Monthly, *mt)
	}
	sort.Slice(summary.Monthly, func(i, j int) bool {
		return summary.Monthly[i].Month < summary.Monthly[j].Month
	})

	summary.Insights = buildInsights(summary, len(expenseDays), currency)
	return summary
}

func buildInsights(s ExpenseSummary, expenseDays int, currency string) []string {
	var insights []string

	if s.Net > 0 {
		insights = append(insights, fmt.Sprintf("Positive cash flow: you are saving %s this period",
			utils.FormatMoney(s.Net, currency)))
	} else if s.Net < 0 {
		insights = append(insights, fmt.Sprintf("Negative cash flow: you are spending %s more than you earn",
			utils.FormatMoney(-s.Net, currency)))
	}

	if len(s.ByCategory) > 0 && s.TotalExpense > 0 {
		top := s.ByCategory[0]
		pct := top.Total / s.TotalExpense * 100
		insights = append(insights, fmt.Sprintf("%s accounts for %.1f%% of your expenses (%s)",
			top.Category, pct, utils.FormatMoney(top.Total, currency)))
	}

	if expenseDays > 0 {
		avg := s.TotalExpense / float64(expenseDays)
		insights = append(insights, fmt.Sprintf("You spend an average of %s per day",
			utils.FormatMoney(avg, currency)))
	}

	return insights
}
