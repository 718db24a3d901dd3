package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
)

func sampleEntries() []models.ExpenseEntry {
	return []models.ExpenseEntry{
		{Date: "2025-01-05", Transaction: "Salary", Amount: 30000, Category: "Income"},
		{Date: "2025-01-10", Transaction: "Groceries", Amount: -1500, Category: "Food"},
		{Date: "2025-01-12", Transaction: "Dinner", Amount: -500, Category: "Food"},
		{Date: "2025-02-01", Transaction: "Rent", Amount: -8000, Category: "Housing"},
	}
}

func TestSummarizeTotals(t *testing.T) {
	s := Summarize(sampleEntries(), "THB")

	assert.Equal(t, 30000.0, s.TotalIncome)
	assert.Equal(t, 10000.0, s.TotalExpense)
	assert.Equal(t, 20000.0, s.Net)
}

func TestSummarizeCategoryOrderedByTotal(t *testing.T) {
	s := Summarize(sampleEntries(), "THB")

	assert.Len(t, s.ByCategory, 2)
	assert.Equal(t, CategoryTotal{Category: "Housing", Total: 8000}, s.ByCategory[0])
	assert.Equal(t, CategoryTotal{Category: "Food", Total: 2000}, s.ByCategory[1])
}

func TestSummarizeMonthlySeries(t *testing.T) {
	s := Summarize(sampleEntries(), "THB")

	assert.Len(t, s.Monthly, 2)
	assert.Equal(t, MonthTotal{Month: "2025-01", Income: 30000, Expense: 2000}, s.Monthly[0])
	assert.Equal(t, MonthTotal{Month: "2025-02", Income: 0, Expense: 8000}, s.Monthly[1])
}

func TestSummarizeInsights(t *testing.T) {
	s := Summarize(sampleEntries(), "THB")

	assert.NotEmpty(t, s.Insights)
	assert.Contains(t, s.Insights[0], "Positive cash flow")
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, "THB")
	assert.Equal(t, 0.0, s.Net)
	assert.Empty(t, s.ByCategory)
	assert.Empty(t, s.Monthly)
	assert.Empty(t, s.Insights)
}
