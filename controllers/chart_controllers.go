package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/apperrors"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type ChartController struct {
	Sheet *services.SheetClient
}

func NewChartController(sheet *services.SheetClient) *ChartController {
	return &ChartController{Sheet: sheet}
}

// RenderChart -> GET /expenses/chart?kind=category|monthly, PNG untuk dashboard
func (hc *ChartController) RenderChart(c *gin.Context) {
	entries, err := hc.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	summary := services.Summarize(filterEntries(entries, c), baseCurrency())

	kind := c.DefaultQuery("kind", "category")

	var bars []chart.Value
	var title string
	switch kind {
	case "category":
		title = "Spending by Category"
		// Maksimal 8 kategori teratas supaya label tetap terbaca
		top := summary.ByCategory
		if len(top) > 8 {
			top = top[:8]
		}
		for _, ct := range top {
			bars = append(bars, chart.Value{Label: ct.Category, Value: ct.Total})
		}
	case "monthly":
		title = "Monthly Expenses"
		monthly := summary.Monthly
		if len(monthly) > 12 {
			monthly = monthly[len(monthly)-12:]
		}
		for _, mt := range monthly {
			bars = append(bars, chart.Value{Label: mt.Month, Value: mt.Expense})
		}
	default:
		err := fmt.Errorf("%w: unknown chart kind %q", apperrors.ErrValidationFailed, kind)
		utils.RespondError(c, statusForError(err), err)
		return
	}

	if len(bars) == 0 {
		err := fmt.Errorf("%w: no data to chart", apperrors.ErrValidationFailed)
		utils.RespondError(c, statusForError(err), err)
		return
	}

	graph := chart.BarChart{
		Title:    title,
		Height:   400,
		BarWidth: 48,
		Bars:     bars,
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
