package controllers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-pdf/fpdf"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type ExportController struct {
	Sheet *services.SheetClient
}

func NewExportController(sheet *services.SheetClient) *ExportController {
	return &ExportController{Sheet: sheet}
}

func entryType(e models.ExpenseEntry) string {
	if e.IsExpense() {
		return "Expense"
	}
	return "Income"
}

func exportFilename(ext string) string {
	return fmt.Sprintf("expense-report-%s.%s", time.Now().Format("2006-01-02"), ext)
}

// ExportCSV -> GET /expenses/export/csv
func (xc *ExportController) ExportCSV(c *gin.Context) {
	entries, err := xc.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	entries = filterEntries(entries, c)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"Date", "Transaction", "Amount", "Type", "Category", "Tags"})
	for _, e := range entries {
		w.Write([]string{
			e.Date,
			e.Transaction,
			fmt.Sprintf("%.2f", e.Amount),
			entryType(e),
			e.Category,
			e.Tags,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename("csv"))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPDF -> GET /expenses/export/pdf, laporan ringkas: header, statistik,
// lalu maksimal 20 baris transaksi terakhir (sama seperti dashboard lama)
func (xc *ExportController) ExportPDF(c *gin.Context) {
	entries, err := xc.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	entries = filterEntries(entries, c)
	summary := services.Summarize(entries, baseCurrency())

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, "Expense Report")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 8, "Generated "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Total income: %.2f", summary.TotalIncome))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Total expenses: %.2f", summary.TotalExpense))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Net balance: %.2f", summary.Net))
	pdf.Ln(12)

	// Tabel transaksi
	pdf.SetFont("Helvetica", "B", 9)
	widths := []float64{24, 60, 24, 20, 32, 30}
	headers := []string{"Date", "Transaction", "Amount", "Type", "Category", "Tags"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	limit := len(entries)
	if limit > 20 {
		limit = 20
	}
	for _, e := range entries[:limit] {
		cols := []string{
			e.Date,
			truncate(e.Transaction, 38),
			fmt.Sprintf("%.2f", e.Amount),
			entryType(e),
			truncate(e.Category, 20),
			truncate(e.Tags, 18),
		}
		for i, col := range cols {
			pdf.CellFormat(widths[i], 6, col, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+exportFilename("pdf"))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// ExportExcel -> GET /expenses/export/excel. Workbook HTML-table, format
// yang sama dengan export dashboard lama; Excel membukanya langsung.
func (xc *ExportController) ExportExcel(c *gin.Context) {
	entries, err := xc.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	entries = filterEntries(entries, c)

	var sb strings.Builder
	sb.WriteString("<html><head><meta charset=\"UTF-8\"></head><body><table border=\"1\">")
	sb.WriteString("<tr><th>Date</th><th>Transaction</th><th>Amount</th><th>Type</th><th>Category</th><th>Tags</th></tr>")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf(
			"<tr><td>%s</td><td>%s</td><td>%.2f</td><td>%s</td><td>%s</td><td>%s</td></tr>",
			htmlEscape(e.Date), htmlEscape(e.Transaction), e.Amount,
			entryType(e), htmlEscape(e.Category), htmlEscape(e.Tags)))
	}
	sb.WriteString("</table></body></html>")

	c.Header("Content-Disposition", "attachment; filename="+exportFilename("xls"))
	c.Data(http.StatusOK, "application/vnd.ms-excel", []byte(sb.String()))
}

// truncate memotong per rune supaya nama non-ASCII tidak terbelah di tengah.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}
