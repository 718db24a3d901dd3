package controllers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

type ExpenseController struct {
	Sheet *services.SheetClient
}

func NewExpenseController(sheet *services.SheetClient) *ExpenseController {
	return &ExpenseController{Sheet: sheet}
}

func baseCurrency() string {
	if cur := os.Getenv("BASE_CURRENCY"); cur != "" {
		return cur
	}
	return "THB"
}

// filterEntries menerapkan filter query dashboard di atas hasil fetch.
// month=YYYY-MM, category, type=income|expense, tag=exact match,
// q=substring search.
func filterEntries(entries []models.ExpenseEntry, c *gin.Context) []models.ExpenseEntry {
	month := c.Query("month")
	category := c.Query("category")
	kind := c.Query("type")
	tag := strings.ToLower(c.Query("tag"))
	q := strings.ToLower(c.Query("q"))

	filtered := make([]models.ExpenseEntry, 0, len(entries))
	for _, e := range entries {
		if month != "" && e.Month() != month {
			continue
		}
		if category != "" && e.Category != category {
			continue
		}
		if kind == "income" && e.IsExpense() {
			continue
		}
		if kind == "expense" && !e.IsExpense() {
			continue
		}
		if tag != "" && !hasTag(e, tag) {
			continue
		}
		if q != "" {
			haystack := strings.ToLower(e.Transaction + " " + e.Category + " " + e.Tags)
			if !strings.Contains(haystack, q) {
				continue
			}
		}
		filtered = append(filtered, e)
	}
	return filtered
}

func hasTag(e models.ExpenseEntry, tag string) bool {
	for _, t := range e.TagList() {
		if strings.ToLower(t) == tag {
			return true
		}
	}
	return false
}

// ListExpenses -> GET /expenses, baris dari endpoint tabular dengan filter
func (ec *ExpenseController) ListExpenses(c *gin.Context) {
	entries, err := ec.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Expense entries", filterEntries(entries, c))
}

// AddExpense -> POST /expenses, append satu baris. Write menunggu ack
// endpoint; gagal = error ke user, bukan sukses optimis.
func (ec *ExpenseController) AddExpense(c *gin.Context) {
	var entry models.ExpenseEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := ec.Sheet.AppendEntry(c.Request.Context(), entry); err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	utils.InfoLogger.Printf("Expense appended: %s %s %.2f", entry.Date, entry.Category, entry.Amount)
	utils.RespondJSON(c, http.StatusCreated, "Entry added", entry)
}

// GetSummary -> GET /expenses/summary, agregat + insight untuk dashboard.
// ?currency= mengubah mata uang tampilan di teks insight saja.
func (ec *ExpenseController) GetSummary(c *gin.Context) {
	entries, err := ec.Sheet.FetchEntries(c.Request.Context())
	if err != nil {
		utils.RespondError(c, statusForError(err), err)
		return
	}

	currency := c.DefaultQuery("currency", baseCurrency())
	summary := services.Summarize(filterEntries(entries, c), currency)
	utils.RespondJSON(c, http.StatusOK, "Expense summary", summary)
}
