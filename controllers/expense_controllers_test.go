package controllers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/controllers"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/models"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/services"
	"github.com/Bravetrunk/Prakit-Clinic-Accounting-Book/utils"
)

// fakeSheet meniru kontrak web-app endpoint: GET -> {success,data}, POST -> append
type fakeSheet struct {
	rows     []models.ExpenseEntry
	failNext bool
	appended []models.ExpenseEntry
}

func (fs *fakeSheet) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fs.failNext {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": true,
				"data":    fs.rows,
			})
		case http.MethodPost:
			var entry models.ExpenseEntry
			if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			fs.appended = append(fs.appended, entry)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true})
		}
	}
}

func setupExpenseRouter(t *testing.T, fs *fakeSheet) (*gin.Engine, *httptest.Server) {
	t.Helper()
	utils.InitLogger()
	gin.SetMode(gin.TestMode)

	server := httptest.NewServer(fs.handler())
	t.Cleanup(server.Close)

	sheet := services.NewSheetClient(server.URL)
	expenseCtrl := controllers.NewExpenseController(sheet)
	exportCtrl := controllers.NewExportController(sheet)
	chartCtrl := controllers.NewChartController(sheet)

	r := gin.New()
	r.Use(fakeAuth())
	r.GET("/expenses", expenseCtrl.ListExpenses)
	r.POST("/expenses", expenseCtrl.AddExpense)
	r.GET("/expenses/summary", expenseCtrl.GetSummary)
	r.GET("/expenses/chart", chartCtrl.RenderChart)
	r.GET("/expenses/export/csv", exportCtrl.ExportCSV)
	r.GET("/expenses/export/excel", exportCtrl.ExportExcel)
	return r, server
}

func expenseRows() []models.ExpenseEntry {
	return []models.ExpenseEntry{
		{Date: "2025-03-01", Transaction: "Salary", Amount: 30000, Category: "Income"},
		{Date: "2025-03-05", Transaction: "Groceries", Amount: -1500, Category: "Food", Tags: "essential,recurring"},
		{Date: "2025-04-02", Transaction: "Cinema", Amount: -300, Category: "Leisure"},
	}
}

func TestListExpensesWithFilters(t *testing.T) {
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: expenseRows()})

	var resp struct {
		Data []models.ExpenseEntry `json:"data"`
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 3)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses?month=2025-03&type=expense", nil))
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Groceries", resp.Data[0].Transaction)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses?q=cinema", nil))
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Leisure", resp.Data[0].Category)

	// Filter tag exact match, bukan substring: "recur" tidak kena
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses?tag=recurring", nil))
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, "Groceries", resp.Data[0].Transaction)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses?tag=recur", nil))
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Empty(t, resp.Data)
}

func TestListExpensesSkipsInvalidRows(t *testing.T) {
	rows := append(expenseRows(), models.ExpenseEntry{Date: "bad-date", Transaction: "X", Category: "Y"})
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: rows})

	var resp struct {
		Data []models.ExpenseEntry `json:"data"`
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &resp)
	assert.Len(t, resp.Data, 3)
}

func TestAddExpenseAcknowledged(t *testing.T) {
	fs := &fakeSheet{}
	r, _ := setupExpenseRouter(t, fs)

	body := `{"date":"2025-05-01","transaction":"Taxi","amount":-120,"category":"Transport"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, fs.appended, 1)
	assert.Equal(t, "Taxi", fs.appended[0].Transaction)
}

func TestAddExpenseValidation(t *testing.T) {
	fs := &fakeSheet{}
	r, _ := setupExpenseRouter(t, fs)

	// Tanggal invalid ditolak di boundary, tidak ada yang terkirim
	body := `{"date":"01/05/2025","transaction":"Taxi","amount":-120,"category":"Transport"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, fs.appended)
}

func TestAddExpenseEndpointDownSurfacesError(t *testing.T) {
	fs := &fakeSheet{failNext: true}
	r, _ := setupExpenseRouter(t, fs)

	body := `{"date":"2025-05-01","transaction":"Taxi","amount":-120,"category":"Transport"}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/expenses", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	// Acknowledged write: kegagalan endpoint tidak dilaporkan sebagai sukses
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Empty(t, fs.appended)
}

func TestExpenseSummary(t *testing.T) {
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: expenseRows()})

	var resp struct {
		Data services.ExpenseSummary `json:"data"`
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/summary", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	json.Unmarshal(w.Body.Bytes(), &resp)

	assert.Equal(t, 30000.0, resp.Data.TotalIncome)
	assert.Equal(t, 1800.0, resp.Data.TotalExpense)
	assert.Equal(t, 28200.0, resp.Data.Net)
	assert.NotEmpty(t, resp.Data.Insights)
}

func TestExportCSV(t *testing.T) {
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: expenseRows()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/export/csv", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Date,Transaction,Amount,Type,Category,Tags", strings.TrimSpace(lines[0]))
	assert.Contains(t, lines[2], "Groceries")
	assert.Contains(t, lines[2], "-1500.00")
	assert.Contains(t, lines[2], "Expense")
}

func TestExportExcel(t *testing.T) {
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: expenseRows()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/export/excel", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/vnd.ms-excel")
	assert.Contains(t, w.Body.String(), "<table")
	assert.Contains(t, w.Body.String(), "Groceries")
}

func TestRenderChartPNG(t *testing.T) {
	r, _ := setupExpenseRouter(t, &fakeSheet{rows: expenseRows()})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/chart?kind=category", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	// Signature PNG
	assert.True(t, strings.HasPrefix(w.Body.String(), "\x89PNG"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/expenses/chart?kind=bogus", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
