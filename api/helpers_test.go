package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"labbudget/config"
	"labbudget/database"
	"labbudget/middleware"
	"labbudget/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "Lab-Secret"

type testEnv struct {
	router *gin.Engine
	ledger *service.Ledger
	store  *database.FileStore
	cfg    *config.Config
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("lab-secret"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		Auth:   config.AuthConfig{Username: "admin", PasswordHash: string(hash)},
		JWT:    config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour},
	}
	config.GlobalConfig = cfg
	middleware.InitJWT(cfg)
	t.Cleanup(func() { config.GlobalConfig = nil })

	store, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ledger := service.NewLedger(store)

	auth, err := NewAuthHandler(cfg, ledger)
	require.NoError(t, err)
	projects := NewProjectHandler(ledger)
	journal := NewJournalHandler(ledger)
	funds := NewFundsHandler(ledger)
	vendors := NewVendorHandler(ledger)
	notes := NewNoteHandler(ledger)
	overview := NewOverviewHandler(ledger, service.NewEmailService(&cfg.Email))
	export := NewExportHandler(ledger)

	r := gin.New()
	r.POST("/auth/login", auth.Login)
	r.POST("/auth/logout", auth.Logout)

	g := r.Group("", middleware.SessionAuth())
	g.GET("/session", auth.Session)

	g.GET("/projects", projects.List)
	g.POST("/projects", projects.Create)
	g.GET("/projects/:index", projects.Get)
	g.PUT("/projects/:index", projects.Update)
	g.DELETE("/projects/:index", projects.Delete)

	g.GET("/expenses", journal.ListExpenses)
	g.POST("/expenses", journal.AddExpense)
	g.PUT("/expenses/:index", journal.EditExpense)
	g.DELETE("/expenses/:index", journal.DeleteExpense)
	g.GET("/plans", journal.ListPlans)
	g.POST("/plans", journal.AddPlan)
	g.PUT("/plans/:index", journal.EditPlan)
	g.DELETE("/plans/:index", journal.DeletePlan)
	g.POST("/plans/:index/promote", journal.PromotePlan)

	g.GET("/lab-cash", funds.LabCash)
	g.POST("/lab-cash/adjust", funds.AdjustLabCash)
	g.GET("/students", funds.Students)
	g.POST("/students", funds.AddStudent)
	g.PUT("/students/:index", funds.UpdateStudent)
	g.POST("/students/:name/actions", funds.StudentAction)
	g.GET("/cash-log", funds.CashLog)
	g.DELETE("/cash-log/:index", funds.DeleteCashLog)
	g.POST("/cash-log/:index/reverse", funds.ReverseCashLog)

	g.GET("/vendors", vendors.List)
	g.POST("/vendors", vendors.Create)
	g.PUT("/vendors/:index/deposit", vendors.UpdateDeposit)

	g.GET("/notes", notes.List)
	g.POST("/notes", notes.Create)
	g.PUT("/notes/:index", notes.Update)
	g.DELETE("/notes/:index", notes.Delete)

	g.GET("/overview", overview.Get)
	g.POST("/overview/expiry-digest", overview.SendExpiryDigest)

	g.GET("/export/expenses.csv", export.ExportCSV)
	g.GET("/export/excel", export.ExportExcel)

	return &testEnv{router: r, ledger: ledger, store: store, cfg: cfg}
}

// do 以已登入身分送出請求
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	token, err := middleware.GenerateToken("admin", time.Hour)
	require.NoError(t, err)
	return e.send(method, path, body, token)
}

func (e *testEnv) send(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// responseData 取出 data 欄位並轉成指定型別
func responseData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var resp struct {
		Code int `json:"code"`
		Data T   `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}
