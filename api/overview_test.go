package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"labbudget/config"
	"labbudget/database"
	"labbudget/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverviewHandler_Get(t *testing.T) {
	env := setupTestEnv(t)
	require.Equal(t, 200, env.do(t, "POST", "/projects", projectA).Code)
	require.Equal(t, 200, env.do(t, "POST", "/plans", `{"project":"A","category":"業務費","amount":700,"date":"2025-05-01"}`).Code)
	require.Equal(t, 200, env.do(t, "POST", "/vendors", `{"name":"V","deposit":250}`).Code)
	require.Equal(t, 200, env.do(t, "POST", "/lab-cash/adjust", `{"amount":900,"type":"inflow","note":"補助","date":"2025-03-01"}`).Code)

	w := env.do(t, "GET", "/overview", "")
	require.Equal(t, 200, w.Code)
	overview := responseData[service.Overview](t, w)
	assert.Equal(t, env.ledger.Today().Format("2006-01-02"), overview.Date)
	assert.Equal(t, float64(900), overview.LabCashTotal)
	assert.Equal(t, float64(250), overview.TotalDeposits)
	require.Len(t, overview.Projects, 1)
	assert.Equal(t, float64(700), overview.Projects[0].Execution.Planned)
	require.Len(t, overview.PendingPlans, 1)
}

func TestOverviewHandler_DigestDisabled(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/overview/expiry-digest", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, float64(503), decodeResponse(t, w)["code"])

	w = env.do(t, "POST", "/overview/expiry-digest", `{"recipients":["not-an-email"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOverviewHandler_DigestNothingExpiring(t *testing.T) {
	env := setupTestEnv(t)
	env.cfg.Email = config.EmailConfig{Enabled: true, Host: "127.0.0.1", Port: 1, From: "lab"}

	// 沒有收件人
	w := env.do(t, "POST", "/overview/expiry-digest", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 計畫還很久才到期，不寄信
	require.Equal(t, 200, env.do(t, "POST", "/projects", projectA).Code)
	w = env.do(t, "POST", "/overview/expiry-digest", `{"recipients":["pi@example.com"]}`)
	require.Equal(t, 200, w.Code)
	resp := responseData[DigestResponse](t, w)
	assert.False(t, resp.Sent)
	assert.Equal(t, 0, resp.Expiring)
}

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.GlobalConfig = &config.Config{Server: config.ServerConfig{Mode: "release"}}
	defer func() { config.GlobalConfig = nil }()

	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("%w: 找不到", service.ErrNotFound), http.StatusNotFound, "資料不存在: 找不到"},
		{&service.ValidationError{Field: "amount", Message: "金額不可為負數"}, http.StatusBadRequest, "amount: 金額不可為負數"},
		{fmt.Errorf("%w: 餘額 0", service.ErrInsufficientFunds), http.StatusConflict, "金庫餘額不足: 餘額 0"},
		{&database.IOError{Op: "寫入", Collection: "plans", Err: errors.New("disk full")}, http.StatusInternalServerError, "操作失敗"},
	}
	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		respondError(c, tt.err, "操作失敗")
		assert.Equal(t, tt.status, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, float64(tt.status), resp["code"])
		assert.Equal(t, tt.message, resp["message"])
	}
}
