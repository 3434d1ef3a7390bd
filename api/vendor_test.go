package api

import (
	"net/http"
	"testing"

	"labbudget/models"
	"labbudget/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVendorHandler(t *testing.T) {
	env := setupTestEnv(t)

	w := env.do(t, "POST", "/vendors", `{"name":" 大同儀器 ","vat":"12345678","phone":"02-1234","deposit":3000}`)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "大同儀器", responseData[models.Vendor](t, w).Name)
	require.Equal(t, 200, env.do(t, "POST", "/vendors", `{"name":"光華電子"}`).Code)

	w = env.do(t, "PUT", "/vendors/1/deposit", `{"deposit":1500}`)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, float64(1500), responseData[models.Vendor](t, w).Deposit)

	list := responseData[service.VendorList](t, env.do(t, "GET", "/vendors", ""))
	require.Len(t, list.Vendors, 2)
	assert.Equal(t, "12345678", list.Vendors[0].VAT)
	assert.Equal(t, float64(4500), list.TotalDeposits)

	// 寄放金額與金庫無關
	cash := responseData[service.LabCashSummary](t, env.do(t, "GET", "/lab-cash", ""))
	assert.Equal(t, float64(0), cash.Total)

	assert.Equal(t, http.StatusBadRequest, env.do(t, "POST", "/vendors", `{"name":""}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, "PUT", "/vendors/0/deposit", `{"deposit":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(t, "PUT", "/vendors/0/deposit", `{}`).Code)
	assert.Equal(t, http.StatusNotFound, env.do(t, "PUT", "/vendors/9/deposit", `{"deposit":1}`).Code)
}
