package api

import (
	"net/http"
	"testing"

	"labbudget/database"
	"labbudget/models"
	"labbudget/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalHandler_Expenses(t *testing.T) {
	env := setupTestEnv(t)

	for _, body := range []string{
		`{"project":"A","category":"人事費","amount":100,"note":"first","date":"2025-03-01"}`,
		`{"project":"B","category":"業務費","amount":200,"date":"2025-03-02"}`,
		`{"project":"A","category":"業務費","amount":300,"date":"2025-03-03"}`,
	} {
		require.Equal(t, 200, env.do(t, "POST", "/expenses", body).Code)
	}

	rows := responseData[[]service.JournalRow](t, env.do(t, "GET", "/expenses", ""))
	require.Len(t, rows, 3)
	assert.Equal(t, float64(300), rows[0].Amount)
	assert.Equal(t, 2, rows[0].Index)
	assert.Equal(t, 0, rows[2].Index)

	rows = responseData[[]service.JournalRow](t, env.do(t, "GET", "/expenses?project=A&category=業務費", ""))
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Index)

	w := env.do(t, "PUT", "/expenses/0", `{"amount":150,"note":" fixed ","date":"2025-04-01"}`)
	require.Equal(t, 200, w.Code)
	edited := responseData[models.Expense](t, w)
	assert.Equal(t, "A", edited.Project)
	assert.Equal(t, float64(150), edited.Amount)
	assert.Equal(t, "fixed", edited.Note)
	assert.Equal(t, "2025-04-01", edited.Date)

	w = env.do(t, "PUT", "/expenses/0", `{"amount":160,"note":"fixed"}`)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "2025-04-01", responseData[models.Expense](t, w).Date)

	w = env.do(t, "DELETE", "/expenses/1", "")
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "B", responseData[models.Expense](t, w).Project)

	stored, err := database.Load[models.Expense](env.store, models.CollectionExpenses)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	assert.Equal(t, float64(150), stored[0].Amount)
	assert.Equal(t, float64(300), stored[1].Amount)
}

func TestJournalHandler_Validation(t *testing.T) {
	env := setupTestEnv(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		status int
	}{
		{"missing project", "POST", "/expenses", `{"category":"人事費","amount":1}`, http.StatusBadRequest},
		{"unknown category", "POST", "/plans", `{"project":"A","category":"餐費","amount":1}`, http.StatusBadRequest},
		{"negative amount", "POST", "/expenses", `{"project":"A","category":"人事費","amount":-1}`, http.StatusBadRequest},
		{"bad date", "POST", "/plans", `{"project":"A","category":"人事費","amount":1,"date":"03/01"}`, http.StatusBadRequest},
		{"edit missing", "PUT", "/expenses/0", `{"amount":1}`, http.StatusNotFound},
		{"delete missing plan", "DELETE", "/plans/0", "", http.StatusNotFound},
		{"promote missing", "POST", "/plans/0/promote", "", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, env.do(t, tt.method, tt.path, tt.body).Code)
		})
	}

	expenses, err := database.Load[models.Expense](env.store, models.CollectionExpenses)
	require.NoError(t, err)
	assert.Empty(t, expenses)
}

func TestJournalHandler_PlansAndPromote(t *testing.T) {
	env := setupTestEnv(t)

	require.Equal(t, 200, env.do(t, "POST", "/plans", `{"project":"A","category":"設備費","amount":8000,"note":"電腦","date":"2025-05-01"}`).Code)
	require.Equal(t, 200, env.do(t, "POST", "/plans", `{"project":"A","category":"雜支費","amount":50,"date":"2025-05-02"}`).Code)

	w := env.do(t, "PUT", "/plans/1", `{"amount":60,"note":"文具","date":"2025-05-03"}`)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, float64(60), responseData[models.Expense](t, w).Amount)

	w = env.do(t, "POST", "/plans/0/promote", "")
	require.Equal(t, 200, w.Code)
	promoted := responseData[models.Expense](t, w)
	assert.Equal(t, "電腦", promoted.Note)
	assert.Equal(t, "2025-05-01", promoted.Date)

	plans := responseData[[]service.JournalRow](t, env.do(t, "GET", "/plans", ""))
	require.Len(t, plans, 1)
	assert.Equal(t, "文具", plans[0].Note)
	assert.Equal(t, 0, plans[0].Index)

	expenses := responseData[[]service.JournalRow](t, env.do(t, "GET", "/expenses", ""))
	require.Len(t, expenses, 1)
	assert.Equal(t, float64(8000), expenses[0].Amount)

	require.Equal(t, 200, env.do(t, "DELETE", "/plans/0", "").Code)
	plans = responseData[[]service.JournalRow](t, env.do(t, "GET", "/plans", ""))
	assert.Empty(t, plans)
}
