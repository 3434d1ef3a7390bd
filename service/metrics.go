package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ledgerActions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "labbudget_ledger_actions_total",
		Help: "Ledger mutations by action and result.",
	},
	[]string{"action", "result"},
)

// 結果標籤
const (
	resultOK       = "ok"
	resultRejected = "rejected"
	resultError    = "error"
)

func record(action string, err error) {
	result := resultOK
	switch {
	case err == nil:
	case errors.Is(err, ErrValidation), errors.Is(err, ErrNotFound), errors.Is(err, ErrInsufficientFunds):
		result = resultRejected
	default:
		result = resultError
	}
	ledgerActions.WithLabelValues(action, result).Inc()
}
