package service

import (
	"sync"
	"testing"

	"labbudget/models"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrentActionsAreSerialized(t *testing.T) {
	l, store := newTestLedger(t)
	_, err := l.AddStudent("Amy", 0)
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := l.ApplyStudentAction("Amy", StudentActionInput{Action: models.ActionAdvance, Amount: 10})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	students := mustLoad[models.Student](t, store, models.CollectionStudents)
	assert.Equal(t, -10.0*n, students[0].Balance)
	assert.Len(t, mustLoad[models.StudentCashLogEntry](t, store, models.CollectionStudentCashLog), n)
}

func TestCollectionLocks_DuplicateNames(t *testing.T) {
	locks := newCollectionLocks()
	unlock := locks.lock(models.CollectionPlans, models.CollectionExpenses, models.CollectionPlans)
	unlock()

	// 解鎖後可以再次取得
	unlock = locks.lock(models.CollectionPlans)
	unlock()
}

func TestLedgerActionMetrics(t *testing.T) {
	l, _ := newTestLedger(t)

	okBefore := testutil.ToFloat64(ledgerActions.WithLabelValues("add_note", resultOK))
	rejectedBefore := testutil.ToFloat64(ledgerActions.WithLabelValues("add_note", resultRejected))

	_, err := l.AddNote(NoteInput{Content: "x"})
	require.NoError(t, err)
	_, err = l.AddNote(NoteInput{Content: ""})
	require.Error(t, err)

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ledgerActions.WithLabelValues("add_note", resultOK)))
	assert.Equal(t, rejectedBefore+1, testutil.ToFloat64(ledgerActions.WithLabelValues("add_note", resultRejected)))
}
