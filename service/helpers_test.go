package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"labbudget/database"
	"labbudget/models"

	"github.com/stretchr/testify/require"
)

// 測試固定使用 2026-03-15
var testToday = time.Date(2026, 3, 15, 10, 30, 0, 0, time.Local)

func newTestLedger(t *testing.T) (*Ledger, *database.FileStore) {
	t.Helper()
	store, err := database.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return newLedgerOn(store), store
}

func newLedgerOn(store database.Store) *Ledger {
	l := NewLedger(store)
	l.now = func() time.Time { return testToday }
	seq := 0
	l.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return l
}

// failingStore 對指定集合的寫入一律失敗
type failingStore struct {
	database.Store
	failOn map[string]bool
}

func failWrites(store database.Store, names ...string) *failingStore {
	fs := &failingStore{Store: store, failOn: map[string]bool{}}
	for _, n := range names {
		fs.failOn[n] = true
	}
	return fs
}

func (s *failingStore) Write(name string, data []byte) error {
	if s.failOn[name] {
		return &database.IOError{Op: "寫入", Collection: name, Err: errors.New("disk full")}
	}
	return s.Store.Write(name, data)
}

func (s *failingStore) WriteAll(writes ...database.Write) error {
	for _, w := range writes {
		if s.failOn[w.Name] {
			return &database.IOError{Op: "寫入", Collection: w.Name, Err: errors.New("disk full")}
		}
	}
	return s.Store.WriteAll(writes...)
}

func readRaw(t *testing.T, store *database.FileStore, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(store.Dir(), name+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return ""
	}
	require.NoError(t, err)
	return string(data)
}

func writeRaw(t *testing.T, store *database.FileStore, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), name+".json"), []byte(content), 0o644))
}

func mustLoad[T any](t *testing.T, store database.Store, name string) []T {
	t.Helper()
	records, err := database.Load[T](store, name)
	require.NoError(t, err)
	return records
}

func grantA() ProjectInput {
	return ProjectInput{
		Name:      "GrantA",
		StartDate: "2025-08-01",
		EndDate:   "2026-07-31",
		Categories: models.CategoryBudget{
			models.CategoryPersonnel: 10000,
			models.CategoryOperating: 20000,
			models.CategoryEquipment: 20000,
		},
	}
}

func projectNamed(name, end string) models.Project {
	return models.Project{Name: name, EndDate: end, Categories: models.NewCategoryBudget()}
}
