package database

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"labbudget/config"
	"labbudget/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFileStore(t *testing.T) *FileStore {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "data"))
	require.NoError(t, err)
	return s
}

func TestFileStore_ReadCreatesMissingCollection(t *testing.T) {
	s := newTestFileStore(t)

	data, err := s.Read(models.CollectionNotes)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))

	_, err = os.Stat(filepath.Join(s.Dir(), "notes.json"))
	assert.NoError(t, err, "不存在的集合應以空陣列建立")

	notes, err := Load[models.Note](s, models.CollectionNotes)
	require.NoError(t, err)
	assert.NotNil(t, notes)
	assert.Empty(t, notes)
}

func TestFileStore_RoundTrip(t *testing.T) {
	s := newTestFileStore(t)

	expenses := []models.Expense{
		{Project: "GrantA", Category: models.CategoryPersonnel, Amount: 20000, Note: "助理薪資", Date: "2026-01-05"},
		{Project: "GrantA", Category: models.CategoryEquipment, Amount: 1234.5, Note: "<示波器> & 探棒", Date: "2026-02-01"},
		{Project: "GrantB", Category: models.CategoryCurrent, Amount: 0, Note: "", Date: "2026-03-10"},
	}
	require.NoError(t, Save(s, models.CollectionExpenses, expenses))

	back, err := Load[models.Expense](s, models.CollectionExpenses)
	require.NoError(t, err)
	assert.Equal(t, expenses, back)

	raw, err := os.ReadFile(filepath.Join(s.Dir(), "expenses.json"))
	require.NoError(t, err)
	// 非 ASCII 與 HTML 字元保持原樣，兩格縮排
	assert.Contains(t, string(raw), "助理薪資")
	assert.Contains(t, string(raw), "<示波器> & 探棒")
	assert.Contains(t, string(raw), "\n  {\n    \"project\": \"GrantA\"")
}

func TestFileStore_SaveNilWritesEmptyArray(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, Save[models.Student](s, models.CollectionStudents, nil))
	data, err := s.Read(models.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(data)))
}

func TestFileStore_CorruptCollection(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir(), "vendors.json"), []byte("{not json"), 0o644))

	_, err := Load[models.Vendor](s, models.CollectionVendors)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))

	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr))
	assert.Equal(t, models.CollectionVendors, ioErr.Collection)
}

func TestFileStore_WriteAll(t *testing.T) {
	s := newTestFileStore(t)

	w1, err := NewWrite(models.CollectionStudents, []models.Student{{Name: "Amy", Balance: 500}})
	require.NoError(t, err)
	w2, err := NewWrite(models.CollectionLabCash, []models.LabCashEntry{{Amount: 500, Type: models.CashOutflow, Note: "報銷給 Amy", Date: "2026-01-01"}})
	require.NoError(t, err)

	require.NoError(t, s.WriteAll(w1, w2))

	students, err := Load[models.Student](s, models.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, []models.Student{{Name: "Amy", Balance: 500}}, students)

	cash, err := Load[models.LabCashEntry](s, models.CollectionLabCash)
	require.NoError(t, err)
	assert.Len(t, cash, 1)

	leftovers, err := filepath.Glob(filepath.Join(s.Dir(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestFileStore_WriteAllIsAllOrNothing(t *testing.T) {
	s := newTestFileStore(t)
	require.NoError(t, Save(s, models.CollectionStudents, []models.Student{{Name: "Amy", Balance: 0}}))

	// plans.json 是一個非空資料夾，無法被替換
	blocked := filepath.Join(s.Dir(), "plans.json")
	require.NoError(t, os.MkdirAll(filepath.Join(blocked, "keep"), 0o755))

	w1, err := NewWrite(models.CollectionStudents, []models.Student{{Name: "Amy", Balance: 999}})
	require.NoError(t, err)
	w2, err := NewWrite(models.CollectionPlans, []models.Plan{{Project: "GrantA", Amount: 1}})
	require.NoError(t, err)

	err = s.WriteAll(w1, w2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrIO))

	students, err := Load[models.Student](s, models.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, 0.0, students[0].Balance, "失敗時不應留下部分寫入")

	leftovers, err := filepath.Glob(filepath.Join(s.Dir(), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestInit_FileDriver(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	cfg := &config.Config{Store: config.StoreConfig{Driver: "file", DataDir: dir}}

	store, err := Init(cfg)
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)

	for _, name := range models.AllCollections() {
		_, err := os.Stat(filepath.Join(dir, name+".json"))
		assert.NoError(t, err, name)
	}

	_, err = Init(&config.Config{Store: config.StoreConfig{Driver: "bolt"}})
	assert.Error(t, err)
}
