package service

import (
	"time"

	"labbudget/database"
	"labbudget/models"

	"github.com/google/uuid"
)

// Ledger 經費帳本：所有讀改寫都經由文件儲存，並以集合鎖序列化
type Ledger struct {
	store database.Store
	locks *collectionLocks
	now   func() time.Time
	newID func() string
}

// NewLedger 建立帳本
func NewLedger(store database.Store) *Ledger {
	return &Ledger{
		store: store,
		locks: newCollectionLocks(),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// Today 帳本使用的目前時間
func (l *Ledger) Today() time.Time { return l.now() }

func (l *Ledger) today() string {
	return l.now().Format(models.DateLayout)
}

func checkIndex(index, length int, what string) error {
	if index < 0 || index >= length {
		return notFound("%s索引 %d 超出範圍 (共 %d 筆)", what, index, length)
	}
	return nil
}

// StorageIndex 把「最新在前」的顯示位置換回儲存位置
func StorageIndex(length, displayIndex int) int {
	return length - 1 - displayIndex
}

func removeAt[T any](records []T, index int) []T {
	out := make([]T, 0, len(records)-1)
	out = append(out, records[:index]...)
	return append(out, records[index+1:]...)
}
