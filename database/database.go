package database

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"labbudget/config"
	"labbudget/models"

	"go.uber.org/zap"
)

// ErrIO 儲存媒介無法讀寫
var ErrIO = errors.New("文件儲存讀寫失敗")

// IOError 帶有操作與集合名稱的讀寫錯誤，errors.Is(err, ErrIO) 為 true
type IOError struct {
	Op         string
	Collection string
	Err        error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s 集合 %s 失敗: %v", e.Op, e.Collection, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// Is 讓所有 IOError 都能以 ErrIO 判斷
func (e *IOError) Is(target error) bool { return target == ErrIO }

// Write 一筆待寫入的集合
type Write struct {
	Name string
	Data []byte
}

// Store 具名 JSON 集合的文件儲存
// Read 遇到不存在的集合時會以空陣列建立；WriteAll 對呼叫端而言是全有或全無
type Store interface {
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	WriteAll(writes ...Write) error
}

// Init 依設定建立文件儲存並確保所有集合存在
func Init(cfg *config.Config) (Store, error) {
	var (
		store Store
		err   error
	)
	switch cfg.Store.Driver {
	case "", "file":
		store, err = NewFileStore(cfg.Store.DataDir)
	case "mysql":
		store, err = OpenMySQL(cfg)
	default:
		return nil, fmt.Errorf("不支援的儲存後端: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := EnsureCollections(store); err != nil {
		return nil, err
	}

	zap.S().Infof("文件儲存初始化成功 (%s)", cfg.Store.Driver)
	return store, nil
}

// EnsureCollections 確保每個集合都已存在（不存在時建立空陣列）
func EnsureCollections(store Store) error {
	for _, name := range models.AllCollections() {
		if _, err := store.Read(name); err != nil {
			return err
		}
	}
	return nil
}

// Encode 以兩格縮排、保留非 ASCII 字元的格式編碼
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load 讀取整個集合
func Load[T any](s Store, name string) ([]T, error) {
	data, err := s.Read(name)
	if err != nil {
		return nil, err
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &IOError{Op: "解析", Collection: name, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// NewWrite 將整個集合編碼為待寫入資料
func NewWrite[T any](name string, records []T) (Write, error) {
	if records == nil {
		records = []T{}
	}
	data, err := Encode(records)
	if err != nil {
		return Write{}, &IOError{Op: "編碼", Collection: name, Err: err}
	}
	return Write{Name: name, Data: data}, nil
}

// Save 覆寫整個集合
func Save[T any](s Store, name string, records []T) error {
	w, err := NewWrite(name, records)
	if err != nil {
		return err
	}
	return s.Write(w.Name, w.Data)
}
