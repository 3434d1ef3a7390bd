package database

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

var emptyCollection = []byte("[]\n")

// FileStore 以 <dir>/<name>.json 保存每個集合
type FileStore struct {
	dir string
}

// NewFileStore 建立檔案儲存，必要時建立資料夾
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &IOError{Op: "建立資料夾", Collection: dir, Err: err}
	}
	return &FileStore{dir: dir}, nil
}

// Dir 資料夾路徑
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Read 讀取集合；檔案不存在時寫入空陣列
func (s *FileStore) Read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		if err := s.Write(name, emptyCollection); err != nil {
			return nil, err
		}
		return append([]byte(nil), emptyCollection...), nil
	}
	if err != nil {
		return nil, &IOError{Op: "讀取", Collection: name, Err: err}
	}
	return data, nil
}

// Write 先寫入暫存檔再 rename，讀者不會看到寫到一半的檔案
func (s *FileStore) Write(name string, data []byte) error {
	tmp, err := s.stage(name, data)
	if err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		os.Remove(tmp)
		return &IOError{Op: "寫入", Collection: name, Err: err}
	}
	return nil
}

// WriteAll 先把所有暫存檔寫好，再依序 rename；任一步失敗就把已替換的集合還原
func (s *FileStore) WriteAll(writes ...Write) error {
	staged := make([]string, 0, len(writes))
	cleanup := func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}

	for _, w := range writes {
		tmp, err := s.stage(w.Name, w.Data)
		if err != nil {
			cleanup()
			return err
		}
		staged = append(staged, tmp)
	}

	previous := make([][]byte, len(writes))
	for i, w := range writes {
		data, err := os.ReadFile(s.path(w.Name))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			cleanup()
			return &IOError{Op: "讀取", Collection: w.Name, Err: err}
		}
		previous[i] = data
	}

	for i, w := range writes {
		if err := os.Rename(staged[i], s.path(w.Name)); err != nil {
			for _, tmp := range staged[i:] {
				os.Remove(tmp)
			}
			s.restore(writes[:i], previous[:i])
			return &IOError{Op: "寫入", Collection: w.Name, Err: err}
		}
	}
	return nil
}

func (s *FileStore) restore(done []Write, previous [][]byte) {
	for i, w := range done {
		var err error
		if previous[i] == nil {
			err = os.Remove(s.path(w.Name))
		} else {
			err = s.Write(w.Name, previous[i])
		}
		if err != nil {
			zap.S().Errorf("還原集合 %s 失敗: %v", w.Name, err)
		}
	}
}

func (s *FileStore) stage(name string, data []byte) (string, error) {
	f, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return "", &IOError{Op: "寫入", Collection: name, Err: err}
	}
	tmp := f.Name()
	if err := f.Chmod(0o644); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &IOError{Op: "寫入", Collection: name, Err: err}
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &IOError{Op: "寫入", Collection: name, Err: err}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return "", &IOError{Op: "寫入", Collection: name, Err: err}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return "", &IOError{Op: "寫入", Collection: name, Err: err}
	}
	return tmp, nil
}
