package database

import (
	"errors"
	"fmt"
	"time"

	"labbudget/config"
	"labbudget/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// GormStore 以 documents 資料表保存集合，一個集合一列
type GormStore struct {
	db *gorm.DB
}

// NewGormStore 包裝既有連線
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// OpenMySQL 連線 MySQL 並遷移 documents 表
func OpenMySQL(cfg *config.Config) (*GormStore, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=%s&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
	)

	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("連線資料庫失敗: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// 單一使用者情境，連線數不需要大
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)

	if err := db.AutoMigrate(&models.Document{}); err != nil {
		return nil, fmt.Errorf("遷移 documents 表失敗: %w", err)
	}
	return NewGormStore(db), nil
}

// Read 讀取集合；不存在時寫入空陣列
func (s *GormStore) Read(name string) ([]byte, error) {
	var doc models.Document
	err := s.db.Where("name = ?", name).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		if err := s.Write(name, emptyCollection); err != nil {
			return nil, err
		}
		return append([]byte(nil), emptyCollection...), nil
	}
	if err != nil {
		return nil, &IOError{Op: "讀取", Collection: name, Err: err}
	}
	return []byte(doc.Content), nil
}

// Write 覆寫集合
func (s *GormStore) Write(name string, data []byte) error {
	if err := upsertDocument(s.db, name, data); err != nil {
		return &IOError{Op: "寫入", Collection: name, Err: err}
	}
	return nil
}

// WriteAll 在同一個交易中寫入所有集合
func (s *GormStore) WriteAll(writes ...Write) error {
	var failed string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		for _, w := range writes {
			if err := upsertDocument(tx, w.Name, w.Data); err != nil {
				failed = w.Name
				return err
			}
		}
		return nil
	})
	if err != nil {
		return &IOError{Op: "寫入", Collection: failed, Err: err}
	}
	return nil
}

func upsertDocument(db *gorm.DB, name string, data []byte) error {
	doc := models.Document{
		Name:      name,
		Content:   string(data),
		UpdatedAt: time.Now(),
	}
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&doc).Error
}
