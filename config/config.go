package config

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config 應用設定
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Store    StoreConfig    `mapstructure:"store"`
	Database DatabaseConfig `mapstructure:"database"`
	Auth     AuthConfig     `mapstructure:"auth"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Email    EmailConfig    `mapstructure:"email"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig 伺服器設定
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// StoreConfig 文件儲存設定
// driver: file（data_dir 下的 JSON 檔）或 mysql（documents 資料表）
type StoreConfig struct {
	Driver  string `mapstructure:"driver"`
	DataDir string `mapstructure:"data_dir"`
}

// DatabaseConfig 資料庫設定（僅 store.driver=mysql 時使用）
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Charset  string `mapstructure:"charset"`
}

// AuthConfig 共用密碼登入設定
type AuthConfig struct {
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	PasswordHash  string `mapstructure:"password_hash"`
	LoginAttempts int    `mapstructure:"login_attempts"`
	LoginWindow   int    `mapstructure:"login_window_seconds"`
}

// JWTConfig JWT 設定
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// EmailConfig 郵件設定
type EmailConfig struct {
	Enabled    bool     `mapstructure:"enabled"`
	Host       string   `mapstructure:"host"`
	Port       int      `mapstructure:"port"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	From       string   `mapstructure:"from"`
	Recipients []string `mapstructure:"recipients"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level string `mapstructure:"level"`
}

var (
	// GlobalConfig 全域設定實例
	GlobalConfig *Config
)

// LoadConfig 載入設定
// 優先順序: 環境變數 > 外部設定檔 > 內嵌預設設定
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("讀取內嵌設定失敗: %w", err)
	}
	zap.S().Info("已載入內嵌預設設定")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			zap.S().Warnf("無法讀取指定設定檔 %s: %v", configPath, err)
		} else {
			zap.S().Infof("已合併外部設定檔: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/labbudget")
		externalViper.AddConfigPath("$HOME/.labbudget")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				zap.S().Warnf("合併外部設定失敗: %v", err)
			} else {
				zap.S().Infof("已合併外部設定檔: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("LABBUDGET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析設定失敗: %w", err)
	}

	cfg.applyDefaults()
	GlobalConfig = &cfg

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.JWT.ExpireHours <= 0 {
		c.JWT.ExpireHours = 12
	}
	c.JWT.ExpireTime = time.Duration(c.JWT.ExpireHours) * time.Hour

	if c.Store.Driver == "" {
		c.Store.Driver = "file"
	}
	if c.Store.DataDir == "" {
		c.Store.DataDir = "data"
	}
	if c.Auth.Username == "" {
		c.Auth.Username = "admin"
	}
	if c.Auth.LoginAttempts <= 0 {
		c.Auth.LoginAttempts = 5
	}
	if c.Auth.LoginWindow <= 0 {
		c.Auth.LoginWindow = 60
	}
}

// LoginWindowDuration 登入限流視窗
func (a AuthConfig) LoginWindowDuration() time.Duration {
	return time.Duration(a.LoginWindow) * time.Second
}

// GetConfig 取得全域設定
func GetConfig() *Config {
	return GlobalConfig
}

// PrintConfig 印出目前設定（隱藏敏感資訊）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	s := zap.S()
	s.Info("目前設定:")
	s.Infof("  伺服器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	switch GlobalConfig.Store.Driver {
	case "mysql":
		s.Infof("  儲存: mysql %s@%s:%s/%s",
			GlobalConfig.Database.Username,
			GlobalConfig.Database.Host,
			GlobalConfig.Database.Port,
			GlobalConfig.Database.DBName)
	default:
		s.Infof("  儲存: JSON 檔案 (%s)", GlobalConfig.Store.DataDir)
	}
	s.Infof("  郵件服務: %v", GlobalConfig.Email.Enabled)
	for _, w := range defaultSecretWarnings(GlobalConfig) {
		s.Warn("  " + w)
	}
}

// defaultSecretWarnings 列出仍沿用內嵌預設值的機密設定
func defaultSecretWarnings(cfg *Config) []string {
	var warnings []string
	if cfg.Auth.PasswordHash == "" && cfg.Auth.Password == defaultPassword {
		warnings = append(warnings, "登入密碼仍為預設值，請在設定檔或 LABBUDGET_AUTH_PASSWORD 中修改")
	}
	if cfg.JWT.Secret == defaultJWTSecret {
		warnings = append(warnings, "jwt.secret 仍為預設值，任何人都能簽發有效 token，請在設定檔或 LABBUDGET_JWT_SECRET 中修改")
	}
	return warnings
}
