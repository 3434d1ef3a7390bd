package config

import _ "embed"

// DefaultConfigYAML 內嵌的預設設定
//
//go:embed config.yaml
var DefaultConfigYAML []byte

const (
	defaultPassword  = "changeme"
	defaultJWTSecret = "labbudget-dev-secret"
)
