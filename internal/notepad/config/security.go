package config

import "time"

// SecurityConfig содержит секреты локального API.
type SecurityConfig struct {
	// APISecret включает проверку Bearer JWT на всех маршрутах API, если не пуст.
	APISecret string        `yaml:"api_secret" env:"QUICKNOTE_SECURITY_API_SECRET" env-default:""`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"QUICKNOTE_SECURITY_TOKEN_TTL" env-default:"720h"`
	// CredentialKey - 32 байта в hex для шифрования ключа API в хранилище.
	CredentialKey string `yaml:"credential_key" env:"QUICKNOTE_CREDENTIAL_KEY" env-default:""`
}
