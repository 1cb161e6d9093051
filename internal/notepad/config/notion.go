package config

import "time"

// NotionConfig представляет настройки экспорта в Notion.
type NotionConfig struct {
	Timeout          time.Duration `yaml:"timeout" env:"QUICKNOTE_NOTION_TIMEOUT" env-default:"15s"`
	RateLimit        float64       `yaml:"rate_limit" env:"QUICKNOTE_NOTION_RATE_LIMIT" env-default:"3"`
	Burst            int           `yaml:"burst" env:"QUICKNOTE_NOTION_BURST" env-default:"3"`
	Preflight        bool          `yaml:"preflight" env:"QUICKNOTE_NOTION_PREFLIGHT" env-default:"false"`
	TitleMarker      string        `yaml:"title_marker" env:"QUICKNOTE_NOTION_TITLE_MARKER" env-default:"Quick note"`
	TitleProperty    string        `yaml:"title_property" env:"QUICKNOTE_NOTION_TITLE_PROPERTY" env-default:"title"`
	BreakerThreshold int           `yaml:"breaker_threshold" env:"QUICKNOTE_NOTION_BREAKER_THRESHOLD" env-default:"5"`
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown" env:"QUICKNOTE_NOTION_BREAKER_COOLDOWN" env-default:"30s"`
}
