package config

import "time"

// EditorConfig задает мягкий лимит размера заметки.
type EditorConfig struct {
	BlockLimit int           `yaml:"block_limit" env:"QUICKNOTE_EDITOR_BLOCK_LIMIT" env-default:"95"`
	Debounce   time.Duration `yaml:"debounce" env:"QUICKNOTE_EDITOR_DEBOUNCE" env-default:"300ms"`
}
