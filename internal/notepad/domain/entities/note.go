// Package entities определяет доменные сущности блокнота.
package entities

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyCollection возвращается при операции над пустой коллекцией.
var ErrEmptyCollection = errors.New("note collection is empty")

// Note представляет собой короткую текстовую заметку.
type Note struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// IsEmpty сообщает, что у заметки нет ни заголовка, ни текста.
func (n Note) IsEmpty() bool {
	return n.Title == "" && n.Content == ""
}

// MarshalNotes сериализует последовательность заметок целиком.
func MarshalNotes(notes []Note) ([]byte, error) {
	if notes == nil {
		notes = []Note{}
	}
	data, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode notes: %w", err)
	}
	return data, nil
}

// UnmarshalNotes восстанавливает последовательность заметок.
// Также принимает старый формат: массив строк без заголовков.
func UnmarshalNotes(data []byte) ([]Note, error) {
	var notes []Note
	err := json.Unmarshal(data, &notes)
	if err == nil {
		return notes, nil
	}

	var legacy []string
	if legacyErr := json.Unmarshal(data, &legacy); legacyErr != nil {
		return nil, fmt.Errorf("failed to decode notes: %w", err)
	}

	notes = make([]Note, 0, len(legacy))
	for _, content := range legacy {
		notes = append(notes, Note{Content: content})
	}
	return notes, nil
}
