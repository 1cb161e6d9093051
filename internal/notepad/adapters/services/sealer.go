// Package services содержит реализации сервисов безопасности.
package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/nacl/secretbox"

	"quicknote/internal/notepad/ports/services"
)

// Префикс запечатанных значений.
const sealedPrefix = "sb1:"

const (
	keySize   = 32
	nonceSize = 24
)

// Ошибки шифрования.
var (
	ErrInvalidKey   = errors.New("credential key must be 32 bytes hex encoded")
	ErrSealedValue  = errors.New("failed to open sealed value")
	ErrNonceFailure = errors.New("failed to generate nonce")
)

// SecretBoxSealer шифрует значения ключом NaCl secretbox.
type SecretBoxSealer struct {
	key [keySize]byte
}

// NewSealer возвращает SecretBoxSealer для ключа в hex или PlainSealer для пустого ключа.
func NewSealer(hexKey string) (services.Sealer, error) {
	if hexKey == "" {
		return PlainSealer{}, nil
	}

	raw, err := hex.DecodeString(hexKey)
	if err != nil || len(raw) != keySize {
		return nil, ErrInvalidKey
	}

	s := &SecretBoxSealer{}
	copy(s.key[:], raw)
	return s, nil
}

// Seal шифрует значение случайным nonce.
func (s *SecretBoxSealer) Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("%w: %w", ErrNonceFailure, err)
	}

	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return sealedPrefix + base64.StdEncoding.EncodeToString(box), nil
}

// Open расшифровывает значение. Значения без префикса считаются открытыми.
func (s *SecretBoxSealer) Open(value string) (string, error) {
	encoded, ok := strings.CutPrefix(value, sealedPrefix)
	if !ok {
		return value, nil
	}

	box, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", ErrSealedValue
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])

	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrSealedValue
	}
	return string(plain), nil
}

// PlainSealer хранит значения без шифрования.
type PlainSealer struct{}

// Seal возвращает значение без изменений.
func (PlainSealer) Seal(plaintext string) (string, error) {
	return plaintext, nil
}

// Open возвращает значение без изменений. Запечатанное значение без ключа не открыть.
func (PlainSealer) Open(value string) (string, error) {
	if strings.HasPrefix(value, sealedPrefix) {
		return "", ErrSealedValue
	}
	return value, nil
}
