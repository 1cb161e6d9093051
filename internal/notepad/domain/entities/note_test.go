package entities_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notepad/domain/entities"
)

func TestNotesRoundTrip(t *testing.T) {
	notes := []entities.Note{
		{Title: "A", Content: "l1\nl2"},
		{Title: "", Content: ""},
		{Title: "ü", Content: "  \n\tx"},
	}

	data, err := entities.MarshalNotes(notes)
	require.NoError(t, err)

	decoded, err := entities.UnmarshalNotes(data)
	require.NoError(t, err)
	assert.Equal(t, notes, decoded)
}

func TestMarshalNotes_Nil(t *testing.T) {
	data, err := entities.MarshalNotes(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestUnmarshalNotes(t *testing.T) {
	t.Run("legacy array of strings", func(t *testing.T) {
		notes, err := entities.UnmarshalNotes([]byte(`["first","second\nline"]`))
		require.NoError(t, err)
		assert.Equal(t, []entities.Note{{Content: "first"}, {Content: "second\nline"}}, notes)
	})

	t.Run("garbage", func(t *testing.T) {
		notes, err := entities.UnmarshalNotes([]byte(`{"notes":`))
		require.Error(t, err)
		assert.Nil(t, notes)
		assert.Contains(t, err.Error(), "failed to decode notes")
	})
}

func TestCountBlocks(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"empty", "", 0},
		{"single line", "hello", 1},
		{"blank lines ignored", "a\n\n  \n\tb\n", 2},
		{"whitespace only", " \n\t\n", 0},
		{"crlf", "a\r\nb\r\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entities.CountBlocks(tt.content))
		})
	}
}

func TestSplitParagraphs(t *testing.T) {
	assert.Equal(t, []string{"l1", "", "l2"}, entities.SplitParagraphs("l1\n\nl2"))
	assert.Equal(t, []string{"a", "b"}, entities.SplitParagraphs("a\r\nb"))
	assert.Equal(t, []string{""}, entities.SplitParagraphs(""))
}

func TestValidateCollectionID(t *testing.T) {
	assert.NoError(t, entities.ValidateCollectionID("0123456789abcdef0123456789abcdef"))

	for _, id := range []string{
		"not-32-hex",
		"",
		"0123456789ABCDEF0123456789ABCDEF",
		"01234567-89ab-cdef-0123-456789abcdef",
		"0123456789abcdef0123456789abcdef0",
	} {
		assert.ErrorIs(t, entities.ValidateCollectionID(id), entities.ErrInvalidCollectionID, id)
	}
}

func TestCredential_IsComplete(t *testing.T) {
	assert.True(t, entities.Credential{APIKey: "k", CollectionID: "c"}.IsComplete())
	assert.False(t, entities.Credential{APIKey: "k"}.IsComplete())
	assert.False(t, entities.Credential{}.IsComplete())
}
