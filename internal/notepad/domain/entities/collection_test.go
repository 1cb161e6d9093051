package entities_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notepad/domain/entities"
)

func strPtr(s string) *string { return &s }

func TestNewCollection(t *testing.T) {
	t.Run("empty input yields one empty note", func(t *testing.T) {
		c := entities.NewCollection(nil)

		require.Equal(t, 1, c.Len())
		assert.Equal(t, 0, c.Cursor())
		note, _ := c.Current()
		assert.True(t, note.IsEmpty())
	})

	t.Run("keeps order and starts at first note", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}})

		assert.Equal(t, []entities.Note{{Content: "a"}, {Content: "b"}}, c.Notes())
		note, _ := c.Current()
		assert.Equal(t, "a", note.Content)
	})
}

func TestCollection_Append(t *testing.T) {
	c := entities.NewCollection([]entities.Note{{Content: "a"}})

	c.Append()

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 1, c.Cursor())
	note, _ := c.Current()
	assert.Equal(t, entities.Note{}, note)
}

func TestCollection_SelectNext(t *testing.T) {
	c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}, {Content: "c"}})
	require.NoError(t, c.SelectNext())
	start := c.Cursor()

	for i := 0; i < c.Len(); i++ {
		require.NoError(t, c.SelectNext())
	}

	assert.Equal(t, start, c.Cursor(), "len() steps must return to the starting note")
}

func TestCollection_UpdateCurrent(t *testing.T) {
	c := entities.NewCollection([]entities.Note{{Title: "t", Content: "a"}})

	c.UpdateCurrent("changed", nil)
	note, _ := c.Current()
	assert.Equal(t, entities.Note{Title: "t", Content: "changed"}, note)

	c.UpdateCurrent("again", strPtr(""))
	note, _ = c.Current()
	assert.Equal(t, entities.Note{Title: "", Content: "again"}, note)
}

func TestCollection_DeleteCurrent(t *testing.T) {
	t.Run("only note is replaced by an empty one", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Title: "A", Content: "x"}})

		c.DeleteCurrent()

		require.Equal(t, 1, c.Len())
		assert.Equal(t, 0, c.Cursor())
		note, _ := c.Current()
		assert.Equal(t, entities.Note{}, note)
	})

	t.Run("cursor moves to previous note", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}, {Content: "c"}})
		require.NoError(t, c.SelectNext())
		require.NoError(t, c.SelectNext())

		c.DeleteCurrent()

		assert.Equal(t, 1, c.Cursor())
		assert.Equal(t, []entities.Note{{Content: "a"}, {Content: "b"}}, c.Notes())
	})

	t.Run("first note keeps cursor at zero", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}})

		c.DeleteCurrent()

		assert.Equal(t, 0, c.Cursor())
		note, _ := c.Current()
		assert.Equal(t, "b", note.Content)
	})
}

func TestCollection_DeleteByRef(t *testing.T) {
	t.Run("note before cursor shifts cursor left", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}, {Content: "c"}})
		_, refA := c.Current()
		require.NoError(t, c.SelectNext())
		require.NoError(t, c.SelectNext())

		require.True(t, c.Delete(refA))

		assert.Equal(t, []entities.Note{{Content: "b"}, {Content: "c"}}, c.Notes())
		note, _ := c.Current()
		assert.Equal(t, "c", note.Content, "current note must stay the same")
	})

	t.Run("note after cursor keeps cursor", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}, {Content: "b"}})
		require.NoError(t, c.SelectNext())
		_, refB := c.Current()
		require.NoError(t, c.SelectNext())

		require.True(t, c.Delete(refB))

		assert.Equal(t, 0, c.Cursor())
		assert.Equal(t, []entities.Note{{Content: "a"}}, c.Notes())
	})

	t.Run("unknown ref", func(t *testing.T) {
		c := entities.NewCollection([]entities.Note{{Content: "a"}})
		_, ref := c.Current()
		c.DeleteCurrent()

		assert.False(t, c.Delete(ref))
		assert.Equal(t, 1, c.Len())
	})
}

func TestCollection_Clone(t *testing.T) {
	c := entities.NewCollection([]entities.Note{{Content: "a"}})
	_, ref := c.Current()

	clone := c.Clone()
	clone.UpdateCurrent("b", nil)
	clone.Append()

	note, _ := c.Current()
	assert.Equal(t, "a", note.Content)
	assert.Equal(t, 1, c.Len())

	_, idx, ok := clone.Lookup(ref)
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestCollection_NeverEmpty(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	c := entities.NewCollection(nil)

	for i := 0; i < 500; i++ {
		switch rng.Intn(3) {
		case 0:
			c.Append()
		case 1:
			c.DeleteCurrent()
		default:
			require.NoError(t, c.SelectNext())
		}

		require.GreaterOrEqual(t, c.Len(), 1)
		require.GreaterOrEqual(t, c.Cursor(), 0)
		require.Less(t, c.Cursor(), c.Len())
	}
}
