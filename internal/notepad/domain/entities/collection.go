package entities

// Ref - ссылка на заметку, действительная только в пределах процесса.
// Позиция заметки меняется при удалениях, Ref остается прежней.
type Ref uint64

// Collection - упорядоченный набор заметок с курсором.
// Всегда содержит хотя бы одну заметку, 0 <= cursor < Len().
type Collection struct {
	notes   []Note
	refs    []Ref
	cursor  int
	nextRef Ref
}

// NewCollection создает коллекцию из заметок. Пустой набор заменяется одной пустой заметкой.
func NewCollection(notes []Note) *Collection {
	c := &Collection{
		notes: make([]Note, 0, len(notes)+1),
		refs:  make([]Ref, 0, len(notes)+1),
	}
	for _, n := range notes {
		c.push(n)
	}
	if len(c.notes) == 0 {
		c.push(Note{})
	}
	return c
}

func (c *Collection) push(n Note) {
	c.nextRef++
	c.notes = append(c.notes, n)
	c.refs = append(c.refs, c.nextRef)
}

// Len возвращает количество заметок.
func (c *Collection) Len() int {
	return len(c.notes)
}

// Cursor возвращает индекс текущей заметки.
func (c *Collection) Cursor() int {
	return c.cursor
}

// Current возвращает текущую заметку и ее ссылку.
func (c *Collection) Current() (Note, Ref) {
	return c.notes[c.cursor], c.refs[c.cursor]
}

// Notes возвращает копию последовательности заметок.
func (c *Collection) Notes() []Note {
	out := make([]Note, len(c.notes))
	copy(out, c.notes)
	return out
}

// Lookup ищет заметку по ссылке.
func (c *Collection) Lookup(ref Ref) (Note, int, bool) {
	for i, r := range c.refs {
		if r == ref {
			return c.notes[i], i, true
		}
	}
	return Note{}, -1, false
}

// Clone возвращает независимую копию коллекции с теми же ссылками.
func (c *Collection) Clone() *Collection {
	clone := &Collection{
		notes:   make([]Note, len(c.notes)),
		refs:    make([]Ref, len(c.refs)),
		cursor:  c.cursor,
		nextRef: c.nextRef,
	}
	copy(clone.notes, c.notes)
	copy(clone.refs, c.refs)
	return clone
}

// Append добавляет пустую заметку в конец и делает ее текущей.
func (c *Collection) Append() {
	c.push(Note{})
	c.cursor = len(c.notes) - 1
}

// SelectNext переводит курсор на следующую заметку по кругу.
func (c *Collection) SelectNext() error {
	if len(c.notes) == 0 {
		return ErrEmptyCollection
	}
	c.cursor = (c.cursor + 1) % len(c.notes)
	return nil
}

// UpdateCurrent заменяет текст текущей заметки и, если title не nil, заголовок.
func (c *Collection) UpdateCurrent(content string, title *string) {
	c.notes[c.cursor].Content = content
	if title != nil {
		c.notes[c.cursor].Title = *title
	}
}

// DeleteCurrent удаляет текущую заметку.
func (c *Collection) DeleteCurrent() {
	c.removeAt(c.cursor)
}

// Delete удаляет заметку по ссылке. Возвращает false, если заметки уже нет.
func (c *Collection) Delete(ref Ref) bool {
	_, idx, ok := c.Lookup(ref)
	if !ok {
		return false
	}
	c.removeAt(idx)
	return true
}

func (c *Collection) removeAt(idx int) {
	c.notes = append(c.notes[:idx], c.notes[idx+1:]...)
	c.refs = append(c.refs[:idx], c.refs[idx+1:]...)

	switch {
	case len(c.notes) == 0:
		c.push(Note{})
		c.cursor = 0
	case idx == c.cursor:
		c.cursor = max(0, c.cursor-1)
	case idx < c.cursor:
		c.cursor--
	}
}
