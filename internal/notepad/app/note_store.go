package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/storage"
	"quicknote/pkg/logger"
)

// Константы для логирования.
const (
	LogNotesLoaded      = "notes loaded"
	LogNotesPersisted   = "notes persisted"
	ErrMsgLoadNotes     = "failed to load notes"
	ErrMsgPersistNotes  = "failed to persist notes"
	ErrMsgDecodeNotes   = "stored notes are corrupt"
	DefaultNotesBlobKey = "notes"
)

// Snapshot - согласованный срез состояния коллекции.
type Snapshot struct {
	Notes   []entities.Note
	Cursor  int
	Current entities.Note
	Ref     entities.Ref
}

// NoteStore хранит коллекцию заметок и сохраняет ее целиком при каждом изменении.
type NoteStore struct {
	mu    sync.Mutex
	store storage.BlobStore
	key   string
	coll  *entities.Collection
}

// LoadNoteStore читает коллекцию из хранилища. Отсутствие данных дает одну пустую заметку.
// Неразборчивые данные - ошибка ErrPersistence, сами данные не перезаписываются.
func LoadNoteStore(ctx context.Context, store storage.BlobStore, key string) (*NoteStore, error) {
	if key == "" {
		key = DefaultNotesBlobKey
	}
	log := logger.Log(ctx).With(zap.String("key", key))

	var notes []entities.Note
	raw, err := store.Get(ctx, key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		log.Error(ctx, ErrMsgLoadNotes, zap.Error(err))
		return nil, fmt.Errorf("%s: %w: %w", ErrMsgLoadNotes, ErrPersistence, err)
	case raw != "":
		notes, err = entities.UnmarshalNotes([]byte(raw))
		if err != nil {
			log.Error(ctx, ErrMsgDecodeNotes, zap.Error(err))
			return nil, fmt.Errorf("%s: %w: %w", ErrMsgDecodeNotes, ErrPersistence, err)
		}
	}

	coll := entities.NewCollection(notes)
	log.Info(ctx, LogNotesLoaded, zap.Int("count", coll.Len()))

	return &NoteStore{store: store, key: key, coll: coll}, nil
}

// Snapshot возвращает копию текущего состояния.
func (s *NoteStore) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *NoteStore) snapshotLocked() Snapshot {
	current, ref := s.coll.Current()
	return Snapshot{
		Notes:   s.coll.Notes(),
		Cursor:  s.coll.Cursor(),
		Current: current,
		Ref:     ref,
	}
}

// Current возвращает текущую заметку и ее ссылку.
func (s *NoteStore) Current() (entities.Note, entities.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.coll.Current()
}

// CreateNote добавляет пустую заметку и делает ее текущей.
func (s *NoteStore) CreateNote(ctx context.Context) (Snapshot, error) {
	return s.mutate(ctx, func(c *entities.Collection) error {
		c.Append()
		return nil
	})
}

// SelectNext переводит курсор на следующую заметку по кругу. Курсор не сохраняется.
func (s *NoteStore) SelectNext(_ context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.coll.SelectNext(); err != nil {
		return Snapshot{}, err
	}
	return s.snapshotLocked(), nil
}

// UpdateCurrent заменяет текст и, если title не nil, заголовок текущей заметки.
func (s *NoteStore) UpdateCurrent(ctx context.Context, content string, title *string) (Snapshot, error) {
	return s.mutate(ctx, func(c *entities.Collection) error {
		c.UpdateCurrent(content, title)
		return nil
	})
}

// DeleteCurrent удаляет текущую заметку.
func (s *NoteStore) DeleteCurrent(ctx context.Context) (Snapshot, error) {
	return s.mutate(ctx, func(c *entities.Collection) error {
		c.DeleteCurrent()
		return nil
	})
}

// errNoteGone прерывает мутацию без записи: заметки нет или она изменилась.
var errNoteGone = errors.New("note is gone")

// DeleteNote удаляет заметку по ссылке, где бы она ни находилась, если она
// все еще совпадает с expected. Возвращает false, если заметки уже нет или
// ее успели изменить.
func (s *NoteStore) DeleteNote(ctx context.Context, ref entities.Ref, expected entities.Note) (bool, error) {
	_, err := s.mutate(ctx, func(c *entities.Collection) error {
		stored, _, ok := c.Lookup(ref)
		if !ok || stored != expected {
			return errNoteGone
		}
		c.Delete(ref)
		return nil
	})
	if errors.Is(err, errNoteGone) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// mutate применяет fn к копии коллекции, сохраняет копию и только после
// успешной записи заменяет ею состояние в памяти.
func (s *NoteStore) mutate(ctx context.Context, fn func(c *entities.Collection) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.coll.Clone()
	if err := fn(next); err != nil {
		return Snapshot{}, err
	}

	data, err := entities.MarshalNotes(next.Notes())
	if err != nil {
		return Snapshot{}, fmt.Errorf("%s: %w: %w", ErrMsgPersistNotes, ErrPersistence, err)
	}

	if err := s.store.Set(ctx, s.key, string(data)); err != nil {
		logger.Log(ctx).Error(ctx, ErrMsgPersistNotes, zap.String("key", s.key), zap.Error(err))
		return Snapshot{}, fmt.Errorf("%s: %w: %w", ErrMsgPersistNotes, ErrPersistence, err)
	}

	s.coll = next
	logger.Log(ctx).Debug(ctx, LogNotesPersisted, zap.Int("count", next.Len()), zap.Int("cursor", next.Cursor()))
	return s.snapshotLocked(), nil
}
