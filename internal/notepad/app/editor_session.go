package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/services"
	"quicknote/pkg/logger"
)

// Параметры сессии по умолчанию.
const (
	DefaultBlockLimit = 95
	DefaultDebounce   = 300 * time.Millisecond
	warnMargin        = 10
)

// Константы для логирования.
const (
	LogEditRejected      = "edit rejected by block limit"
	LogBlocksRecounted   = "committed block count updated"
	LogExportRejected    = "export already in flight for note"
	LogExportDeleteStale = "exported note was deleted or edited during export, kept"
	ErrMsgDeleteExported = "note exported but could not be deleted"
)

// SessionOption настраивает EditorSession.
type SessionOption func(*EditorSession)

// WithBlockLimit задает мягкий лимит блоков.
func WithBlockLimit(limit int) SessionOption {
	return func(s *EditorSession) {
		if limit > 0 {
			s.limit = limit
		}
	}
}

// WithDebounce задает задержку пересчета блоков после правки.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *EditorSession) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// EditorSession связывает правки редактора с коллекцией заметок,
// ограничивает размер заметки и запускает экспорт.
type EditorSession struct {
	notes   *NoteStore
	creds   *CredentialStore
	gateway *ExportGateway

	limit    int
	debounce time.Duration
	log      *logger.Logger

	mu         sync.Mutex
	committed  int
	live       int
	timer      *time.Timer
	generation uint64
	closed     bool
	inFlight   map[entities.Ref]struct{}
}

// NewEditorSession создает сессию для текущей заметки коллекции.
func NewEditorSession(
	ctx context.Context,
	notes *NoteStore,
	creds *CredentialStore,
	gateway *ExportGateway,
	opts ...SessionOption,
) *EditorSession {
	s := &EditorSession{
		notes:    notes,
		creds:    creds,
		gateway:  gateway,
		limit:    DefaultBlockLimit,
		debounce: DefaultDebounce,
		log:      logger.Log(ctx),
		inFlight: make(map[entities.Ref]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	current, _ := notes.Current()
	s.committed = entities.CountBlocks(current.Content)
	s.live = s.committed
	return s
}

var _ services.NotesService = (*EditorSession)(nil)

// Accepts сообщает, пропустит ли ограничитель правку с count блоками:
// правка принимается, если она не выше лимита или не больше уже принятого.
func Accepts(count, committed, limit int) bool {
	return count <= limit || count <= committed
}

// BlockState возвращает заполненность текущей заметки.
func (s *EditorSession) BlockState() dto.BlockState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blockStateLocked()
}

func (s *EditorSession) blockStateLocked() dto.BlockState {
	return dto.BlockState{
		Committed: s.committed,
		Live:      s.live,
		Limit:     s.limit,
		Warn:      s.committed > s.limit-warnMargin,
		Blocked:   s.committed >= s.limit,
	}
}

// ListNotes возвращает все заметки и позицию курсора.
func (s *EditorSession) ListNotes(_ context.Context) *dto.ListNotesResponse {
	snap := s.notes.Snapshot()
	return &dto.ListNotesResponse{Notes: toDTONotes(snap.Notes), Cursor: snap.Cursor}
}

// CurrentNote возвращает текущую заметку.
func (s *EditorSession) CurrentNote(_ context.Context) *dto.CurrentNoteResponse {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.responseLocked(s.notes.Snapshot())
}

// CreateNote добавляет пустую заметку и переключается на нее.
func (s *EditorSession) CreateNote(ctx context.Context) (*dto.CurrentNoteResponse, error) {
	return s.navigate(ctx, s.notes.CreateNote)
}

// SelectNext переключается на следующую заметку.
func (s *EditorSession) SelectNext(ctx context.Context) (*dto.CurrentNoteResponse, error) {
	return s.navigate(ctx, s.notes.SelectNext)
}

// DeleteCurrent удаляет текущую заметку.
func (s *EditorSession) DeleteCurrent(ctx context.Context) (*dto.CurrentNoteResponse, error) {
	return s.navigate(ctx, s.notes.DeleteCurrent)
}

func (s *EditorSession) navigate(ctx context.Context, op func(context.Context) (Snapshot, error)) (*dto.CurrentNoteResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := op(ctx)
	if err != nil {
		return nil, err
	}

	s.live = entities.CountBlocks(snap.Current.Content)
	s.rearmLocked()
	return s.responseLocked(snap), nil
}

// ChangeCurrent применяет правку текущей заметки. Правка без текста
// отклоняется с ErrMissingContent. Правка, выводящая заметку за лимит блоков,
// отклоняется с ErrBlockLimitExceeded, заметка не меняется.
// Принятое число блоков пересчитывается с задержкой debounce, поэтому сразу
// после переключения заметки допуск еще может считаться по предыдущей заметке.
func (s *EditorSession) ChangeCurrent(ctx context.Context, req *dto.ChangeNoteRequest) (*dto.CurrentNoteResponse, error) {
	if req.Content == nil {
		return nil, ErrMissingContent
	}
	content := *req.Content
	count := entities.CountBlocks(content)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !Accepts(count, s.committed, s.limit) {
		logger.Log(ctx).Debug(ctx, LogEditRejected,
			zap.Int("proposed", count),
			zap.Int("committed", s.committed),
			zap.Int("limit", s.limit))
		return s.responseLocked(s.notes.Snapshot()), ErrBlockLimitExceeded
	}

	snap, err := s.notes.UpdateCurrent(ctx, content, req.Title)
	if err != nil {
		return nil, err
	}

	s.live = count
	s.rearmLocked()
	return s.responseLocked(snap), nil
}

// ExportCurrent отправляет текущую заметку. В режиме req.Delete после успеха
// удаляется именно отправленная заметка, даже если курсор успел сместиться.
// Заметка, измененная во время отправки, остается на месте: Deleted будет false.
func (s *EditorSession) ExportCurrent(ctx context.Context, req *dto.ExportRequest) (*dto.ExportResponse, error) {
	cred, ok := s.creds.Credential()
	if !ok {
		return nil, ErrUnconfigured
	}

	note, ref := s.notes.Current()

	if !s.acquire(ref) {
		logger.Log(ctx).Warn(ctx, LogExportRejected, zap.Uint64("ref", uint64(ref)))
		return nil, ErrExportInFlight
	}
	defer s.release(ref)

	id, err := s.gateway.Export(ctx, note, &cred)
	if err != nil {
		return nil, err
	}

	resp := &dto.ExportResponse{Success: true, Data: id}
	if !req.Delete {
		return resp, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	deleted, err := s.notes.DeleteNote(ctx, ref, note)
	switch {
	case err != nil:
		logger.Log(ctx).Error(ctx, ErrMsgDeleteExported, zap.String("document_id", id), zap.Error(err))
	case !deleted:
		logger.Log(ctx).Info(ctx, LogExportDeleteStale, zap.String("document_id", id))
	default:
		current, _ := s.notes.Current()
		s.live = entities.CountBlocks(current.Content)
		s.rearmLocked()
	}
	resp.Deleted = deleted && err == nil
	return resp, nil
}

func (s *EditorSession) acquire(ref entities.Ref) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, busy := s.inFlight[ref]; busy {
		return false
	}
	s.inFlight[ref] = struct{}{}
	return true
}

func (s *EditorSession) release(ref entities.Ref) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, ref)
}

// rearmLocked перезапускает таймер пересчета. Вызывается под s.mu.
func (s *EditorSession) rearmLocked() {
	if s.closed {
		return
	}
	s.generation++
	if s.timer != nil {
		s.timer.Stop()
	}
	gen := s.generation
	s.timer = time.AfterFunc(s.debounce, func() {
		s.recount(gen)
	})
}

func (s *EditorSession) recount(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || gen != s.generation {
		return
	}

	current, _ := s.notes.Current()
	s.committed = entities.CountBlocks(current.Content)
	s.live = s.committed
	s.log.Debug(context.Background(), LogBlocksRecounted, zap.Int("committed", s.committed))
}

// Flush немедленно пересчитывает принятое число блоков.
func (s *EditorSession) Flush() {
	s.mu.Lock()
	gen := s.generation
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()

	s.recount(gen)
}

// Close останавливает таймер. После Close пересчетов не будет.
func (s *EditorSession) Close(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
	}
	return nil
}

func (s *EditorSession) responseLocked(snap Snapshot) *dto.CurrentNoteResponse {
	return &dto.CurrentNoteResponse{
		Note:   toDTONote(snap.Current),
		Cursor: snap.Cursor,
		Count:  len(snap.Notes),
		Blocks: s.blockStateLocked(),
	}
}

func toDTONote(n entities.Note) dto.Note {
	return dto.Note{Title: n.Title, Content: n.Content}
}

func toDTONotes(notes []entities.Note) []dto.Note {
	out := make([]dto.Note, 0, len(notes))
	for _, n := range notes {
		out = append(out, toDTONote(n))
	}
	return out
}
