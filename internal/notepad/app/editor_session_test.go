package app_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notepad/adapters/services"
	"quicknote/internal/notepad/adapters/storage"
	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/domain/entities"
	"quicknote/internal/notepad/ports/external"
)

type sessionFixture struct {
	session *app.EditorSession
	notes   *app.NoteStore
	creds   *app.CredentialStore
	mem     *storage.MemoryStore
}

func newSession(t *testing.T, blob string, client external.DocumentClient, opts ...app.SessionOption) *sessionFixture {
	t.Helper()
	ctx := context.Background()

	notes, mem := loadMemoryStore(t, blob)
	creds := app.NewCredentialStore(mem, services.PlainSealer{})
	require.NoError(t, creds.Load(ctx))

	session := app.NewEditorSession(ctx, notes, creds, app.NewExportGateway(client), opts...)
	t.Cleanup(func() { _ = session.Close(ctx) })

	return &sessionFixture{session: session, notes: notes, creds: creds, mem: mem}
}

func lines(n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = "line"
	}
	return strings.Join(out, "\n")
}

func TestAccepts(t *testing.T) {
	const limit = 95

	for count := 0; count <= 120; count += 5 {
		for committed := 0; committed <= 120; committed += 5 {
			want := count <= limit || count <= committed
			assert.Equal(t, want, app.Accepts(count, committed, limit), "count=%d committed=%d", count, committed)
		}
	}
}

func TestEditorSession_Gate(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, "", nil, app.WithBlockLimit(3), app.WithDebounce(time.Hour))

	resp, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(3))})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Blocks.Live)

	resp, err = f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(4))})
	require.ErrorIs(t, err, app.ErrBlockLimitExceeded)
	require.NotNil(t, resp)
	assert.Equal(t, lines(3), resp.Note.Content, "rejected edit must not change the note")

	current, _ := f.notes.Current()
	assert.Equal(t, lines(3), current.Content)

	_, err = f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(2) + "\n\n   \n")})
	require.NoError(t, err, "blank lines do not count")
}

func TestEditorSession_OversizedNoteCanShrink(t *testing.T) {
	ctx := context.Background()
	blob := `[{"title":"","content":"a\nb\nc\nd\ne"}]`
	f := newSession(t, blob, nil, app.WithBlockLimit(3), app.WithDebounce(time.Hour))

	state := f.session.BlockState()
	assert.Equal(t, 5, state.Committed)
	assert.True(t, state.Blocked)

	_, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr("a\nb\nc\nd x\ne")})
	require.NoError(t, err, "edit keeping the count must pass")

	_, err = f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr("a\nb\nc\nd")})
	require.NoError(t, err, "shrinking edit must pass")

	_, err = f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr("a\nb\nc\nd\ne\nf")})
	require.ErrorIs(t, err, app.ErrBlockLimitExceeded)
}

func TestEditorSession_ChangeRequiresContent(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, `["keep me"]`, nil)

	resp, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Title: strPtr("New title")})

	require.ErrorIs(t, err, app.ErrMissingContent)
	assert.Nil(t, resp)
	assert.Equal(t, []entities.Note{{Content: "keep me"}}, storedNotes(t, f.mem))

	resp, err = f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr("keep me"), Title: strPtr("New title")})
	require.NoError(t, err)
	assert.Equal(t, dto.Note{Title: "New title", Content: "keep me"}, resp.Note)
}

func TestEditorSession_DebouncedRecount(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, "", nil, app.WithBlockLimit(20), app.WithDebounce(20*time.Millisecond))

	_, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(12))})
	require.NoError(t, err)

	state := f.session.BlockState()
	assert.Equal(t, 0, state.Committed)
	assert.Equal(t, 12, state.Live)

	require.Eventually(t, func() bool {
		return f.session.BlockState().Committed == 12
	}, time.Second, 5*time.Millisecond)

	state = f.session.BlockState()
	assert.True(t, state.Warn)
	assert.False(t, state.Blocked)
}

func TestEditorSession_Flush(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, "", nil, app.WithBlockLimit(10), app.WithDebounce(time.Hour))

	_, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(10))})
	require.NoError(t, err)
	f.session.Flush()

	state := f.session.BlockState()
	assert.Equal(t, 10, state.Committed)
	assert.True(t, state.Blocked)
}

func TestEditorSession_CloseStopsRecount(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, "", nil, app.WithDebounce(10*time.Millisecond))

	_, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: strPtr(lines(5))})
	require.NoError(t, err)
	require.NoError(t, f.session.Close(ctx))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, f.session.BlockState().Committed)
}

func TestEditorSession_Navigation(t *testing.T) {
	ctx := context.Background()
	f := newSession(t, `["a","b"]`, nil)

	resp, err := f.session.SelectNext(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cursor)
	assert.Equal(t, "b", resp.Note.Content)

	resp, err = f.session.CreateNote(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Cursor)
	assert.Equal(t, 3, resp.Count)

	resp, err = f.session.DeleteCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Cursor)

	list := f.session.ListNotes(ctx)
	assert.Equal(t, []dto.Note{{Content: "a"}, {Content: "b"}}, list.Notes)
	assert.Equal(t, 1, list.Cursor)
	assert.Equal(t, "b", f.session.CurrentNote(ctx).Note.Content)
}

func TestEditorSession_ExportUnconfigured(t *testing.T) {
	client := new(mockDocumentClient)
	f := newSession(t, `["a"]`, client)

	_, err := f.session.ExportCurrent(context.Background(), &dto.ExportRequest{})

	require.ErrorIs(t, err, app.ErrUnconfigured)
	assert.Empty(t, client.Calls)
}

func TestEditorSession_ExportAndDelete(t *testing.T) {
	ctx := context.Background()
	client := new(mockDocumentClient)
	client.On("CreateDocument", mock.Anything, testAPIKey, testDatabaseID,
		external.Document{Title: "A", Paragraphs: []string{"l1", "l2"}}).Return("page-1", nil).Once()

	f := newSession(t, `[{"title":"A","content":"l1\nl2"},{"title":"","content":"other"}]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))

	resp, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{Delete: true})

	require.NoError(t, err)
	assert.Equal(t, &dto.ExportResponse{Success: true, Data: "page-1", Deleted: true}, resp)
	assert.Equal(t, []entities.Note{{Content: "other"}}, storedNotes(t, f.mem))
	client.AssertExpectations(t)
}

func TestEditorSession_ExportKeepsNote(t *testing.T) {
	ctx := context.Background()
	client := new(mockDocumentClient)
	client.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("page-1", nil).Once()

	f := newSession(t, `["a"]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))

	resp, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{})

	require.NoError(t, err)
	assert.False(t, resp.Deleted)
	assert.Len(t, f.notes.Snapshot().Notes, 1)
	assert.Equal(t, "a", f.notes.Snapshot().Current.Content)
}

func TestEditorSession_FailedExportLeavesCollection(t *testing.T) {
	ctx := context.Background()
	client := new(mockDocumentClient)
	client.On("CreateDocument", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", &external.ServiceError{Status: 500, Message: "boom"}).Once()

	f := newSession(t, `["a","b"]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))
	before := storedNotes(t, f.mem)

	_, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{Delete: true})

	require.ErrorIs(t, err, app.ErrExternalFailure)
	assert.Equal(t, []entities.Note{{Content: "a"}, {Content: "b"}}, f.notes.Snapshot().Notes)
	assert.Equal(t, before, storedNotes(t, f.mem))
}

func TestEditorSession_ExportDeletesExportedNoteAfterCursorMoved(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient("page-1", nil)
	f := newSession(t, `["a","b","c"]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))

	type result struct {
		resp *dto.ExportResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{Delete: true})
		done <- result{resp, err}
	}()

	<-client.started
	_, err := f.session.SelectNext(ctx)
	require.NoError(t, err)
	_, err = f.session.SelectNext(ctx)
	require.NoError(t, err)
	close(client.release)

	res := <-done
	require.NoError(t, res.err)
	assert.True(t, res.resp.Deleted)

	snap := f.notes.Snapshot()
	assert.Equal(t, []entities.Note{{Content: "b"}, {Content: "c"}}, snap.Notes)
	assert.Equal(t, "c", snap.Current.Content, "cursor must stay on the note the user selected")
}

func TestEditorSession_ExportKeepsNoteEditedDuringExport(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient("page-1", nil)
	f := newSession(t, `["first draft","other"]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))

	type result struct {
		resp *dto.ExportResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		resp, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{Delete: true})
		done <- result{resp, err}
	}()

	<-client.started
	edited := "first draft\nedit typed while the export ran"
	_, err := f.session.ChangeCurrent(ctx, &dto.ChangeNoteRequest{Content: &edited})
	require.NoError(t, err)
	close(client.release)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "page-1", res.resp.Data)
	assert.False(t, res.resp.Deleted)

	assert.Equal(t, []entities.Note{{Content: edited}, {Content: "other"}}, storedNotes(t, f.mem))
	assert.Equal(t, edited, f.notes.Snapshot().Current.Content)
}

func TestEditorSession_ExportInFlight(t *testing.T) {
	ctx := context.Background()
	client := newBlockingClient("page-1", nil)
	f := newSession(t, `["a","b"]`, client)
	require.NoError(t, f.creds.Configure(ctx, testAPIKey, testDatabaseID))

	done := make(chan error, 1)
	go func() {
		_, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{})
		done <- err
	}()
	<-client.started

	_, err := f.session.ExportCurrent(ctx, &dto.ExportRequest{})
	require.ErrorIs(t, err, app.ErrExportInFlight)

	close(client.release)
	require.NoError(t, <-done)
	assert.Equal(t, int32(1), client.calls.Load())

	_, err = f.session.ExportCurrent(ctx, &dto.ExportRequest{})
	require.NoError(t, err, "guard is released after completion")
}
