package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"quicknote/internal/notepad/adapters/services"
	"quicknote/internal/notepad/adapters/storage"
	"quicknote/internal/notepad/app"
	"quicknote/internal/notepad/app/dto"
	"quicknote/internal/notepad/ports/external"
)

func TestNotionProxy_Post(t *testing.T) {
	ctx := context.Background()

	t.Run("unconfigured", func(t *testing.T) {
		client := new(mockDocumentClient)
		creds := app.NewCredentialStore(storage.NewMemoryStore(), services.PlainSealer{})
		proxy := app.NewNotionProxy(creds, app.NewExportGateway(client))

		_, err := proxy.Post(ctx, &dto.PostRequest{Content: "x"})

		require.ErrorIs(t, err, app.ErrUnconfigured)
		assert.Empty(t, client.Calls)
	})

	t.Run("uses stored credential", func(t *testing.T) {
		client := new(mockDocumentClient)
		client.On("CreateDocument", mock.Anything, testAPIKey, testDatabaseID,
			external.Document{Title: "Quick note: hello", Paragraphs: []string{"hello"}}).Return("page-9", nil).Once()

		creds := app.NewCredentialStore(storage.NewMemoryStore(), services.PlainSealer{})
		require.NoError(t, creds.Configure(ctx, testAPIKey, testDatabaseID))
		proxy := app.NewNotionProxy(creds, app.NewExportGateway(client))

		id, err := proxy.Post(ctx, &dto.PostRequest{Content: "hello"})

		require.NoError(t, err)
		assert.Equal(t, "page-9", id)
		client.AssertExpectations(t)
	})
}
