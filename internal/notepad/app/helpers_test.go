package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/stretchr/testify/mock"

	"quicknote/internal/notepad/ports/external"
)

var (
	errStoreDown   = errors.New("store unavailable")
	errServiceDown = errors.New("service unavailable")
)

const (
	testAPIKey     = "secret_test"
	testDatabaseID = "0123456789abcdef0123456789abcdef"
)

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Set(ctx context.Context, key string, value string) error {
	return m.Called(ctx, key, value).Error(0)
}

func (m *mockBlobStore) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockBlobStore) Close() error {
	return m.Called().Error(0)
}

type mockDocumentClient struct {
	mock.Mock
}

func (m *mockDocumentClient) CheckCollection(ctx context.Context, apiKey, collectionID string) error {
	return m.Called(ctx, apiKey, collectionID).Error(0)
}

func (m *mockDocumentClient) CreateDocument(ctx context.Context, apiKey, collectionID string, doc external.Document) (string, error) {
	args := m.Called(ctx, apiKey, collectionID, doc)
	return args.String(0), args.Error(1)
}

// blockingClient держит CreateDocument до закрытия release.
type blockingClient struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	calls   atomic.Int32
	id      string
	err     error
}

func newBlockingClient(id string, err error) *blockingClient {
	return &blockingClient{
		started: make(chan struct{}),
		release: make(chan struct{}),
		id:      id,
		err:     err,
	}
}

func (c *blockingClient) CheckCollection(context.Context, string, string) error {
	return nil
}

func (c *blockingClient) CreateDocument(ctx context.Context, _, _ string, _ external.Document) (string, error) {
	c.calls.Add(1)
	c.once.Do(func() { close(c.started) })
	select {
	case <-c.release:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	return c.id, c.err
}
