package shutdown_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"quicknote/pkg/shutdown"
)

func TestWaitRunsHooksOnContextDone(t *testing.T) {
	hook1Called := make(chan struct{})
	hook2Called := make(chan struct{})

	ctx, cancel := context.WithCancel(context.Background())

	waitDone := make(chan struct{})
	go func() {
		shutdown.Wait(ctx, time.Second,
			func(context.Context) error { close(hook1Called); return nil },
			func(context.Context) error { close(hook2Called); return errors.New("close failed") },
		)
		close(waitDone)
	}()

	cancel()

	for i, ch := range []chan struct{}{hook1Called, hook2Called, waitDone} {
		select {
		case <-ch:
		case <-time.After(2 * time.Second):
			t.Fatalf("step %d did not complete", i)
		}
	}
}

func TestRunRespectsTimeout(t *testing.T) {
	var completed atomic.Bool

	slowHook := func(ctx context.Context) error {
		select {
		case <-time.After(2 * time.Second):
			completed.Store(true)
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	start := time.Now()
	shutdown.Run(context.Background(), 200*time.Millisecond, slowHook)

	assert.Less(t, time.Since(start), time.Second)
	assert.False(t, completed.Load(), "the slow hook shouldn't have completed")
}

func TestRunRunsHooksConcurrently(t *testing.T) {
	hook := func(context.Context) error {
		time.Sleep(300 * time.Millisecond)
		return nil
	}

	start := time.Now()
	shutdown.Run(context.Background(), 2*time.Second, hook, hook, hook)

	assert.Less(t, time.Since(start), 800*time.Millisecond, "hooks appear to run sequentially")
}
