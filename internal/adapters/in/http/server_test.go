package http

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"dentallab/internal/core/domain/model/kernel"
	"dentallab/internal/core/ports"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingFeed struct {
	mu     sync.Mutex
	events []ports.ChangeEvent
	err    error
}

func (f *capturingFeed) Publish(_ context.Context, event ports.ChangeEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *capturingFeed) Close() error { return nil }

func newTestContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestPublishChange_CarriesEntityAndAction(t *testing.T) {
	feed := &capturingFeed{}
	s := &Server{changeFeed: feed, logger: slog.Default()}

	orderID := kernel.NewUUID()
	s.publishChange(newTestContext(), "Order", orderID, "StatusUpdated")

	require.Len(t, feed.events, 1)
	assert.Equal(t, "Order", feed.events[0].EntityType)
	assert.Equal(t, orderID, feed.events[0].EntityID)
	assert.Equal(t, "StatusUpdated", feed.events[0].Action)
	assert.Positive(t, feed.events[0].UpdatedAt)
}

func TestPublishChange_RapidChangesToOneEntity_DistinctDedupKeys(t *testing.T) {
	feed := &capturingFeed{}
	s := &Server{changeFeed: feed, logger: slog.Default()}
	ctx := newTestContext()

	orderID := kernel.NewUUID()
	for range 200 {
		s.publishChange(ctx, "Order", orderID, "StatusUpdated")
	}

	require.Len(t, feed.events, 200)

	prev := int64(0)
	for _, event := range feed.events {
		assert.Greater(t, event.UpdatedAt, prev)
		prev = event.UpdatedAt
	}
}

func TestPublishChange_ConcurrentChanges_DistinctDedupKeys(t *testing.T) {
	feed := &capturingFeed{}
	s := &Server{changeFeed: feed, logger: slog.Default()}

	const publishers = 8
	const perPublisher = 50

	var wg sync.WaitGroup
	for range publishers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx := newTestContext()
			for range perPublisher {
				s.publishChange(ctx, "Order", kernel.NewUUID(), "StatusUpdated")
			}
		}()
	}
	wg.Wait()

	require.Len(t, feed.events, publishers*perPublisher)

	seen := make(map[int64]bool, len(feed.events))
	for _, event := range feed.events {
		assert.False(t, seen[event.UpdatedAt], "stamp reused across change events")
		seen[event.UpdatedAt] = true
	}
}

func TestPublishChange_NilFeed_IsNoOp(t *testing.T) {
	s := &Server{logger: slog.Default()}

	assert.NotPanics(t, func() {
		s.publishChange(newTestContext(), "Order", kernel.NewUUID(), "Created")
	})
}

func TestPublishChange_PublisherFailureDoesNotSurface(t *testing.T) {
	feed := &capturingFeed{err: assert.AnError}
	s := &Server{changeFeed: feed, logger: slog.Default()}

	assert.NotPanics(t, func() {
		s.publishChange(newTestContext(), "Order", kernel.NewUUID(), "Created")
	})
	assert.Empty(t, feed.events)
}
