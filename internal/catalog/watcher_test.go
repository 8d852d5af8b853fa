package catalog

import (
	"context"
	"io"
	"testing"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

type stubSubscriber struct {
	receiveErr error
}

func (s *stubSubscriber) Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error {
	return s.receiveErr
}

type stubRefresher struct {
	calls int
	err   error
}

func (s *stubRefresher) Refresh(ctx context.Context) error {
	s.calls++
	return s.err
}

func TestNewWatcherValidatesDeps(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "watcher-test", Output: io.Discard})

	if _, err := NewWatcher(nil, &stubRefresher{}, logg); err == nil {
		t.Error("expected error for nil subscriber")
	}
	if _, err := NewWatcher(&stubSubscriber{}, nil, logg); err == nil {
		t.Error("expected error for nil catalog")
	}
	if _, err := NewWatcher(&stubSubscriber{}, &stubRefresher{}, nil); err == nil {
		t.Error("expected error for nil logger")
	}
}

func TestWatcherRunSurfacesReceiveError(t *testing.T) {
	logg := logger.New(logger.Options{ServiceName: "watcher-test", Output: io.Discard})
	watcher, err := NewWatcher(&stubSubscriber{receiveErr: context.Canceled}, &stubRefresher{}, logg)
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := watcher.Run(context.Background()); err != context.Canceled {
		t.Fatalf("run error = %v, want context.Canceled", err)
	}
}
