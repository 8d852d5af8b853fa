package catalog

import (
	"context"
	"fmt"

	pubsub "cloud.google.com/go/pubsub/v2"

	"github.com/stitchcairo/storefront-backend/pkg/logger"
)

type refresher interface {
	Refresh(ctx context.Context) error
}

type subscriber interface {
	Receive(ctx context.Context, f func(context.Context, *pubsub.Message)) error
}

// Watcher consumes the stock change feed. The message carries no payload;
// each delivery is only a signal that some stock row changed, answered with a
// full snapshot refresh.
type Watcher struct {
	sub     subscriber
	catalog refresher
	logger  *logger.Logger
}

// NewWatcher wires the stock subscription to the catalog refresh hook.
func NewWatcher(sub subscriber, catalog refresher, logg *logger.Logger) (*Watcher, error) {
	if sub == nil {
		return nil, fmt.Errorf("stock subscriber required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &Watcher{sub: sub, catalog: catalog, logger: logg}, nil
}

// Run blocks receiving stock change signals until the context is canceled.
// Messages are acked regardless of refresh outcome; the next signal or the
// cache TTL covers a failed rebuild.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info(ctx, "stock watcher started")
	return w.sub.Receive(ctx, func(msgCtx context.Context, msg *pubsub.Message) {
		msg.Ack()
		if err := w.catalog.Refresh(msgCtx); err != nil {
			w.logger.Error(msgCtx, "stock refresh failed", err)
		}
	})
}
