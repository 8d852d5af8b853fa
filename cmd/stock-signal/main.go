package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	pubsubv2 "cloud.google.com/go/pubsub/v2"
	"github.com/joho/godotenv"

	"github.com/stitchcairo/storefront-backend/pkg/config"
	"github.com/stitchcairo/storefront-backend/pkg/logger"
	"github.com/stitchcairo/storefront-backend/pkg/pubsub"
)

// Publishes a stock change signal so running storefront instances refresh
// their catalog snapshot. Used after manual stock edits in the database.
func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "stock-signal"})

	_ = godotenv.Load()

	reason := flag.String("reason", "manual", "why the signal is being sent (recorded on the event)")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "stock-signal",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
	requireResource(ctx, logg, "pubsub", err)
	defer pubsubClient.Close()

	publisher := pubsubClient.StockPublisher()
	if publisher == nil {
		logg.Error(ctx, "stock topic not configured", nil)
		os.Exit(1)
	}
	defer publisher.Stop()

	payload, err := json.Marshal(map[string]string{
		"event":     "stock.changed",
		"reason":    *reason,
		"signaled":  time.Now().UTC().Format(time.RFC3339),
		"signal_by": "stock-signal",
	})
	requireResource(ctx, logg, "payload", err)

	result := publisher.Publish(ctx, &pubsubv2.Message{Data: payload})
	id, err := result.Get(ctx)
	requireResource(ctx, logg, "publish", err)

	ctx = logg.WithFields(ctx, map[string]any{
		"message_id": id,
		"topic":      cfg.PubSub.StockTopic,
		"reason":     *reason,
	})
	logg.Info(ctx, "stock change signal published")
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
