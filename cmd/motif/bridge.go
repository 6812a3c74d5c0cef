package main

import (
	"fmt"
	"log/slog"

	"github.com/openmotif/motif"
	"github.com/openmotif/motif/internal/logging"
	"github.com/openmotif/motif/internal/manifest"
	redisAdapter "github.com/openmotif/motif/pkg/adapters/redis"
	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// buildBridge assembles a bridge from the shared command flags: logger,
// manifest components, and the optional redis event publisher.
func buildBridge(cmd *cobra.Command) (*motif.Bridge, *slog.Logger, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	logger := logging.New(parseLevel(levelName))

	opts := []motif.Option{motif.WithLogger(logger)}

	if redisAddr, _ := cmd.Flags().GetString("redis"); redisAddr != "" {
		client := backend.NewClient(&backend.Options{Addr: redisAddr})
		opts = append(opts, motif.WithSubscriber(
			redisAdapter.NewPublisher(client, redisAdapter.WithLogger(logger))))
		logger.Info("Publishing mutation events to redis", "addr", redisAddr)
	}

	b := motif.New(opts...)

	if path, _ := cmd.Flags().GetString("manifest"); path != "" {
		m, err := manifest.Load(path)
		if err != nil {
			return nil, nil, fmt.Errorf("load manifest: %w", err)
		}
		if err := m.Apply(b.Registry()); err != nil {
			return nil, nil, fmt.Errorf("apply manifest: %w", err)
		}
		logger.Info("Registered manifest components", "count", len(m.Components), "path", path)
	}

	return b, logger, nil
}

func parseLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
