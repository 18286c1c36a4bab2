package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"mapnote/internal/delivery"
)

var rootCmd = &cobra.Command{
	Use:   "mapnote",
	Short: "Interactive map annotation and direction-finding service",
	Long: `mapnote serves map instances over HTTP. Each map carries drawn annotations,
a reference point with direction measurements, and a location search box.
Map events are published to Pub/Sub and recorded by the activity worker.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
