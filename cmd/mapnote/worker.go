package main

import (
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/delivery/worker"
	"mapnote/internal/delivery/worker/handler"
	"mapnote/internal/domain/repository"
	"mapnote/internal/infra/persistence/memory"
	"mapnote/internal/infra/persistence/postgres"
	"mapnote/internal/usecase/impl"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Run the Pub/Sub push worker that records map activity",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		newWorkerApp().Run()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}

func newWorkerApp() *fx.App {
	return fx.New(
		injectInfra(),
		fx.Provide(
			newActivityRepository,
			impl.NewActivityService,
			handler.NewPushHandler,
			handler.NewActivityHandler,
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
		fx.Invoke(
			startServer,
		),
	)
}

// newActivityRepository picks the activity store named by worker.store
func newActivityRepository(lc fx.Lifecycle, cfg *config.Config, logger *slog.Logger) (repository.ActivityRepository, error) {
	switch cfg.Worker.Store {
	case config.ActivityStoreMemory:
		return memory.NewActivityRepository(memory.ActivityRepositoryParams{Config: cfg, Logger: logger}), nil

	case config.ActivityStorePostgres:
		db, err := postgres.New(postgres.Params{Lifecycle: lc, Config: cfg, Logger: logger})
		if err != nil {
			return nil, err
		}
		logger.Info("Using PostgreSQL activity store")

		return postgres.NewActivityRepository(db, cfg.Worker.HistorySize, logger), nil

	default:
		return nil, errors.Errorf("unknown worker store: %s", cfg.Worker.Store)
	}
}
