package main

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"mapnote/config"
	"mapnote/internal/delivery/api"
	"mapnote/internal/delivery/api/router/handler"
	"mapnote/internal/infra/debounce"
	"mapnote/internal/infra/export"
	"mapnote/internal/infra/geocoding"
	logs "mapnote/internal/infra/log"
	"mapnote/internal/infra/persistence/memory"
	"mapnote/internal/infra/pubsub"
	"mapnote/internal/infra/qrcode"
	"mapnote/internal/usecase/impl"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the map API server",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		newServeApp().Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func newServeApp() *fx.App {
	return fx.New(
		injectInfra(),
		memory.Module,
		pubsub.Module,
		qrcode.Module,
		export.Module,
		geocoding.Module,
		debounce.Module,
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	)
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewMapService,
			impl.NewDirectionService,
			impl.NewAnnotationService,
			impl.NewSearchService,
			impl.NewShareService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewMapHandler,
			handler.NewDirectionHandler,
			handler.NewAnnotationHandler,
			handler.NewSearchHandler,
			handler.NewShareHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}
