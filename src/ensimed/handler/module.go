package handler

import (
	"context"

	controller "github.com/ensime/ensimed/src/ensimed/controller"
	"github.com/ensime/ensimed/src/ensimed/controller/analyzer"
	"github.com/ensime/ensimed/src/ensimed/controller/coordinator"
	"github.com/ensime/ensimed/src/ensimed/controller/indexer"
	"github.com/ensime/ensimed/src/ensimed/controller/watcher"
	handler "github.com/ensime/ensimed/src/ensimed/handler/ensimed"
	"github.com/ensime/ensimed/src/ensimed/repository/session"
	"go.uber.org/fx"
)

// Module provides the ensimed server into an Fx application.
var Module = fx.Options(
	controller.Module,
	session.Module,
	fx.Provide(NewServerConfig),
	fx.Provide(handler.New),
	fx.Invoke(startCoordinator),
	fx.Invoke(func(h handler.Handler) {}),
	fx.Invoke(func(w watcher.Controller) {}),
)

// StartParams are the dependencies needed to start the coordinator.
type StartParams struct {
	fx.In

	Lifecycle   fx.Lifecycle
	Coordinator coordinator.Coordinator
	Analyzer    analyzer.Controller
	Indexer     indexer.Controller
	Config      ServerConfig
}

// startCoordinator hands the engine and the indexer to the coordinator once the application starts,
// and bounds its shutdown by the configured grace period.
func startCoordinator(p StartParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Coordinator.Start(ctx, p.Analyzer, p.Indexer)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, p.Config.ShutdownGrace())
			defer cancel()
			return p.Coordinator.Stop(ctx)
		},
	})
}
