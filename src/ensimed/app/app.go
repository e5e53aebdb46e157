package app

import (
	"context"
	"time"

	"github.com/ensime/ensimed/src/ensimed/gateway/compiler"
	"github.com/ensime/ensimed/src/ensimed/handler"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	"github.com/ensime/ensimed/src/ensimed/internal/core"
	"github.com/ensime/ensimed/src/ensimed/internal/discoveryfile"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"github.com/ensime/ensimed/src/ensimed/internal/jsonrpcfx"
	"github.com/ensime/ensimed/src/ensimed/internal/project"
	"github.com/uber-go/tally"
	"go.uber.org/fx"
)

// Module defines the ensimed application module.
var Module = fx.Options(
	compiler.Module, // outbounds
	handler.Module,  // inbounds
	jsonrpcfx.Module,
	discoveryfile.Module,
	project.Module,
	fs.Module,
	clock.Module,
	core.ConfigModule,
	core.LoggerModule,
	fx.Provide(func(lc fx.Lifecycle) tally.Scope {
		rs, closer := tally.NewRootScope(tally.ScopeOptions{
			Tags: map[string]string{
				"service": "ensimed",
			},
		}, 1*time.Second)

		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})

		return rs
	}),
	fx.Decorate(decorateConfigProvider),
	fx.Invoke(registerForcedExit),
)
