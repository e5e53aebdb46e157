package controller

import (
	"github.com/ensime/ensimed/src/ensimed/controller/analyzer"
	"github.com/ensime/ensimed/src/ensimed/controller/coordinator"
	"github.com/ensime/ensimed/src/ensimed/controller/ensimed"
	"github.com/ensime/ensimed/src/ensimed/controller/indexer"
	"github.com/ensime/ensimed/src/ensimed/controller/watcher"
	"go.uber.org/fx"
)

// Module provides every controller, with the coordinator standing in for the narrow interfaces the others depend on.
var Module = fx.Options(
	fx.Provide(coordinator.New),
	fx.Provide(analyzer.New),
	fx.Provide(indexer.New),
	fx.Provide(watcher.New),
	fx.Provide(ensimed.New),
	fx.Provide(func(c coordinator.Coordinator) analyzer.Publisher { return c }),
	fx.Provide(func(c coordinator.Coordinator) analyzer.UndoLog { return c }),
	fx.Provide(func(c coordinator.Coordinator) indexer.Publisher { return c }),
	fx.Provide(func(c coordinator.Coordinator) watcher.Retypechecker { return c }),
)
