package app

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/ensime/ensimed/src/ensimed/handler"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// _exit terminates the process when shutdown overruns its bound.
var _exit = os.Exit

// DecorateConfigParams is the set of dependencies required to decorate the config.Provider.
type DecorateConfigParams struct {
	fx.In

	Cfg config.Provider
	FS  fs.FS
}

// decorateConfigProvider includes any steps that modify the config.Provider before it is used, or use its data for any startup related activities.
func decorateConfigProvider(p DecorateConfigParams) (config.Provider, error) {
	combined, err := ensureLogFolder(p.Cfg, p.FS)
	if err != nil {
		return nil, fmt.Errorf("ensuring log folder: %v", err)
	}

	return combined, nil
}

// Ensure that all configured logging output directories exist or create if necessary.
func ensureLogFolder(cfg config.Provider, fs fs.FS) (config.Provider, error) {
	var c zap.Config
	if err := cfg.Get("logging").Populate(&c); err != nil {
		return nil, fmt.Errorf("loading logging config: %v", err)
	}

	for _, outputPath := range c.OutputPaths {
		if outputPath == "stdout" || outputPath == "stderr" {
			continue
		}
		dir := path.Dir(outputPath)
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("creating logging directory: %v", err)
		}
	}

	return cfg, nil
}

// ForcedExitParams are the dependencies of the forced exit hook.
type ForcedExitParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Clock     clock.Clock
	Config    handler.ServerConfig
	Logger    *zap.SugaredLogger
}

// registerForcedExit arms a timer once shutdown begins and exits the process if it has not finished in time.
func registerForcedExit(p ForcedExitParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStop: func(context.Context) error {
			p.Clock.AfterFunc(p.Config.ForceExit(), func() {
				p.Logger.Errorw("shutdown did not complete in time, exiting", "bound", p.Config.ForceExit())
				_exit(1)
			})
			return nil
		},
	})
}
