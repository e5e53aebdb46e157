package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ensime/ensimed/src/ensimed/app"
	"github.com/ensime/ensimed/src/ensimed/internal/core"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

const (
	_envProjectRoot = "ENSIMED_PROJECT_ROOT"
	_envCacheDir    = "ENSIMED_CACHE_DIR"
	_envPort        = "ENSIMED_PORT"

	_defaultCacheDir = ".ensime_cache"
)

type serveFlags struct {
	configDir   string
	projectRoot string
	cacheDir    string
	port        int
}

func opts() fx.Option {
	return fx.Options(
		app.Module,
	)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "ensimed",
		Short:         "Code intelligence daemon serving editors over JSON-RPC",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := serveFlags{}
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Analyze a project and serve editor requests until shut down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := flags.export(); err != nil {
				return err
			}
			fx.New(opts()).Run()
			return nil
		},
	}
	serveCmd.Flags().StringVar(&flags.configDir, "config-dir", "", "Directory holding meta.yaml and the files it lists")
	serveCmd.Flags().StringVar(&flags.projectRoot, "project-root", ".", "Root directory of the project to analyze")
	serveCmd.Flags().StringVar(&flags.cacheDir, "cache-dir", "", "Directory for the discovery file and logs (default <project-root>/"+_defaultCacheDir+")")
	serveCmd.Flags().IntVar(&flags.port, "port", -1, "Port to listen on, 0 for any free port (default from configuration)")

	rootCmd.AddCommand(serveCmd)
	return rootCmd
}

// export publishes the flags as the environment variables expanded by the configuration files.
func (f serveFlags) export() error {
	if f.configDir != "" {
		dir, err := filepath.Abs(f.configDir)
		if err != nil {
			return fmt.Errorf("resolving config dir: %w", err)
		}
		if err := os.Setenv(core.EnvConfigDir, dir); err != nil {
			return err
		}
	}

	root, err := filepath.Abs(f.projectRoot)
	if err != nil {
		return fmt.Errorf("resolving project root: %w", err)
	}
	if err := os.Setenv(_envProjectRoot, root); err != nil {
		return err
	}

	cacheDir := f.cacheDir
	if cacheDir == "" {
		cacheDir = os.Getenv(_envCacheDir)
	}
	if cacheDir == "" {
		cacheDir = filepath.Join(root, _defaultCacheDir)
	}
	if cacheDir, err = filepath.Abs(cacheDir); err != nil {
		return fmt.Errorf("resolving cache dir: %w", err)
	}
	if err := os.Setenv(_envCacheDir, cacheDir); err != nil {
		return err
	}

	if f.port >= 0 {
		return os.Setenv(_envPort, strconv.Itoa(f.port))
	}
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
