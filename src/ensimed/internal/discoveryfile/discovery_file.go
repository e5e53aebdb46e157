//go:generate mockgen -destination=discoveryfilemock/discovery_file_mock.go -package=discoveryfilemock . DiscoveryFile

// Package discoveryfile manages the file through which clients learn the port of a running server.
package discoveryfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	ensimederrors "github.com/ensime/ensimed/src/ensimed/internal/errors"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const (
	_configKeyCacheDir = "project.cacheDir"
	_fileName          = "port"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// DiscoveryFile stores the listening port in a well-known file inside the project cache directory.
type DiscoveryFile interface {
	// Check fails with ServerAlreadyRunningError when a non-empty discovery file already exists.
	Check() error
	// WritePort records the bound port. It performs the same check as Check first.
	WritePort(port int) error
	// Path returns the location of the discovery file.
	Path() string
}

type module struct {
	path    string
	fs      fs.FS
	logger  *zap.SugaredLogger
	mu      sync.Mutex
	written bool
}

// Params define values to be used by DiscoveryFile.
type Params struct {
	fx.In

	Config    config.Provider
	Lifecycle fx.Lifecycle
	Logger    *zap.SugaredLogger
	FS        fs.FS
}

// New creates a DiscoveryFile and aborts startup if another server already owns it.
func New(p Params) (DiscoveryFile, error) {
	m := &module{
		logger: p.Logger,
		fs:     p.FS,
	}

	if err := m.processConfig(p.Config); err != nil {
		return nil, err
	}

	if err := m.fs.MkdirAll(filepath.Dir(m.path)); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	if err := m.Check(); err != nil {
		return nil, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: m.OnStop,
	})

	return m, nil
}

// OnStop removes the discovery file if this process wrote it.
func (m *module) OnStop(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.written {
		return nil
	}
	if err := m.fs.Remove(m.path); err != nil {
		return fmt.Errorf("removing discovery file: %w", err)
	}
	m.written = false
	return nil
}

func (m *module) Path() string {
	return m.path
}

func (m *module) Check() error {
	exists, err := m.fs.FileExists(m.path)
	if err != nil {
		return fmt.Errorf("checking discovery file: %w", err)
	}
	if !exists {
		return nil
	}

	contents, err := m.fs.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf("reading discovery file: %w", err)
	}

	// Legacy clients leave empty files behind; those are safe to overwrite.
	if trimmed := strings.TrimSpace(string(contents)); trimmed != "" {
		return &ensimederrors.ServerAlreadyRunningError{Path: m.path, Content: trimmed}
	}
	return nil
}

func (m *module) WritePort(port int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.Check(); err != nil {
		return err
	}

	if err := m.fs.WriteFile(m.path, []byte(strconv.Itoa(port)+"\n")); err != nil {
		return fmt.Errorf("writing discovery file: %w", err)
	}
	m.written = true
	m.logger.Infow("connection info saved", zap.String("file", m.path), zap.Int("port", port))
	return nil
}

func (m *module) processConfig(cfg config.Provider) error {
	var cacheDir string
	if err := cfg.Get(_configKeyCacheDir).Populate(&cacheDir); err != nil {
		// incorrectly formatted config
		return fmt.Errorf("getting config field %q: %w", _configKeyCacheDir, err)
	}

	if cacheDir == "" {
		// yaml is missing either the key or value
		return fmt.Errorf("missing field %q in config", _configKeyCacheDir)
	}

	m.path = filepath.Join(cacheDir, _fileName)
	return nil
}
