// Package project resolves the layout of the project served by ensimed.
package project

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"
)

const (
	_configKeyProject = "project"
	_goModFile        = "go.mod"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// Descriptor stores the overrides found in a project's .ensime file.
type Descriptor struct {
	ModulePath  string   `yaml:"modulePath"`
	SourceRoots []string `yaml:"sourceRoots"`
	Archives    []string `yaml:"archives"`
	TargetDirs  []string `yaml:"targetDirs"`
}

// ParseDescriptor parses a .ensime file.
// It parses with best effort, so it may return partially valid content
// with errors describing every entry it had to skip.
func ParseDescriptor(r io.Reader) (d Descriptor, err error) {
	var raw Descriptor
	if e := yaml.NewDecoder(r).Decode(&raw); e != nil && e != io.EOF {
		return d, e
	}

	d.ModulePath = strings.TrimSpace(raw.ModulePath)
	d.SourceRoots, err = cleanEntries("sourceRoots", raw.SourceRoots, err)
	d.Archives, err = cleanEntries("archives", raw.Archives, err)
	d.TargetDirs, err = cleanEntries("targetDirs", raw.TargetDirs, err)
	return d, err
}

func cleanEntries(field string, entries []string, err error) ([]string, error) {
	seen := make(map[string]struct{}, len(entries))
	var result []string
	for i, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			err = multierr.Append(err, fmt.Errorf("%s[%d]: empty entry", field, i))
			continue
		}
		entry = filepath.Clean(entry)
		if _, ok := seen[entry]; ok {
			err = multierr.Append(err, fmt.Errorf("%s[%d]: duplicate entry %q", field, i, entry))
			continue
		}
		seen[entry] = struct{}{}
		result = append(result, entry)
	}
	return result, err
}

// Params define values to be used by New.
type Params struct {
	fx.In

	Config config.Provider
	Logger *zap.SugaredLogger
	FS     fs.FS
}

// New builds the project configuration from the config provider, applies the
// overrides of the project descriptor when one exists, and makes every path absolute.
func New(p Params) (entity.ProjectConfig, error) {
	var cfg entity.ProjectConfig
	if err := p.Config.Get(_configKeyProject).Populate(&cfg); err != nil {
		return cfg, fmt.Errorf("getting config field %q: %w", _configKeyProject, err)
	}
	if cfg.Root == "" {
		return cfg, fmt.Errorf("missing field %q in config", _configKeyProject+".root")
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return cfg, fmt.Errorf("resolving project root: %w", err)
	}
	cfg.Root = root

	if cfg.Descriptor != "" {
		descriptorPath := resolve(root, cfg.Descriptor)
		exists, err := p.FS.FileExists(descriptorPath)
		if err != nil {
			return cfg, fmt.Errorf("checking project descriptor: %w", err)
		}
		if exists {
			contents, err := p.FS.ReadFile(descriptorPath)
			if err != nil {
				return cfg, fmt.Errorf("reading project descriptor: %w", err)
			}
			d, err := ParseDescriptor(bytes.NewReader(contents))
			if err != nil {
				// Keep whatever parsed cleanly.
				p.Logger.Warnw("project descriptor has problems", "file", descriptorPath, "error", err)
			}
			cfg = applyDescriptor(cfg, d)
		}
	}

	if cfg.ModulePath == "" {
		cfg.ModulePath = readModulePath(p.FS, root)
	}
	if len(cfg.SourceRoots) == 0 {
		cfg.SourceRoots = []string{"."}
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = ".ensime_cache"
	}

	cfg.CacheDir = resolve(root, cfg.CacheDir)
	cfg.SourceRoots = resolveAll(root, cfg.SourceRoots)
	cfg.Archives = resolveAll(root, cfg.Archives)
	cfg.TargetDirs = resolveAll(root, cfg.TargetDirs)

	p.Logger.Infow("project resolved",
		"root", cfg.Root,
		"modulePath", cfg.ModulePath,
		"sourceRoots", cfg.SourceRoots,
		"archives", len(cfg.Archives),
		"targetDirs", cfg.TargetDirs,
	)
	return cfg, nil
}

func applyDescriptor(cfg entity.ProjectConfig, d Descriptor) entity.ProjectConfig {
	if d.ModulePath != "" {
		cfg.ModulePath = d.ModulePath
	}
	if len(d.SourceRoots) > 0 {
		cfg.SourceRoots = d.SourceRoots
	}
	if len(d.Archives) > 0 {
		cfg.Archives = d.Archives
	}
	if len(d.TargetDirs) > 0 {
		cfg.TargetDirs = d.TargetDirs
	}
	return cfg
}

// readModulePath returns the module path declared in root/go.mod, or "" if there is none.
func readModulePath(fs fs.FS, root string) string {
	contents, err := fs.ReadFile(filepath.Join(root, _goModFile))
	if err != nil {
		return ""
	}
	return modfile.ModulePath(contents)
}

func resolve(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

func resolveAll(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	result := make([]string, 0, len(paths))
	for _, p := range paths {
		result = append(result, resolve(root, p))
	}
	return result
}
