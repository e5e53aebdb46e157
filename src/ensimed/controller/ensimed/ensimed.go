//go:generate mockgen -destination=ensimedmock/ensimed_mock.go -package=ensimedmock . Controller

// Package ensimed implements the business logic behind each client request.
package ensimed

import (
	"context"
	"fmt"
	"os"

	"github.com/ensime/ensimed/src/ensimed/controller/analyzer"
	"github.com/ensime/ensimed/src/ensimed/controller/coordinator"
	"github.com/ensime/ensimed/src/ensimed/entity"
	"github.com/ensime/ensimed/src/ensimed/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const _implementation = "ensimed"

// Controller orchestrates the business logic for each request.
type Controller interface {
	ConnectionInfo(ctx context.Context) (*entity.ConnectionInfo, error)

	// TypecheckFiles loads files into the working set and reports notes for a full pass.
	TypecheckFiles(ctx context.Context, files []entity.SourceFileInfo) error
	// TypecheckAll reloads the working set from disk right away, bypassing the retypecheck debounce.
	TypecheckAll(ctx context.Context) error
	UnloadFile(ctx context.Context, file entity.SourceFileInfo) error
	RestartCompiler(ctx context.Context) error

	TypeAtPoint(ctx context.Context, params *entity.PointParams) (*entity.TypeInfo, error)
	PathToPoint(ctx context.Context, params *entity.PointParams) ([]entity.PathElement, error)
	ScopeForPoint(ctx context.Context, params *entity.PointParams) ([]entity.ScopeEntry, error)
	DocSignatureAtPoint(ctx context.Context, params *entity.PointParams) (*entity.SymbolInfo, error)
	LinkPos(ctx context.Context, params *entity.LinkPosParams) (*entity.OffsetPosition, error)

	ApplyEdits(ctx context.Context, params *entity.ApplyEditsParams) (*entity.Undo, error)
	// PeekUndo returns the latest undo, or nil when the undo log is empty.
	PeekUndo(ctx context.Context) (*entity.Undo, error)
	ExecUndo(ctx context.Context, id int64) (*entity.UndoResult, error)

	// ShutdownServer requests an orderly shutdown of the whole process.
	ShutdownServer(ctx context.Context) error
}

// Params are inbound parameters to initialize a new controller.
type Params struct {
	fx.In

	Shutdowner  fx.Shutdowner
	Analyzer    analyzer.Controller
	Coordinator coordinator.Coordinator
	Logger      *zap.SugaredLogger
}

type controller struct {
	shutdowner  fx.Shutdowner
	analyzer    analyzer.Controller
	coordinator coordinator.Coordinator
	logger      *zap.SugaredLogger
	pid         int
}

// New constructs a new top-level controller for the service.
func New(p Params) Controller {
	return &controller{
		shutdowner:  p.Shutdowner,
		analyzer:    p.Analyzer,
		coordinator: p.Coordinator,
		logger:      p.Logger,
		pid:         os.Getpid(),
	}
}

func (c *controller) ConnectionInfo(ctx context.Context) (*entity.ConnectionInfo, error) {
	return &entity.ConnectionInfo{
		PID:            c.pid,
		Implementation: _implementation,
		Version:        entity.ProtocolVersion,
		Ready:          c.coordinator.Ready().IsSet(),
	}, nil
}

func (c *controller) TypecheckFiles(ctx context.Context, files []entity.SourceFileInfo) error {
	if err := c.analyzer.TypecheckAll(ctx, files); err != nil {
		return fmt.Errorf("typechecking %d files: %w", len(files), err)
	}
	return nil
}

func (c *controller) TypecheckAll(ctx context.Context) error {
	return c.analyzer.ReloadAll(ctx)
}

func (c *controller) UnloadFile(ctx context.Context, file entity.SourceFileInfo) error {
	c.analyzer.RemoveSource(ctx, file)
	c.coordinator.AskReTypecheck()
	return nil
}

func (c *controller) RestartCompiler(ctx context.Context) error {
	if err := c.analyzer.Restart(ctx); err != nil {
		return fmt.Errorf("restarting compiler: %w", err)
	}
	c.coordinator.AskReTypecheck()
	return nil
}

func (c *controller) TypeAtPoint(ctx context.Context, params *entity.PointParams) (*entity.TypeInfo, error) {
	offset, err := c.resolveOffset(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.analyzer.TypeAtPoint(ctx, params.File, offset)
}

func (c *controller) PathToPoint(ctx context.Context, params *entity.PointParams) ([]entity.PathElement, error) {
	offset, err := c.resolveOffset(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.analyzer.PathToPoint(ctx, params.File, offset)
}

func (c *controller) ScopeForPoint(ctx context.Context, params *entity.PointParams) ([]entity.ScopeEntry, error) {
	offset, err := c.resolveOffset(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.analyzer.ScopeForPoint(ctx, params.File, offset)
}

func (c *controller) DocSignatureAtPoint(ctx context.Context, params *entity.PointParams) (*entity.SymbolInfo, error) {
	offset, err := c.resolveOffset(ctx, params)
	if err != nil {
		return nil, err
	}
	return c.analyzer.DocSignatureAtPoint(ctx, params.File, offset)
}

func (c *controller) LinkPos(ctx context.Context, params *entity.LinkPosParams) (*entity.OffsetPosition, error) {
	return c.analyzer.LinkPos(ctx, params.FQN, params.File)
}

// resolveOffset turns an editor position into a byte offset using the unit's current content.
func (c *controller) resolveOffset(ctx context.Context, params *entity.PointParams) (int, error) {
	if params.Offset != nil {
		return *params.Offset, nil
	}
	handle, err := c.analyzer.InternSource(ctx, params.File)
	if err != nil {
		return 0, fmt.Errorf("loading %s: %w", params.File.Name(), err)
	}
	offset, err := mapper.PointToOffset(handle.Content(), *params)
	if err != nil {
		return 0, fmt.Errorf("resolving point in %s: %w", params.File.Name(), err)
	}
	return offset, nil
}

func (c *controller) ApplyEdits(ctx context.Context, params *entity.ApplyEditsParams) (*entity.Undo, error) {
	undo, err := c.analyzer.ApplyEdits(ctx, params.Summary, params.Edits)
	if err != nil {
		return nil, fmt.Errorf("applying edits: %w", err)
	}
	c.coordinator.AskReTypecheck()
	return &undo, nil
}

func (c *controller) PeekUndo(ctx context.Context) (*entity.Undo, error) {
	undo, ok := c.coordinator.PeekUndo()
	if !ok {
		return nil, nil
	}
	return &undo, nil
}

func (c *controller) ExecUndo(ctx context.Context, id int64) (*entity.UndoResult, error) {
	result, err := c.coordinator.ExecUndo(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("executing undo: %w", err)
	}
	c.coordinator.AskReTypecheck()
	return &result, nil
}

func (c *controller) ShutdownServer(ctx context.Context) error {
	c.logger.Info("shutdown requested by client")
	if err := c.shutdowner.Shutdown(); err != nil {
		return fmt.Errorf("requesting shutdown: %w", err)
	}
	return nil
}
