package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/ensime/ensimed/src/ensimed/handler"
	"github.com/ensime/ensimed/src/ensimed/internal/clock"
	"github.com/ensime/ensimed/src/ensimed/internal/fs"
	"github.com/ensime/ensimed/src/ensimed/internal/fs/fsmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/config"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newConfigProvider(t *testing.T, yaml string) config.Provider {
	provider, err := config.NewYAML(config.Source(strings.NewReader(yaml)))
	require.NoError(t, err)
	return provider
}

func TestDecorateConfigProvider(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		setExpect func(m *fsmock.MockFS)
		wantErr   bool
	}{
		{
			name: "creates every log directory",
			yaml: "logging:\n  outputPaths:\n    - /tmp/ensime/a/ensimed.log\n    - /tmp/ensime/b/ensimed.log\n    - stderr\n",
			setExpect: func(m *fsmock.MockFS) {
				m.EXPECT().MkdirAll("/tmp/ensime/a").Return(nil)
				m.EXPECT().MkdirAll("/tmp/ensime/b").Return(nil)
			},
		},
		{
			name:      "no output paths",
			yaml:      "logging:\n  level: info\n",
			setExpect: func(m *fsmock.MockFS) {},
		},
		{
			name: "directory creation fails",
			yaml: "logging:\n  outputPaths:\n    - /readonly/ensimed.log\n",
			setExpect: func(m *fsmock.MockFS) {
				m.EXPECT().MkdirAll("/readonly").Return(errors.New("permission denied"))
			},
			wantErr: true,
		},
		{
			name:      "malformed logging block",
			yaml:      "logging: 12\n",
			setExpect: func(m *fsmock.MockFS) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := fsmock.NewMockFS(ctrl)
			tt.setExpect(m)

			var got config.Provider
			app := fx.New(
				fx.Provide(func() config.Provider { return newConfigProvider(t, tt.yaml) }),
				fx.Provide(func() fs.FS { return m }),
				fx.Decorate(decorateConfigProvider),
				fx.Invoke(func(cfg config.Provider) { got = cfg }),
			)
			if tt.wantErr {
				assert.Error(t, app.Err())
				return
			}
			require.NoError(t, app.Err())
			assert.NotNil(t, got)
		})
	}
}

func TestRegisterForcedExit(t *testing.T) {
	var exitCode int
	exited := false
	defer func(prev func(int)) { _exit = prev }(_exit)
	_exit = func(code int) {
		exited = true
		exitCode = code
	}

	clk := clock.NewFake(time.Now())
	lc := fxtest.NewLifecycle(t)
	registerForcedExit(ForcedExitParams{
		Lifecycle: lc,
		Clock:     clk,
		Config:    handler.ServerConfig{ShutdownGraceMillis: 100, ForceExitMillis: 500},
		Logger:    zap.NewNop().Sugar(),
	})

	lc.RequireStart()
	assert.Zero(t, clk.Pending(), "timer must not be armed before shutdown")

	lc.RequireStop()
	assert.Equal(t, 1, clk.Pending())

	clk.Advance(499 * time.Millisecond)
	assert.False(t, exited)

	clk.Advance(time.Millisecond)
	assert.True(t, exited)
	assert.Equal(t, 1, exitCode)
}
