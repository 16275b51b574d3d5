package logs

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zapcore"

	"title-reader/config"
)

func TestLevelFromString(t *testing.T) {
	t.Parallel()

	require.Equal(t, zapcore.DebugLevel, levelFromString(" DEBUG "))
	require.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	require.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	require.Equal(t, zapcore.InfoLevel, levelFromString("nonsense"))
}

func TestNewLogger_RespectsLevel(t *testing.T) {
	t.Parallel()

	l, err := NewLogger(&config.Config{AppName: "t", ENV: config.Production, LogLevel: "warn"})
	require.NoError(t, err)

	require.False(t, l.Core().Enabled(zapcore.InfoLevel))
	require.True(t, l.Core().Enabled(zapcore.WarnLevel))

	lc := fxtest.NewLifecycle(t)
	RegisterLifecycle(lc, l)
	lc.RequireStart().RequireStop()
}
