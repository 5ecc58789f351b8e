package cmd

import (
	"io"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a console logger writing to w. verbose enables V(1) output.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)

	return zapr.NewLogger(zap.New(core)).WithName("logreport")
}

func flushLogger(logger logr.Logger) {
	if u, ok := logger.GetSink().(zapr.Underlier); ok {
		_ = u.GetUnderlying().Sync()
	}
}
