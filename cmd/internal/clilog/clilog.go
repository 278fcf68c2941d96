// Package clilog sets up logging for the ffav command line tools.
package clilog

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/ffav/avffi"
)

// Flags registers --log-level and returns a pointer to the parsed level.
func Flags(fs *pflag.FlagSet) *logger.Level {
	level := logger.LevelWarning
	fs.Var(&level, "log-level", "Log level")
	return &level
}

// Init installs a logrus logger of the given level as the default and into
// the returned context, and routes FFmpeg log lines into it.
func Init(ctx context.Context, level logger.Level) (context.Context, logger.Logger) {
	l := logrus.Default().WithLevel(level)
	ctx = logger.CtxWithLogger(ctx, l)
	logger.Default = func() logger.Logger {
		return l
	}

	avffi.SetLogLevel(avffi.LogLevelFromLogger(level))
	avffi.SetLogCallback(func(level avffi.LogLevel, msg string) {
		msg = avffi.TrimLogLine(msg)
		if msg == "" {
			return
		}
		l.Logf(level.Logger(), "%s", msg)
	})
	return ctx, l
}
