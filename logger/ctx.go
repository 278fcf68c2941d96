package logger

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

func FromCtx(ctx context.Context) Logger {
	return logger.FromCtx(ctx)
}

func CtxWithLogger(ctx context.Context, l Logger) context.Context {
	return logger.CtxWithLogger(ctx, l)
}

// IsTraceEnabled reports whether the context logger would emit Trace-level
// messages. Used to skip building expensive dumps.
func IsTraceEnabled(ctx context.Context) bool {
	return FromCtx(ctx).Level() >= LevelTrace
}
