// Package internal holds helpers shared by the ffav packages that own
// native handles.
package internal

import (
	"context"

	"github.com/facebookincubator/go-belt/tool/logger"
)

// Assert panics (through the context logger) if the invariant does not hold.
func Assert(
	ctx context.Context,
	mustBeTrue bool,
	extraArgs ...any,
) {
	if mustBeTrue {
		return
	}

	logger.Panic(ctx, "assertion failed", extraArgs)
}
