//go:build !(darwin || linux || freebsd)

package probe

import (
	"context"
	"fmt"
	"runtime"
)

func Detect(ctx context.Context) (*Result, error) {
	return nil, fmt.Errorf("probing is not supported on %s: %w", runtime.GOOS, ErrNotFound)
}

func DetectFrom(ctx context.Context, paths []string) (*Result, error) {
	return Detect(ctx)
}
