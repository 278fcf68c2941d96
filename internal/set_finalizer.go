package internal

import (
	"context"
	"runtime"

	"github.com/xaionaro-go/ffav/logger"
)

// SetFinalizerFree releases the native handle behind freer when it becomes
// unreachable. Explicit Free/Close remains the primary way to release it;
// every Free in avffi is idempotent, so both paths may run.
func SetFinalizerFree[T interface{ Free() }](
	ctx context.Context,
	freer T,
) {
	runtime.SetFinalizer(freer, func(freer T) {
		logger.Debugf(ctx, "finalizer: freeing %T", freer)
		freer.Free()
	})
}

func SetFinalizer[T any](
	ctx context.Context,
	obj T,
	callback func(in T),
) {
	runtime.SetFinalizer(obj, callback)
}

// ClearFinalizer drops a finalizer set by SetFinalizer or SetFinalizerFree.
func ClearFinalizer[T any](obj T) {
	runtime.SetFinalizer(obj, nil)
}
