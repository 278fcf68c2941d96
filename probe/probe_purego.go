//go:build darwin || linux || freebsd

package probe

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/ebitengine/purego"
	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/ffav/profile"
)

// Detect returns the first loadable libavcodec among CandidatePaths.
func Detect(ctx context.Context) (*Result, error) {
	return DetectFrom(ctx, CandidatePaths(runtime.GOOS, os.Getenv))
}

func DetectFrom(ctx context.Context, paths []string) (*Result, error) {
	var lastErr error
	for _, path := range paths {
		v, err := libAVCodecVersion(path)
		if err != nil {
			logger.Debugf(ctx, "unable to probe '%s': %v", path, err)
			lastErr = err
			continue
		}
		r := newResult(path, v)
		return &r, nil
	}
	if lastErr != nil {
		return nil, fmt.Errorf("%w (tried %d paths; last error: %v)", ErrNotFound, len(paths), lastErr)
	}
	return nil, ErrNotFound
}

func libAVCodecVersion(path string) (_ profile.Version, _err error) {
	handle, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_LOCAL)
	if err != nil {
		return profile.Version{}, err
	}
	defer func() {
		if err := purego.Dlclose(handle); err != nil && _err == nil {
			_err = fmt.Errorf("unable to close '%s': %w", path, err)
		}
	}()

	sym, err := purego.Dlsym(handle, "avcodec_version")
	if err != nil {
		return profile.Version{}, err
	}
	var avcodecVersion func() uint32
	purego.RegisterFunc(&avcodecVersion, sym)
	return profile.VersionFromInt(avcodecVersion()), nil
}
