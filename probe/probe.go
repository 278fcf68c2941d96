// Package probe detects the libavcodec installed on the host without
// linking against it, so that the matching build tag can be chosen before
// compiling anything that uses cgo.
package probe

import (
	"errors"
	"fmt"

	"github.com/xaionaro-go/ffav/profile"
	"github.com/xaionaro-go/typing"
)

// EnvLibAVCodecPath overrides the candidate list with a single path.
const EnvLibAVCodecPath = "FFAV_LIBAVCODEC_PATH"

var ErrNotFound = errors.New("libavcodec was not found")

type Result struct {
	Path       string
	LibAVCodec profile.Version

	// Profile is the build profile for the detected library; unset if no
	// profile supports it.
	Profile typing.Optional[profile.Profile]
}

func newResult(path string, v profile.Version) Result {
	r := Result{Path: path, LibAVCodec: v}
	if p, ok := profile.ProfileForLibAVCodec(v); ok {
		r.Profile = typing.Opt(p)
	}
	return r
}

func (r Result) String() string {
	if !r.Profile.IsSet() {
		return fmt.Sprintf("%s: libavcodec %s (no matching build profile)", r.Path, r.LibAVCodec)
	}
	if flags := r.Profile.Get().BuildFlags(); flags != "" {
		return fmt.Sprintf("%s: libavcodec %s (build with %s)", r.Path, r.LibAVCodec, flags)
	}
	return fmt.Sprintf("%s: libavcodec %s (default build)", r.Path, r.LibAVCodec)
}

// CandidatePaths lists the paths Detect tries, in order, for the given OS.
func CandidatePaths(goos string, getenv func(string) string) []string {
	if getenv != nil {
		if path := getenv(EnvLibAVCodecPath); path != "" {
			return []string{path}
		}
	}

	var paths []string
	switch goos {
	case "darwin":
		for _, major := range supportedMajors() {
			name := fmt.Sprintf("libavcodec.%d.dylib", major)
			paths = append(paths,
				name,
				"/usr/local/lib/"+name,
				"/opt/homebrew/lib/"+name,
			)
		}
	default:
		for _, major := range supportedMajors() {
			paths = append(paths, fmt.Sprintf("libavcodec.so.%d", major))
		}
		paths = append(paths, "libavcodec.so")
	}
	return paths
}

// supportedMajors returns each libavcodec major of the known profiles once,
// newest first.
func supportedMajors() []int {
	var result []int
	seen := map[int]struct{}{}
	for _, p := range profile.Profiles() {
		if _, ok := seen[p.LibAVCodec.Major]; ok {
			continue
		}
		seen[p.LibAVCodec.Major] = struct{}{}
		result = append(result, p.LibAVCodec.Major)
	}
	return result
}
