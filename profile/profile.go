// Package profile describes the FFmpeg release series ffav can be built
// against and which one the current build selected.
//
// A series is picked with a Go build tag:
//
//	(no tag)   FFmpeg 4.3.x, libavcodec 58.91.100 (default)
//	ffmpeg43   FFmpeg 4.3.x, libavcodec 58.91.100
//	ffmpeg42   FFmpeg 4.2.x, libavcodec 58.54.100
//	ffmpeg41   FFmpeg 4.1.x, libavcodec 58.35.100
//	ffmpeg4    FFmpeg 4.0.x, libavcodec 58.18.100
//	ffmpeg34   FFmpeg 3.4.x, libavcodec 57.107.100
//
// Exactly one series is active per build: combining two tags fails to
// compile.
package profile

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Tag string

const (
	TagFFmpeg43 = Tag("ffmpeg43")
	TagFFmpeg42 = Tag("ffmpeg42")
	TagFFmpeg41 = Tag("ffmpeg41")
	TagFFmpeg4  = Tag("ffmpeg4")
	TagFFmpeg34 = Tag("ffmpeg34")
)

func (t Tag) String() string {
	return string(t)
}

type Profile struct {
	Tag Tag

	// Series is the FFmpeg release series, e.g. "4.3.x".
	Series string

	// LibAVCodec is the libavcodec version shipped with the first release
	// of the series.
	LibAVCodec Version

	// IsDefault is true for the profile used when no tag is given.
	IsDefault bool
}

// ordered newest first
var profiles = []Profile{
	{Tag: TagFFmpeg43, Series: "4.3.x", LibAVCodec: NewVersion(58, 91, 100), IsDefault: true},
	{Tag: TagFFmpeg42, Series: "4.2.x", LibAVCodec: NewVersion(58, 54, 100)},
	{Tag: TagFFmpeg41, Series: "4.1.x", LibAVCodec: NewVersion(58, 35, 100)},
	{Tag: TagFFmpeg4, Series: "4.0.x", LibAVCodec: NewVersion(58, 18, 100)},
	{Tag: TagFFmpeg34, Series: "3.4.x", LibAVCodec: NewVersion(57, 107, 100)},
}

// Profiles returns all supported profiles, newest first.
func Profiles() []Profile {
	return slices.Clone(profiles)
}

func ByTag(tag Tag) (Profile, bool) {
	for _, p := range profiles {
		if p.Tag == tag {
			return p, true
		}
	}
	return Profile{}, false
}

func Default() Profile {
	for _, p := range profiles {
		if p.IsDefault {
			return p
		}
	}
	panic("no default profile")
}

// Current returns the profile selected by the build tags of this build.
func Current() Profile {
	p, ok := ByTag(currentTag)
	if !ok {
		panic(fmt.Sprintf("build selected an unknown profile %q", currentTag))
	}
	return p
}

// ProfileForLibAVCodec returns the profile whose series the given linked
// libavcodec version belongs to: the newest profile with the same major
// version that is not newer than v.
func ProfileForLibAVCodec(v Version) (Profile, bool) {
	for _, p := range profiles {
		if p.LibAVCodec.Major != v.Major {
			continue
		}
		if v.Less(p.LibAVCodec) {
			continue
		}
		return p, true
	}
	return Profile{}, false
}

// SeriesMajorMinor returns the FFmpeg major and minor version of the series.
func (p Profile) SeriesMajorMinor() (int, int) {
	parts := strings.SplitN(p.Series, ".", 3)
	if len(parts) < 2 {
		return 0, 0
	}
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	return major, minor
}

// CheckLinked verifies that a linked libavcodec of version v belongs to the
// series of this profile: the major version (the ABI) must be equal, v must
// not be older than the first release of the series and not as new as the
// next series.
func (p Profile) CheckLinked(v Version) error {
	if v.Major != p.LibAVCodec.Major {
		return ErrABIMismatch{Profile: p, Linked: v}
	}
	if v.Less(p.LibAVCodec) {
		return ErrTooOld{Profile: p, Linked: v}
	}
	if !p.Matches(v) {
		detected, _ := ProfileForLibAVCodec(v)
		return ErrSeriesMismatch{Profile: p, Linked: v, Detected: detected}
	}
	return nil
}

// Matches is true if v belongs to the series of the profile: from the
// profile's own libavcodec version up to (excluding) the one of the next
// newer series with the same major version.
func (p Profile) Matches(v Version) bool {
	found, ok := ProfileForLibAVCodec(v)
	return ok && found.Tag == p.Tag
}

// BuildFlags returns the `go build` flags selecting this profile.
func (p Profile) BuildFlags() string {
	if p.IsDefault {
		return ""
	}
	return "-tags=" + string(p.Tag)
}

func (p Profile) String() string {
	return fmt.Sprintf("%s (FFmpeg %s, libavcodec %s)", p.Tag, p.Series, p.LibAVCodec)
}
