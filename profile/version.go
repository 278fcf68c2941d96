package profile

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

// Version is a libav* library version as reported by FFmpeg
// (e.g. libavcodec 58.91.100).
type Version struct {
	Major int
	Minor int
	Micro int
}

func NewVersion(major, minor, micro int) Version {
	return Version{Major: major, Minor: minor, Micro: micro}
}

// VersionFromInt unpacks FFmpeg's AV_VERSION_INT encoding
// (major<<16 | minor<<8 | micro), as returned by avcodec_version().
func VersionFromInt(v uint32) Version {
	return Version{
		Major: int(v >> 16),
		Minor: int((v >> 8) & 0xff),
		Micro: int(v & 0xff),
	}
}

// Int packs the version the same way AV_VERSION_INT does.
func (v Version) Int() uint32 {
	return uint32(v.Major)<<16 | uint32(v.Minor&0xff)<<8 | uint32(v.Micro&0xff)
}

func ParseVersion(s string) (Version, error) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return Version{}, fmt.Errorf("unable to parse version %q: expected MAJOR.MINOR.MICRO", s)
	}
	var nums [3]int
	for idx, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("unable to parse version %q: component #%d: %w", s, idx, err)
		}
		if n < 0 || (idx > 0 && n > 0xff) {
			return Version{}, fmt.Errorf("unable to parse version %q: component #%d is out of range: %d", s, idx, n)
		}
		nums[idx] = n
	}
	return NewVersion(nums[0], nums[1], nums[2]), nil
}

func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Version) Compare(other Version) int {
	if c := cmp.Compare(v.Major, other.Major); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Minor, other.Minor); c != 0 {
		return c
	}
	return cmp.Compare(v.Micro, other.Micro)
}

func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Micro)
}
