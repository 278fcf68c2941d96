package profile

import "fmt"

// BindingPatch is the bug-fix counter of the binding itself. It does not
// track FFmpeg patch releases.
const BindingPatch = 0

// BindingVersion is the version of ffav for the current build: major and
// minor follow the FFmpeg series of the active profile.
func BindingVersion() string {
	return Current().BindingVersion()
}

func (p Profile) BindingVersion() string {
	major, minor := p.SeriesMajorMinor()
	return fmt.Sprintf("%d.%d.%d", major, minor, BindingPatch)
}
