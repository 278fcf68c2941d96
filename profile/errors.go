package profile

import "fmt"

type ErrABIMismatch struct {
	Profile Profile
	Linked  Version
}

func (e ErrABIMismatch) Error() string {
	return fmt.Sprintf(
		"linked libavcodec %s is ABI-incompatible with profile %s (expected major version %d)",
		e.Linked, e.Profile, e.Profile.LibAVCodec.Major,
	)
}

type ErrTooOld struct {
	Profile Profile
	Linked  Version
}

func (e ErrTooOld) Error() string {
	return fmt.Sprintf(
		"linked libavcodec %s is older than %s required by profile %s",
		e.Linked, e.Profile.LibAVCodec, e.Profile.Tag,
	)
}

type ErrSeriesMismatch struct {
	Profile  Profile
	Linked   Version
	Detected Profile
}

func (e ErrSeriesMismatch) Error() string {
	return fmt.Sprintf(
		"linked libavcodec %s belongs to %s, but the build selected profile %s",
		e.Linked, e.Detected.Tag, e.Profile.Tag,
	)
}
