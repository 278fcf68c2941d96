package demuxer

import (
	"github.com/xaionaro-go/ffav/types"
	"github.com/xaionaro-go/secret"
)

type Config struct {
	// FormatOptions are passed to the demuxer; the "f" option forces the
	// input format instead.
	FormatOptions types.DictionaryItems `yaml:"format_options,omitempty"`

	// TimeUnit, if positive, converts pts, dts and duration of every
	// packet into the time base 1/TimeUnit (e.g. 1000000 for
	// microseconds).
	TimeUnit int `yaml:"time_unit,omitempty"`

	// AuthKey is appended to the URL when opening it and never logged.
	AuthKey secret.String `yaml:"-"`
}
