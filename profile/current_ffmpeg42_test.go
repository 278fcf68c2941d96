//go:build ffmpeg42

package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentSelectsFFmpeg42(t *testing.T) {
	require.Equal(t, TagFFmpeg42, Current().Tag)
	require.Equal(t, "4.2.0", BindingVersion())
	require.Equal(t, "58.54.100", Current().LibAVCodec.String())
}
