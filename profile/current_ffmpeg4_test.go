//go:build ffmpeg4

package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentSelectsFFmpeg4(t *testing.T) {
	require.Equal(t, TagFFmpeg4, Current().Tag)
	require.Equal(t, "4.0.0", BindingVersion())
	require.Equal(t, "58.18.100", Current().LibAVCodec.String())
}
