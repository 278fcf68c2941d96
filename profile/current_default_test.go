//go:build !(ffmpeg43 || ffmpeg42 || ffmpeg41 || ffmpeg4 || ffmpeg34)

package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentDefaultsToFFmpeg43(t *testing.T) {
	require.Equal(t, TagFFmpeg43, Current().Tag)
	require.Equal(t, "4.3.0", BindingVersion())
}
