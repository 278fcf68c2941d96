//go:build ffmpeg34

package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCurrentSelectsFFmpeg34(t *testing.T) {
	require.Equal(t, TagFFmpeg34, Current().Tag)
	require.Equal(t, "3.4.0", BindingVersion())
	require.Equal(t, "57.107.100", Current().LibAVCodec.String())
}
