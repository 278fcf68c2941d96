package avconv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/ffav/types"
)

func TestDuration(t *testing.T) {
	us := types.TimeBaseFromUnit(1000000)
	require.Equal(t, 40*time.Millisecond, Duration(40000, us))
	require.Equal(t, int64(40000), FromDuration(40*time.Millisecond, us))

	mpegts := types.TimeBaseFromUnit(90000)
	require.Equal(t, time.Second, Duration(90000, mpegts))
	require.Equal(t, int64(3600), FromDuration(40*time.Millisecond, mpegts))

	require.Equal(t, NoDuration, Duration(NoPTSValue, us))
	require.Equal(t, NoPTSValue, FromDuration(NoDuration, us))
	require.Equal(t, NoDuration, Duration(1, types.Rational{}))
}
