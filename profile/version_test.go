package profile

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("58.91.100")
	require.NoError(t, err)
	require.Equal(t, NewVersion(58, 91, 100), v)
	require.Equal(t, "58.91.100", v.String())

	for _, bad := range []string{"", "58", "58.91", "58.x.100", "58.91.100.1", "58.256.0", "-1.0.0"} {
		_, err := ParseVersion(bad)
		require.Error(t, err, bad)
	}
}

func TestVersionIntRoundTrip(t *testing.T) {
	// AV_VERSION_INT(58, 91, 100)
	const packed = uint32(58<<16 | 91<<8 | 100)
	v := VersionFromInt(packed)
	require.Equal(t, NewVersion(58, 91, 100), v)
	require.Equal(t, packed, v.Int())
}

func TestVersionCompare(t *testing.T) {
	require.True(t, MustParseVersion("57.107.100").Less(MustParseVersion("58.18.100")))
	require.True(t, MustParseVersion("58.18.100").Less(MustParseVersion("58.18.101")))
	require.Equal(t, 0, MustParseVersion("58.54.100").Compare(NewVersion(58, 54, 100)))
	require.Equal(t, 1, MustParseVersion("58.91.100").Compare(MustParseVersion("58.54.100")))
}
