package profile

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfilesTable(t *testing.T) {
	expected := map[Tag]string{
		TagFFmpeg43: "58.91.100",
		TagFFmpeg42: "58.54.100",
		TagFFmpeg41: "58.35.100",
		TagFFmpeg4:  "58.18.100",
		TagFFmpeg34: "57.107.100",
	}
	all := Profiles()
	require.Len(t, all, len(expected))
	for _, p := range all {
		v, ok := expected[p.Tag]
		require.True(t, ok, "unexpected tag %s", p.Tag)
		require.Equal(t, v, p.LibAVCodec.String(), p.Tag)
	}

	for i := 1; i < len(all); i++ {
		require.True(t, all[i].LibAVCodec.Less(all[i-1].LibAVCodec), "profiles must be ordered newest first")
	}
}

func TestExactlyOneDefault(t *testing.T) {
	var defaults []Tag
	for _, p := range Profiles() {
		if p.IsDefault {
			defaults = append(defaults, p.Tag)
		}
	}
	require.Equal(t, []Tag{TagFFmpeg43}, defaults)
	require.Equal(t, TagFFmpeg43, Default().Tag)
	require.Equal(t, "", Default().BuildFlags())

	p, ok := ByTag(TagFFmpeg34)
	require.True(t, ok)
	require.Equal(t, "-tags=ffmpeg34", p.BuildFlags())
	require.Equal(t, "3.4.0", p.BindingVersion())

	_, ok = ByTag("ffmpeg50")
	require.False(t, ok)
}

func TestProfilesReturnsCopy(t *testing.T) {
	all := Profiles()
	all[0].Series = "mutated"
	require.Equal(t, "4.3.x", Profiles()[0].Series)
}

func TestCurrentIsKnown(t *testing.T) {
	cur := Current()
	p, ok := ByTag(cur.Tag)
	require.True(t, ok)
	require.Equal(t, p, cur)

	major, minor := cur.SeriesMajorMinor()
	require.Equal(t, fmt.Sprintf("%d.%d.%d", major, minor, BindingPatch), BindingVersion())
}

func TestCheckLinked(t *testing.T) {
	p43, _ := ByTag(TagFFmpeg43)
	p34, _ := ByTag(TagFFmpeg34)

	require.NoError(t, p43.CheckLinked(MustParseVersion("58.91.100")))
	require.NoError(t, p43.CheckLinked(MustParseVersion("58.134.100")), "a newer minor keeps the ABI")

	err := p43.CheckLinked(MustParseVersion("58.54.100"))
	require.Error(t, err)
	require.True(t, errors.As(err, &ErrTooOld{}), "got: %v", err)

	err = p43.CheckLinked(MustParseVersion("57.107.100"))
	require.Error(t, err)
	require.True(t, errors.As(err, &ErrABIMismatch{}), "got: %v", err)

	err = p34.CheckLinked(MustParseVersion("58.18.100"))
	require.True(t, errors.As(err, &ErrABIMismatch{}), "got: %v", err)
	require.NoError(t, p34.CheckLinked(MustParseVersion("57.107.100")))
}

func TestCheckLinkedRejectsNewerSeries(t *testing.T) {
	p41, _ := ByTag(TagFFmpeg41)
	p42, _ := ByTag(TagFFmpeg42)

	require.NoError(t, p41.CheckLinked(MustParseVersion("58.35.100")))
	require.NoError(t, p41.CheckLinked(MustParseVersion("58.53.100")))

	err := p41.CheckLinked(MustParseVersion("58.91.100"))
	var mismatch ErrSeriesMismatch
	require.True(t, errors.As(err, &mismatch), "got: %v", err)
	require.Equal(t, TagFFmpeg43, mismatch.Detected.Tag)
	require.Equal(t, TagFFmpeg41, mismatch.Profile.Tag)

	err = p42.CheckLinked(MustParseVersion("58.91.100"))
	require.True(t, errors.As(err, &ErrSeriesMismatch{}), "got: %v", err)
	require.NoError(t, p42.CheckLinked(MustParseVersion("58.90.100")))
}

func TestMatches(t *testing.T) {
	p42, _ := ByTag(TagFFmpeg42)
	require.True(t, p42.Matches(MustParseVersion("58.54.100")))
	require.True(t, p42.Matches(MustParseVersion("58.54.101")))
	require.True(t, p42.Matches(MustParseVersion("58.60.100")))
	require.False(t, p42.Matches(MustParseVersion("58.91.100")))
	require.False(t, p42.Matches(MustParseVersion("58.35.100")))
	require.False(t, p42.Matches(MustParseVersion("57.107.100")))
}

func TestProfileForLibAVCodec(t *testing.T) {
	for _, tc := range []struct {
		linked string
		tag    Tag
		found  bool
	}{
		{"58.91.100", TagFFmpeg43, true},
		{"58.134.100", TagFFmpeg43, true},
		{"58.60.100", TagFFmpeg42, true},
		{"58.54.100", TagFFmpeg42, true},
		{"58.35.100", TagFFmpeg41, true},
		{"58.18.100", TagFFmpeg4, true},
		{"57.107.100", TagFFmpeg34, true},
		{"58.10.100", "", false},
		{"57.64.101", "", false},
		{"59.37.100", "", false},
	} {
		t.Run(tc.linked, func(t *testing.T) {
			p, ok := ProfileForLibAVCodec(MustParseVersion(tc.linked))
			require.Equal(t, tc.found, ok)
			if ok {
				require.Equal(t, tc.tag, p.Tag)
			}
		})
	}
}
