package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCustomOptionsDeduplicate(t *testing.T) {
	require.Equal(
		t,
		DictionaryItems{
			{Key: "b", Value: "0"},
			{Key: "a", Value: "1"},
		},
		DictionaryItems{
			{Key: "a", Value: "0"},
			{Key: "b", Value: "0"},
			{Key: "a", Value: "1"},
		}.Deduplicate(),
	)
}

func TestParseDictionaryItems(t *testing.T) {
	items, err := ParseDictionaryItems("movflags=frag_keyframe")
	require.NoError(t, err)
	require.Equal(t, DictionaryItems{{Key: "movflags", Value: "frag_keyframe"}}, items)

	items, err = ParseDictionaryItems("mpegts_copyts=1:movflags=+faststart+frag_keyframe:empty=")
	require.NoError(t, err)
	require.Equal(t, DictionaryItems{
		{Key: "mpegts_copyts", Value: "1"},
		{Key: "movflags", Value: "+faststart+frag_keyframe"},
		{Key: "empty", Value: ""},
	}, items)
	require.Equal(t, "mpegts_copyts=1:movflags=+faststart+frag_keyframe:empty=", items.String())

	v, ok := items.Get("movflags")
	require.True(t, ok)
	require.Equal(t, "+faststart+frag_keyframe", v)
	_, ok = items.Get("f")
	require.False(t, ok)
	require.Len(t, items.Without("empty"), 2)

	items, err = ParseDictionaryItems("   ")
	require.NoError(t, err)
	require.Nil(t, items)

	for _, bad := range []string{"novalue", "=1", "a=1:b"} {
		_, err := ParseDictionaryItems(bad)
		require.Error(t, err, bad)
	}
}
