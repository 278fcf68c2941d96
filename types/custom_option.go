package types

import (
	"fmt"
	"slices"
	"strings"
)

// DictionaryItem is a single FFmpeg option (AVDictionary entry).
type DictionaryItem struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
}

type DictionaryItems []DictionaryItem

// ParseDictionaryItems parses FFmpeg's "key=value:key2=value2" option
// syntax, e.g. "movflags=frag_keyframe" or "mpegts_copyts=1".
// Only the first '=' of a pair separates the key.
func ParseDictionaryItems(s string) (DictionaryItems, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var result DictionaryItems
	for _, pair := range strings.Split(s, ":") {
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid option %q in %q: expected key=value", pair, s)
		}
		result = append(result, DictionaryItem{Key: key, Value: value})
	}
	return result, nil
}

// Deduplicate keeps only the last occurrence of every key, preserving the
// order of those last occurrences.
func (s DictionaryItems) Deduplicate() DictionaryItems {
	if s == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(s))
	result := make(DictionaryItems, 0, len(s))
	for i := len(s) - 1; i >= 0; i-- {
		if _, ok := seen[s[i].Key]; ok {
			continue
		}
		seen[s[i].Key] = struct{}{}
		result = append(result, s[i])
	}
	slices.Reverse(result)
	return result
}

// Get returns the value of the last item with the given key.
func (s DictionaryItems) Get(key string) (string, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Key == key {
			return s[i].Value, true
		}
	}
	return "", false
}

// Without returns the items except those with the given key.
func (s DictionaryItems) Without(key string) DictionaryItems {
	var result DictionaryItems
	for _, item := range s {
		if item.Key == key {
			continue
		}
		result = append(result, item)
	}
	return result
}

func (s DictionaryItems) String() string {
	var b strings.Builder
	for idx, item := range s {
		if idx > 0 {
			b.WriteByte(':')
		}
		b.WriteString(item.Key)
		b.WriteByte('=')
		b.WriteString(item.Value)
	}
	return b.String()
}
