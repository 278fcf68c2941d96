package avffi

/*
#include <stdlib.h>
#include <libavutil/dict.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/xaionaro-go/ffav/types"
)

// Dictionary wraps AVDictionary, FFmpeg's key/value option container.
// A nil *Dictionary is a valid empty dictionary for all read methods.
type Dictionary struct {
	c *C.AVDictionary
}

func NewDictionary() *Dictionary {
	return &Dictionary{}
}

// DictionaryFromItems returns nil for empty items.
func DictionaryFromItems(items types.DictionaryItems) (*Dictionary, error) {
	if len(items) == 0 {
		return nil, nil
	}
	d := NewDictionary()
	for _, item := range items {
		if err := d.Set(item.Key, item.Value); err != nil {
			d.Free()
			return nil, fmt.Errorf("unable to set option '%s'='%s': %w", item.Key, item.Value, err)
		}
	}
	return d, nil
}

func (d *Dictionary) Set(key, value string) error {
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))
	return newError(C.av_dict_set(&d.c, ckey, cvalue, 0))
}

func (d *Dictionary) Get(key string) (string, bool) {
	if d == nil || d.c == nil {
		return "", false
	}
	ckey := C.CString(key)
	defer C.free(unsafe.Pointer(ckey))
	entry := C.av_dict_get(d.c, ckey, nil, 0)
	if entry == nil {
		return "", false
	}
	return C.GoString(entry.value), true
}

func (d *Dictionary) Len() int {
	if d == nil {
		return 0
	}
	return int(C.av_dict_count(d.c))
}

// Items returns the entries in insertion order. After an FFmpeg call
// consumed the dictionary, these are the options nobody recognized.
func (d *Dictionary) Items() types.DictionaryItems {
	if d == nil || d.c == nil {
		return nil
	}
	empty := C.CString("")
	defer C.free(unsafe.Pointer(empty))

	var result types.DictionaryItems
	var entry *C.AVDictionaryEntry
	for {
		entry = C.av_dict_get(d.c, empty, entry, C.AV_DICT_IGNORE_SUFFIX)
		if entry == nil {
			break
		}
		result = append(result, types.DictionaryItem{
			Key:   C.GoString(entry.key),
			Value: C.GoString(entry.value),
		})
	}
	return result
}

func (d *Dictionary) Free() {
	if d == nil || d.c == nil {
		return
	}
	C.av_dict_free(&d.c)
}

func (d *Dictionary) pointer() **C.AVDictionary {
	if d == nil {
		return nil
	}
	return &d.c
}
