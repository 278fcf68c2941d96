package avffi

/*
#include <stdio.h>
#include <stdlib.h>
#include <libavformat/avio.h>

static int64_t ffav_avio_tell(AVIOContext *s) { return avio_seek(s, 0, SEEK_CUR); }
*/
import "C"

import (
	"unsafe"
)

type IOContextFlags int

const (
	IOContextFlagRead      = IOContextFlags(C.AVIO_FLAG_READ)
	IOContextFlagWrite     = IOContextFlags(C.AVIO_FLAG_WRITE)
	IOContextFlagReadWrite = IOContextFlags(C.AVIO_FLAG_READ_WRITE)
)

// IOContext wraps an AVIOContext opened with avio_open2.
type IOContext struct {
	c *C.AVIOContext
}

func OpenIOContext(url string, flags IOContextFlags, dict *Dictionary) (*IOContext, error) {
	curl := C.CString(url)
	defer C.free(unsafe.Pointer(curl))

	var c *C.AVIOContext
	if err := newError(C.avio_open2(&c, curl, C.int(flags), nil, dict.pointer())); err != nil {
		return nil, err
	}
	return &IOContext{c: c}, nil
}

func (io *IOContext) Flush() {
	if io == nil || io.c == nil {
		return
	}
	C.avio_flush(io.c)
}

// Tell returns the current write position, which is the number of bytes
// written so far for a fresh output file.
func (io *IOContext) Tell() int64 {
	if io == nil || io.c == nil {
		return 0
	}
	return int64(C.ffav_avio_tell(io.c))
}

// Size returns the size of the underlying resource, or a negative AVERROR.
func (io *IOContext) Size() int64 {
	if io == nil || io.c == nil {
		return 0
	}
	return int64(C.avio_size(io.c))
}

func (io *IOContext) Close() error {
	if io == nil || io.c == nil {
		return nil
	}
	c := io.c
	io.c = nil
	return newError(C.avio_closep(&c))
}

func (io *IOContext) Free() {
	_ = io.Close()
}
