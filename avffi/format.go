package avffi

/*
#include <stdlib.h>
#include <libavformat/avformat.h>
*/
import "C"

import (
	"unsafe"
)

type FormatFlags int

const (
	FormatFlagNoFile       = FormatFlags(C.AVFMT_NOFILE)
	FormatFlagGlobalHeader = FormatFlags(C.AVFMT_GLOBALHEADER)
)

func (f FormatFlags) Has(flag FormatFlags) bool {
	return f&flag == flag
}

// InputFormat wraps a registered AVInputFormat.
type InputFormat struct {
	c *C.AVInputFormat
}

// FindInputFormat returns nil if no demuxer is registered under the name.
func FindInputFormat(name string) *InputFormat {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	c := C.av_find_input_format(cname)
	if c == nil {
		return nil
	}
	return &InputFormat{c: c}
}

func (f *InputFormat) Name() string {
	return C.GoString(f.c.name)
}

// OutputFormat wraps a registered AVOutputFormat.
type OutputFormat struct {
	c *C.AVOutputFormat
}

func (f *OutputFormat) Name() string {
	return C.GoString(f.c.name)
}

func (f *OutputFormat) Extensions() string {
	if f.c.extensions == nil {
		return ""
	}
	return C.GoString(f.c.extensions)
}

func (f *OutputFormat) Flags() FormatFlags {
	return FormatFlags(f.c.flags)
}
