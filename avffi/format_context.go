package avffi

/*
#include <stdlib.h>
#include <libavformat/avformat.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// FormatContext wraps AVFormatContext, either as an opened input or as an
// allocated output.
type FormatContext struct {
	c         *C.AVFormatContext
	isInput   bool
	ioContext *IOContext
}

// OpenInput opens url with avformat_open_input. Options consumed by FFmpeg
// are removed from dict.
func OpenInput(url string, format *InputFormat, dict *Dictionary) (*FormatContext, error) {
	curl := C.CString(url)
	defer C.free(unsafe.Pointer(curl))

	var cfmt *C.AVInputFormat
	if format != nil {
		cfmt = format.c
	}

	var c *C.AVFormatContext
	if err := newError(C.avformat_open_input(&c, curl, cfmt, dict.pointer())); err != nil {
		return nil, err
	}
	return &FormatContext{c: c, isInput: true}, nil
}

// AllocOutputFormatContext allocates an output context; an empty
// formatName makes FFmpeg guess the format from filename.
func AllocOutputFormatContext(formatName, filename string) (*FormatContext, error) {
	var cformat *C.char
	if formatName != "" {
		cformat = C.CString(formatName)
		defer C.free(unsafe.Pointer(cformat))
	}
	var cfilename *C.char
	if filename != "" {
		cfilename = C.CString(filename)
		defer C.free(unsafe.Pointer(cfilename))
	}

	var c *C.AVFormatContext
	if err := newError(C.avformat_alloc_output_context2(&c, nil, cformat, cfilename)); err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("unable to guess the output format of '%s': %w", filename, ErrMuxerNotFound)
	}
	return &FormatContext{c: c}, nil
}

func (f *FormatContext) IsInput() bool {
	return f.isInput
}

func (f *FormatContext) FindStreamInfo() error {
	return newError(C.avformat_find_stream_info(f.c, nil))
}

// ReadFrame reads the next packet; ErrEOF marks the end of input.
func (f *FormatContext) ReadFrame(p *Packet) error {
	return newError(C.av_read_frame(f.c, p.c))
}

// NbStreams is 0 for a freed context.
func (f *FormatContext) NbStreams() int {
	if f == nil || f.c == nil {
		return 0
	}
	return int(f.c.nb_streams)
}

func (f *FormatContext) Streams() []*Stream {
	n := f.NbStreams()
	if n == 0 {
		return nil
	}
	cs := unsafe.Slice(f.c.streams, n)
	result := make([]*Stream, 0, n)
	for _, c := range cs {
		result = append(result, newStreamFromC(c))
	}
	return result
}

func (f *FormatContext) Stream(idx int) *Stream {
	if idx < 0 || idx >= f.NbStreams() {
		return nil
	}
	return newStreamFromC(unsafe.Slice(f.c.streams, f.NbStreams())[idx])
}

// BitRate is 0 once the context is freed.
func (f *FormatContext) BitRate() int64 {
	if f == nil || f.c == nil {
		return 0
	}
	return int64(f.c.bit_rate)
}

// Duration is in AV_TIME_BASE units; NoPTSValue once the context is freed.
func (f *FormatContext) Duration() int64 {
	if f == nil || f.c == nil {
		return NoPTSValue
	}
	return int64(f.c.duration)
}

// StartTime is in AV_TIME_BASE units; NoPTSValue once the context is freed.
func (f *FormatContext) StartTime() int64 {
	if f == nil || f.c == nil {
		return NoPTSValue
	}
	return int64(f.c.start_time)
}

func (f *FormatContext) OutputFormat() *OutputFormat {
	if f.c.oformat == nil {
		return nil
	}
	return &OutputFormat{c: f.c.oformat}
}

// NewStream adds a stream to an output context; codec may be nil.
func (f *FormatContext) NewStream(codec *Codec) *Stream {
	var cc *C.AVCodec
	if codec != nil {
		cc = codec.c
	}
	return newStreamFromC(C.avformat_new_stream(f.c, cc))
}

// SetIOContext attaches io as the context's pb. The FormatContext does not
// take ownership of io.
func (f *FormatContext) SetIOContext(io *IOContext) {
	f.ioContext = io
	if io == nil {
		f.c.pb = nil
		return
	}
	f.c.pb = io.c
}

func (f *FormatContext) IOContext() *IOContext {
	return f.ioContext
}

func (f *FormatContext) WriteHeader(dict *Dictionary) error {
	return newError(C.avformat_write_header(f.c, dict.pointer()))
}

func (f *FormatContext) WriteInterleavedFrame(p *Packet) error {
	return newError(C.av_interleaved_write_frame(f.c, p.c))
}

func (f *FormatContext) WriteTrailer() error {
	return newError(C.av_write_trailer(f.c))
}

func (f *FormatContext) CloseInput() {
	if f == nil || f.c == nil || !f.isInput {
		return
	}
	c := f.c
	C.avformat_close_input(&c)
	f.c = nil
}

// Free releases the context. An attached IOContext is left open.
func (f *FormatContext) Free() {
	if f == nil || f.c == nil {
		return
	}
	if f.isInput {
		f.CloseInput()
		return
	}
	f.c.pb = nil
	C.avformat_free_context(f.c)
	f.c = nil
}
