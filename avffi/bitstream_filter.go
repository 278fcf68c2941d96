package avffi

/*
#include <stdlib.h>
#include <libavcodec/avcodec.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

// BitStreamFilter wraps a registered AVBitStreamFilter.
type BitStreamFilter struct {
	c *C.AVBitStreamFilter
}

// FindBitStreamFilterByName returns nil if no filter has the name.
func FindBitStreamFilterByName(name string) *BitStreamFilter {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	c := C.av_bsf_get_by_name(cname)
	if c == nil {
		return nil
	}
	return &BitStreamFilter{c: c}
}

func (f *BitStreamFilter) Name() string {
	return C.GoString(f.c.name)
}

// BitStreamFilterContext wraps AVBSFContext.
type BitStreamFilterContext struct {
	c      *C.AVBSFContext
	filter *BitStreamFilter
}

func AllocBitStreamFilterContext(f *BitStreamFilter) (*BitStreamFilterContext, error) {
	if f == nil {
		return nil, fmt.Errorf("no filter given: %w", ErrBSFNotFound)
	}
	var c *C.AVBSFContext
	if err := newError(C.av_bsf_alloc(f.c, &c)); err != nil {
		return nil, err
	}
	return &BitStreamFilterContext{c: c, filter: f}, nil
}

func (ctx *BitStreamFilterContext) Filter() *BitStreamFilter {
	return ctx.filter
}

func (ctx *BitStreamFilterContext) InputCodecParameters() *CodecParameters {
	return &CodecParameters{c: ctx.c.par_in}
}

func (ctx *BitStreamFilterContext) OutputCodecParameters() *CodecParameters {
	return &CodecParameters{c: ctx.c.par_out}
}

func (ctx *BitStreamFilterContext) SetInputTimeBase(r Rational) {
	ctx.c.time_base_in = r.c
}

func (ctx *BitStreamFilterContext) OutputTimeBase() Rational {
	return Rational{c: ctx.c.time_base_out}
}

func (ctx *BitStreamFilterContext) Initialize() error {
	return newError(C.av_bsf_init(ctx.c))
}

// SendPacket feeds p to the filter; a nil p signals end of stream.
func (ctx *BitStreamFilterContext) SendPacket(p *Packet) error {
	var cp *C.AVPacket
	if p != nil {
		cp = p.c
	}
	return newError(C.av_bsf_send_packet(ctx.c, cp))
}

// ReceivePacket returns ErrEAGAIN when more input is needed and ErrEOF once
// the flushed filter is drained.
func (ctx *BitStreamFilterContext) ReceivePacket(p *Packet) error {
	return newError(C.av_bsf_receive_packet(ctx.c, p.c))
}

func (ctx *BitStreamFilterContext) Free() {
	if ctx == nil || ctx.c == nil {
		return
	}
	c := ctx.c
	C.av_bsf_free(&c)
	ctx.c = nil
}
