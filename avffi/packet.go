package avffi

/*
#include <string.h>
#include <libavcodec/avcodec.h>
*/
import "C"

import (
	"fmt"
	"unsafe"
)

type PacketFlags int

const (
	PacketFlagKey     = PacketFlags(C.AV_PKT_FLAG_KEY)
	PacketFlagCorrupt = PacketFlags(C.AV_PKT_FLAG_CORRUPT)
	PacketFlagDiscard = PacketFlags(C.AV_PKT_FLAG_DISCARD)
)

func (f PacketFlags) Has(flag PacketFlags) bool {
	return f&flag == flag
}

// Packet wraps AVPacket.
type Packet struct {
	c *C.AVPacket
}

func AllocPacket() *Packet {
	c := C.av_packet_alloc()
	if c == nil {
		return nil
	}
	return &Packet{c: c}
}

func (p *Packet) Free() {
	if p == nil || p.c == nil {
		return
	}
	c := p.c
	C.av_packet_free(&c)
	p.c = nil
}

func (p *Packet) Unref() {
	C.av_packet_unref(p.c)
}

func (p *Packet) Ref(src *Packet) error {
	return newError(C.av_packet_ref(p.c, src.c))
}

func (p *Packet) Clone() *Packet {
	c := C.av_packet_clone(p.c)
	if c == nil {
		return nil
	}
	return &Packet{c: c}
}

func (p *Packet) Pts() int64 {
	return int64(p.c.pts)
}

func (p *Packet) SetPts(v int64) {
	p.c.pts = C.int64_t(v)
}

func (p *Packet) Dts() int64 {
	return int64(p.c.dts)
}

func (p *Packet) SetDts(v int64) {
	p.c.dts = C.int64_t(v)
}

func (p *Packet) Duration() int64 {
	return int64(p.c.duration)
}

func (p *Packet) SetDuration(v int64) {
	p.c.duration = C.int64_t(v)
}

func (p *Packet) Pos() int64 {
	return int64(p.c.pos)
}

func (p *Packet) SetPos(v int64) {
	p.c.pos = C.int64_t(v)
}

func (p *Packet) StreamIndex() int {
	return int(p.c.stream_index)
}

func (p *Packet) SetStreamIndex(v int) {
	p.c.stream_index = C.int(v)
}

func (p *Packet) Flags() PacketFlags {
	return PacketFlags(p.c.flags)
}

func (p *Packet) SetFlags(f PacketFlags) {
	p.c.flags = C.int(f)
}

func (p *Packet) IsKeyFrame() bool {
	return p.Flags().Has(PacketFlagKey)
}

func (p *Packet) SetKeyFrame(isKeyFrame bool) {
	if isKeyFrame {
		p.SetFlags(p.Flags() | PacketFlagKey)
	} else {
		p.SetFlags(p.Flags() &^ PacketFlagKey)
	}
}

func (p *Packet) Size() int {
	return int(p.c.size)
}

// Data returns a copy of the payload.
func (p *Packet) Data() []byte {
	if p.c.data == nil || p.c.size <= 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p.c.data), p.c.size)
}

// SetData drops the current payload and copies b into a new FFmpeg-owned
// buffer. It resets every other field of the packet to its default.
func (p *Packet) SetData(b []byte) error {
	C.av_packet_unref(p.c)
	if err := newError(C.av_new_packet(p.c, C.int(len(b)))); err != nil {
		return fmt.Errorf("av_new_packet(%d): %w", len(b), err)
	}
	if len(b) > 0 {
		C.memcpy(unsafe.Pointer(p.c.data), unsafe.Pointer(&b[0]), C.size_t(len(b)))
	}
	return nil
}

// RescaleTS converts the timestamps and duration from src to dst.
func (p *Packet) RescaleTS(src, dst Rational) {
	C.av_packet_rescale_ts(p.c, src.c, dst.c)
}
