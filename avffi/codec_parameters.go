package avffi

/*
#include <string.h>
#include <libavcodec/avcodec.h>
#include <libavutil/mem.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/xaionaro-go/ffav/media"
)

const (
	ProfileUnknown = int(C.FF_PROFILE_UNKNOWN)
	LevelUnknown   = int(C.FF_LEVEL_UNKNOWN)
)

// CodecParameters wraps AVCodecParameters. Parameters obtained from a
// stream or a bitstream filter are borrowed and Free does nothing on them.
type CodecParameters struct {
	c     *C.AVCodecParameters
	owned bool
}

func AllocCodecParameters() *CodecParameters {
	c := C.avcodec_parameters_alloc()
	if c == nil {
		return nil
	}
	return &CodecParameters{c: c, owned: true}
}

func (p *CodecParameters) Free() {
	if p == nil || p.c == nil || !p.owned {
		return
	}
	c := p.c
	C.avcodec_parameters_free(&c)
	p.c = nil
}

func (p *CodecParameters) MediaType() MediaType {
	return MediaType(p.c.codec_type)
}

func (p *CodecParameters) SetMediaType(t MediaType) {
	p.c.codec_type = C.enum_AVMediaType(t)
}

func (p *CodecParameters) CodecID() CodecID {
	return CodecID(p.c.codec_id)
}

func (p *CodecParameters) SetCodecID(id CodecID) {
	p.c.codec_id = C.enum_AVCodecID(id)
}

func (p *CodecParameters) CodecTag() media.CodecTag {
	return media.CodecTag(p.c.codec_tag)
}

func (p *CodecParameters) SetCodecTag(tag media.CodecTag) {
	p.c.codec_tag = C.uint32_t(tag)
}

func (p *CodecParameters) BitRate() int64 {
	return int64(p.c.bit_rate)
}

func (p *CodecParameters) SetBitRate(v int64) {
	p.c.bit_rate = C.int64_t(v)
}

func (p *CodecParameters) Width() int {
	return int(p.c.width)
}

func (p *CodecParameters) SetWidth(v int) {
	p.c.width = C.int(v)
}

func (p *CodecParameters) Height() int {
	return int(p.c.height)
}

func (p *CodecParameters) SetHeight(v int) {
	p.c.height = C.int(v)
}

func (p *CodecParameters) FieldOrder() FieldOrder {
	return FieldOrder(p.c.field_order)
}

func (p *CodecParameters) SetFieldOrder(v FieldOrder) {
	p.c.field_order = C.enum_AVFieldOrder(v)
}

func (p *CodecParameters) SampleAspectRatio() Rational {
	return Rational{c: p.c.sample_aspect_ratio}
}

func (p *CodecParameters) SetSampleAspectRatio(r Rational) {
	p.c.sample_aspect_ratio = r.c
}

func (p *CodecParameters) Profile() int {
	return int(p.c.profile)
}

func (p *CodecParameters) SetProfile(v int) {
	p.c.profile = C.int(v)
}

func (p *CodecParameters) Level() int {
	return int(p.c.level)
}

func (p *CodecParameters) SetLevel(v int) {
	p.c.level = C.int(v)
}

// Format is the pixel format for video and the sample format for audio.
func (p *CodecParameters) Format() int {
	return int(p.c.format)
}

func (p *CodecParameters) SetFormat(v int) {
	p.c.format = C.int(v)
}

func (p *CodecParameters) PixelFormat() PixelFormat {
	return PixelFormat(p.c.format)
}

func (p *CodecParameters) SampleFormat() SampleFormat {
	return SampleFormat(p.c.format)
}

func (p *CodecParameters) SampleRate() int {
	return int(p.c.sample_rate)
}

func (p *CodecParameters) SetSampleRate(v int) {
	p.c.sample_rate = C.int(v)
}

func (p *CodecParameters) Channels() int {
	return int(p.c.channels)
}

func (p *CodecParameters) SetChannels(v int) {
	p.c.channels = C.int(v)
}

func (p *CodecParameters) ExtraData() []byte {
	if p.c.extradata == nil || p.c.extradata_size <= 0 {
		return nil
	}
	return C.GoBytes(unsafe.Pointer(p.c.extradata), p.c.extradata_size)
}

// SetExtraData replaces the extradata with a padded copy of b.
func (p *CodecParameters) SetExtraData(b []byte) error {
	C.av_freep(unsafe.Pointer(&p.c.extradata))
	p.c.extradata_size = 0
	if len(b) == 0 {
		return nil
	}
	buf := C.av_mallocz(C.size_t(len(b) + C.AV_INPUT_BUFFER_PADDING_SIZE))
	if buf == nil {
		return fmt.Errorf("unable to allocate %d bytes of extradata: %w", len(b), ErrENOMEM)
	}
	C.memcpy(buf, unsafe.Pointer(&b[0]), C.size_t(len(b)))
	p.c.extradata = (*C.uint8_t)(buf)
	p.c.extradata_size = C.int(len(b))
	return nil
}

// Copy copies p into dst.
func (p *CodecParameters) Copy(dst *CodecParameters) error {
	return newError(C.avcodec_parameters_copy(dst.c, p.c))
}

func (p *CodecParameters) String() string {
	return fmt.Sprintf(
		"%s %s tag:%s %dx%d br:%d sr:%d ch:%d",
		p.MediaType(), p.CodecID(), p.CodecTag(),
		p.Width(), p.Height(), p.BitRate(), p.SampleRate(), p.Channels(),
	)
}
