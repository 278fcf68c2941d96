package avffi

// #include <libavformat/avformat.h>
import "C"

// Stream wraps an AVStream owned by its FormatContext.
type Stream struct {
	c *C.AVStream
}

func newStreamFromC(c *C.AVStream) *Stream {
	if c == nil {
		return nil
	}
	return &Stream{c: c}
}

func (s *Stream) Index() int {
	return int(s.c.index)
}

func (s *Stream) TimeBase() Rational {
	return Rational{c: s.c.time_base}
}

func (s *Stream) SetTimeBase(r Rational) {
	s.c.time_base = r.c
}

func (s *Stream) CodecParameters() *CodecParameters {
	return &CodecParameters{c: s.c.codecpar}
}

func (s *Stream) Duration() int64 {
	return int64(s.c.duration)
}

func (s *Stream) StartTime() int64 {
	return int64(s.c.start_time)
}
