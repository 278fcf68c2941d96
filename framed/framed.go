// Package framed reads and writes elementary stream dumps stored as a
// sequence of [4-byte big-endian length][frame] records.
package framed

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

const DefaultMaxFrameSize = 64 << 20

type ErrFrameTooLarge struct {
	Size    uint32
	MaxSize uint32
}

func (e ErrFrameTooLarge) Error() string {
	return fmt.Sprintf("frame of %d bytes exceeds the limit of %d bytes", e.Size, e.MaxSize)
}

type Reader struct {
	r            *bufio.Reader
	closer       io.Closer
	MaxFrameSize uint32
	frameCount   uint64
}

func NewReader(r io.Reader) *Reader {
	return &Reader{
		r:            bufio.NewReader(r),
		MaxFrameSize: DefaultMaxFrameSize,
	}
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := NewReader(f)
	r.closer = f
	return r, nil
}

// Next returns the next frame. A clean end of input and a truncated length
// prefix both yield io.EOF; a truncated frame body yields
// io.ErrUnexpectedEOF.
func (r *Reader) Next() ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r.r, hdr[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, io.EOF
		}
		return nil, err
	}

	size := binary.BigEndian.Uint32(hdr[:])
	if r.MaxFrameSize > 0 && size > r.MaxFrameSize {
		return nil, ErrFrameTooLarge{Size: size, MaxSize: r.MaxFrameSize}
	}

	frame := make([]byte, size)
	if _, err := io.ReadFull(r.r, frame); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("unable to read frame #%d of %d bytes: %w", r.frameCount, size, err)
	}
	r.frameCount++
	return frame, nil
}

// FrameCount is the number of frames returned so far.
func (r *Reader) FrameCount() uint64 {
	return r.frameCount
}

func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	err := r.closer.Close()
	r.closer = nil
	return err
}

type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteFrame(frame []byte) error {
	var hdr [4]byte
	binary.BigEndian.PutUint32(hdr[:], uint32(len(frame)))
	if _, err := w.w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.w.Write(frame)
	return err
}
