// Package segment implements SplitWriter, a Writer cutting its output into
// a sequence of files by size, by time or both.
package segment

import (
	"context"

	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/types"
)

// Writer muxes raw elementary-stream packets into a container.
type Writer interface {
	WriteHeader(ctx context.Context) error

	// WriteBytes writes one packet. pts and duration are in the time base
	// of the stream's description; streamIndex counts only descriptions
	// that produce a stream (see media.StreamDescs).
	WriteBytes(
		ctx context.Context,
		data []byte,
		pts int64,
		duration int64,
		isKeyFrame bool,
		streamIndex int,
	) error

	WriteTrailer(ctx context.Context) error

	// Close finishes the output; calling it again is a no-op.
	Close(ctx context.Context) error

	Flush(ctx context.Context) error

	// Size is the number of bytes written to the output so far.
	Size() uint64
}

// WriterFactory opens the Writer of one segment.
type WriterFactory func(
	ctx context.Context,
	location string,
	descs []media.Desc,
	format string,
	formatOptions types.DictionaryItems,
) (Writer, error)
