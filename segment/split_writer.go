package segment

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/metrics"
	"github.com/xaionaro-go/ffav/types"
	"github.com/xaionaro-go/ffav/urltools"
	"github.com/xaionaro-go/xcontext"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

var ErrClosed = errors.New("the writer is closed")

// SplitWriter writes into a sequence of segments, each produced by its own
// Writer. The Writer of a segment is opened lazily on the first packet that
// belongs to it.
type SplitWriter struct {
	locker xsync.Mutex

	factory       WriterFactory
	outputPath    string
	descs         []media.Desc
	streamDescs   []media.Desc
	format        string
	formatOptions types.DictionaryItems
	config        Config

	currentIndex    int
	writer          Writer
	startTime       time.Time
	needKeyFrame    bool
	waitForKeyFrame bool
	closed          bool

	segmentsOpened atomic.Uint64
}

var _ Writer = (*SplitWriter)(nil)

func NewSplitWriter(
	ctx context.Context,
	factory WriterFactory,
	outputPath string,
	descs []media.Desc,
	format string,
	formatOptions types.DictionaryItems,
	opts ...Option,
) (*SplitWriter, error) {
	if outputPath == "" {
		return nil, ErrOutputPathRequired
	}
	if factory == nil {
		return nil, fmt.Errorf("no writer factory given")
	}

	cfg := Options(opts).Config()
	if cfg.FormatLocation == nil {
		cfg.FormatLocation = DefaultFormatLocation(format)
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}

	w := &SplitWriter{
		factory:       factory,
		outputPath:    outputPath,
		descs:         descs,
		streamDescs:   media.StreamDescs(descs),
		format:        format,
		formatOptions: formatOptions,
		config:        cfg,
		currentIndex:  cfg.StartIndex,
		startTime:     cfg.Clock.Now(),
	}
	for _, d := range descs {
		if d == nil {
			continue
		}
		if d.CodecID().HasGOP() {
			w.needKeyFrame = true
		}
	}
	logger.Debugf(ctx, "NewSplitWriter(%s): %#+v", outputPath, cfg)
	return w, nil
}

func (w *SplitWriter) Config() Config {
	return w.config
}

// CurrentIndex is the index of the segment being written (or about to be
// opened).
func (w *SplitWriter) CurrentIndex() int {
	return xsync.DoR1(xsync.WithNoLogging(context.Background(), true), &w.locker, func() int {
		return w.currentIndex
	})
}

// SegmentsOpened is the number of segment writers opened so far.
func (w *SplitWriter) SegmentsOpened() uint64 {
	return w.segmentsOpened.Load()
}

// Location returns the full path of the segment with the given index.
func (w *SplitWriter) Location(index int) string {
	return filepath.Join(w.outputPath, w.config.FormatLocation(index))
}

func (w *SplitWriter) WriteHeader(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		if w.writer == nil {
			return ErrWriterNotReady
		}
		return w.writer.WriteHeader(ctx)
	})
}

func (w *SplitWriter) WriteBytes(
	ctx context.Context,
	data []byte,
	pts int64,
	duration int64,
	isKeyFrame bool,
	streamIndex int,
) error {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &w.locker, func() error {
		return w.writeBytesLocked(ctx, data, pts, duration, isKeyFrame, streamIndex)
	})
}

func (w *SplitWriter) writeBytesLocked(
	ctx context.Context,
	data []byte,
	pts int64,
	duration int64,
	isKeyFrame bool,
	streamIndex int,
) error {
	if w.closed {
		return ErrClosed
	}
	if streamIndex < 0 || streamIndex >= len(w.streamDescs) {
		return ErrStreamIndexOutOfRange{StreamIndex: streamIndex, StreamCount: len(w.streamDescs)}
	}

	if split, reason := w.canSplitNowLocked(isKeyFrame, streamIndex); split {
		w.config.Metrics.ObserveSplit(reason)
		logger.Debugf(ctx, "splitting segment #%d: %s", w.currentIndex, reason)
		if err := w.splitNowLocked(ctx); err != nil {
			logger.Errorf(ctx, "unable to finish segment #%d: %v", w.currentIndex-1, err)
		}
	}

	if w.writer == nil {
		if err := w.openWriterLocked(ctx); err != nil {
			return err
		}
	}

	return w.writer.WriteBytes(ctx, data, pts, duration, isKeyFrame, streamIndex)
}

func (w *SplitWriter) openWriterLocked(ctx context.Context) error {
	location := w.Location(w.currentIndex)
	if urltools.IsFile(location) {
		if err := os.MkdirAll(filepath.Dir(location), 0o755); err != nil {
			return fmt.Errorf("unable to create the directory for '%s': %w", location, err)
		}
	}
	writer, err := w.factory(ctx, location, w.descs, w.format, w.formatOptions)
	if err != nil {
		return fmt.Errorf("unable to open segment #%d at '%s': %w", w.currentIndex, location, err)
	}
	w.writer = writer
	w.startTime = w.config.Clock.Now()
	w.segmentsOpened.Inc()
	w.config.Metrics.ObserveSegmentOpened()
	logger.Debugf(ctx, "opened segment #%d at '%s'", w.currentIndex, location)
	return nil
}

func (w *SplitWriter) WriteTrailer(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		if w.writer == nil {
			return ErrWriterNotReady
		}
		return w.writer.WriteTrailer(ctx)
	})
}

// Close finishes the current segment even if ctx is already canceled.
func (w *SplitWriter) Close(ctx context.Context) error {
	ctx = xcontext.DetachDone(ctx)
	return xsync.DoR1(ctx, &w.locker, func() error {
		w.closed = true
		if w.writer == nil {
			return nil
		}
		return w.writer.Close(ctx)
	})
}

func (w *SplitWriter) Flush(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		if w.writer == nil {
			return nil
		}
		return w.writer.Flush(ctx)
	})
}

// Size is the size of the current segment.
func (w *SplitWriter) Size() uint64 {
	return xsync.DoR1(xsync.WithNoLogging(context.Background(), true), &w.locker, func() uint64 {
		if w.writer == nil {
			return 0
		}
		return w.writer.Size()
	})
}

func (w *SplitWriter) overhead(limit uint64) uint64 {
	return limit * uint64(w.config.MaxOverhead*100) / 100
}

func (w *SplitWriter) isBytesOverrun() bool {
	return w.writer != nil && w.config.MaxSizeBytes > 0 && w.writer.Size() >= w.config.MaxSizeBytes
}

func (w *SplitWriter) isBytesOverflow() bool {
	if w.writer == nil || w.config.MaxSizeBytes == 0 {
		return false
	}
	return w.writer.Size() >= w.config.MaxSizeBytes+w.overhead(w.config.MaxSizeBytes)
}

func (w *SplitWriter) elapsed() time.Duration {
	return w.config.Clock.Now().Sub(w.startTime)
}

func (w *SplitWriter) isTimeOverrun() bool {
	return w.config.MaxSizeTime > 0 && w.elapsed() >= w.config.MaxSizeTime
}

func (w *SplitWriter) isTimeOverflow() bool {
	if w.config.MaxSizeTime <= 0 {
		return false
	}
	limit := uint64(w.config.MaxSizeTime)
	return w.elapsed() >= time.Duration(limit+w.overhead(limit))
}

func (w *SplitWriter) streamHasGOP(streamIndex int) bool {
	if streamIndex < 0 || streamIndex >= len(w.streamDescs) {
		return false
	}
	return w.streamDescs[streamIndex].CodecID().HasGOP()
}

// CanSplitNow reports whether the packet described by the arguments must
// start a new segment. It advances the key frame wait state, so it is meant
// to be called once per packet, right before writing it.
func (w *SplitWriter) CanSplitNow(ctx context.Context, isKeyFrame bool, streamIndex int) bool {
	return xsync.DoR1(xsync.WithNoLogging(ctx, true), &w.locker, func() bool {
		split, _ := w.canSplitNowLocked(isKeyFrame, streamIndex)
		return split
	})
}

func (w *SplitWriter) canSplitNowLocked(isKeyFrame bool, streamIndex int) (bool, metrics.SplitReason) {
	if w.writer == nil {
		return false, ""
	}

	var (
		splitNow bool
		reason   metrics.SplitReason
	)
	if w.waitForKeyFrame {
		splitNow = isKeyFrame && w.streamHasGOP(streamIndex)
		reason = metrics.SplitReasonKeyFrame
		w.waitForKeyFrame = false
	} else {
		overrun := w.isBytesOverrun() || w.isTimeOverrun()
		if overrun && w.config.SplitAtKeyFrame && w.needKeyFrame {
			w.waitForKeyFrame = true
		} else {
			splitNow = overrun
			reason = metrics.SplitReasonOverrun
		}
	}

	if w.isBytesOverflow() || w.isTimeOverflow() {
		return true, metrics.SplitReasonOverflow
	}
	return splitNow, reason
}

// SplitNow closes the current segment and moves to the next index; the
// next segment is opened by the following write.
func (w *SplitWriter) SplitNow(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		return w.splitNowLocked(ctx)
	})
}

func (w *SplitWriter) splitNowLocked(ctx context.Context) error {
	if w.config.BeforeSplit != nil {
		w.config.BeforeSplit(ctx, w.currentIndex)
	}

	var err error
	if w.writer != nil {
		logger.Debugf(ctx, "closing segment #%d (%s, %v)", w.currentIndex, humanize.Bytes(w.writer.Size()), w.elapsed())
		err = w.writer.Close(ctx)
		w.writer = nil
	}
	w.waitForKeyFrame = false
	w.cleanFilesLocked(ctx)
	w.currentIndex++

	if w.config.AfterSplit != nil {
		w.config.AfterSplit(ctx, w.currentIndex)
	}
	return err
}

// cleanFilesLocked removes the oldest segment so that at most MaxFiles
// remain once the next one is created.
func (w *SplitWriter) cleanFilesLocked(ctx context.Context) {
	maxFiles := int(w.config.MaxFiles)
	if maxFiles == 0 {
		return
	}
	if w.currentIndex-w.config.StartIndex < maxFiles-1 {
		return
	}
	index := w.currentIndex - (maxFiles - 1)
	if index < w.config.StartIndex {
		return
	}
	location := w.Location(index)
	if err := os.Remove(location); err != nil {
		logger.Errorf(ctx, "unable to remove the old segment '%s': %v", location, err)
		return
	}
	w.config.Metrics.ObserveSegmentRemoved()
	logger.Debugf(ctx, "removed the old segment '%s'", location)
}
