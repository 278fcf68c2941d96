// Package muxer writes raw H.264/HEVC packets into containers through
// libavformat.
package muxer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/xaionaro-go/ffav/avffi"
	"github.com/xaionaro-go/ffav/extradata"
	"github.com/xaionaro-go/ffav/internal"
	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/metrics"
	"github.com/xaionaro-go/ffav/segment"
	"github.com/xaionaro-go/ffav/types"
	"github.com/xaionaro-go/ffav/urltools"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

type ErrStreamIndexOutOfRange = segment.ErrStreamIndexOutOfRange

var ErrClosed = segment.ErrClosed

type outputStream struct {
	*avffi.Stream
	CodecID    media.CodecID
	InTimeBase avffi.Rational

	// extraDataChecked is set once the first packet of the stream was seen.
	extraDataChecked bool
}

// maxPendingPackets bounds how many packets a global header output holds
// back while waiting for the first packet of every stream.
const maxPendingPackets = 128

type pendingPacket struct {
	data        []byte
	pts         int64
	duration    int64
	isKeyFrame  bool
	streamIndex int
}

// SimpleWriter muxes into a single output. The container header is written
// on the first WriteBytes.
type SimpleWriter struct {
	locker xsync.Mutex

	Path          string
	Format        string
	FormatOptions types.DictionaryItems

	formatContext  *avffi.FormatContext
	ioContext      *avffi.IOContext
	streams        []outputStream
	pending        []pendingPacket
	headerWritten  bool
	trailerWritten bool
	closed         bool
	metrics        *metrics.Metrics

	packetsWritten atomic.Uint64
	bytesWritten   atomic.Uint64
}

var _ segment.Writer = (*SimpleWriter)(nil)

type WriterConfig struct {
	Metrics *metrics.Metrics
}

type WriterOption interface {
	apply(*WriterConfig)
}

type WriterOptions []WriterOption

func (opts WriterOptions) config() WriterConfig {
	cfg := WriterConfig{}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return cfg
}

type WriterOptionMetrics struct {
	*metrics.Metrics
}

func (opt WriterOptionMetrics) apply(cfg *WriterConfig) {
	cfg.Metrics = opt.Metrics
}

// NewSimpleWriter opens path for writing. An empty format is guessed from
// the URL scheme or the file extension, falling back to libavformat's own
// guess. Only H.264 and HEVC video descriptions get a stream;
// stream indexes passed to WriteBytes count those only.
func NewSimpleWriter(
	ctx context.Context,
	path string,
	descs []media.Desc,
	format string,
	formatOptions types.DictionaryItems,
	opts ...WriterOption,
) (_ret *SimpleWriter, _err error) {
	logger.Debugf(ctx, "NewSimpleWriter(ctx, '%s', %v, '%s', %s)", path, descs, format, formatOptions)
	defer func() {
		logger.Debugf(ctx, "/NewSimpleWriter(ctx, '%s', %v, '%s', %s): %p %v", path, descs, format, formatOptions, _ret, _err)
	}()
	if path == "" {
		return nil, fmt.Errorf("the provided path is empty")
	}

	if format == "" {
		format = urltools.FormatFromURL(path)
	}
	cfg := WriterOptions(opts).config()
	w := &SimpleWriter{
		Path:          path,
		Format:        format,
		FormatOptions: formatOptions,
		metrics:       cfg.Metrics,
	}
	defer func() {
		if _err != nil {
			w.release(ctx)
		}
	}()

	formatContext, err := avffi.AllocOutputFormatContext(format, path)
	if err != nil {
		return nil, fmt.Errorf("allocating output format context failed for '%s' (format: '%s'): %w", path, format, err)
	}
	w.formatContext = formatContext
	internal.SetFinalizerFree(ctx, w.formatContext)
	logger.Debugf(ctx, "output format name: '%s'", w.formatContext.OutputFormat().Name())

	for _, desc := range media.StreamDescs(descs) {
		if err := w.addStream(ctx, desc); err != nil {
			return nil, fmt.Errorf("unable to add a stream for %s: %w", desc, err)
		}
	}

	if w.formatContext.OutputFormat().Flags().Has(avffi.FormatFlagNoFile) {
		return w, nil
	}
	logger.Tracef(ctx, "destination '%s' is a file", path)

	ioContext, err := avffi.OpenIOContext(path, avffi.IOContextFlagWrite, nil)
	if err != nil {
		return nil, fmt.Errorf("unable to open IO context (path: '%s'): %w", path, err)
	}
	w.ioContext = ioContext
	internal.SetFinalizerFree(ctx, w.ioContext)
	w.formatContext.SetIOContext(ioContext)
	return w, nil
}

func (w *SimpleWriter) addStream(
	ctx context.Context,
	desc media.Desc,
) error {
	videoDesc, ok := desc.AsVideo()
	if !ok {
		return fmt.Errorf("not a video description")
	}
	codecID := avffi.CodecIDFromMedia(videoDesc.Codec)

	codec, err := avffi.FindEncoder(codecID)
	if err != nil {
		logger.Debugf(ctx, "creating the stream without a codec: %v", err)
		codec = nil
	}
	stream := w.formatContext.NewStream(codec)
	if stream == nil {
		return fmt.Errorf("unable to create a new stream for codec '%s'", codecID)
	}

	par := stream.CodecParameters()
	par.SetMediaType(avffi.MediaTypeVideo)
	par.SetCodecID(codecID)
	par.SetBitRate(videoDesc.BitRate)
	par.SetWidth(videoDesc.Width)
	par.SetHeight(videoDesc.Height)
	par.SetFieldOrder(avffi.FieldOrderUnknown)
	par.SetSampleAspectRatio(avffi.NewRational(0, 1))
	par.SetProfile(avffi.ProfileUnknown)
	par.SetLevel(avffi.LevelUnknown)

	w.streams = append(w.streams, outputStream{
		Stream:     stream,
		CodecID:    videoDesc.Codec,
		InTimeBase: avffi.RationalFromTypes(videoDesc.TimeBase),
	})
	logger.Debugf(ctx, "added output stream #%d: %s", stream.Index(), par)
	return nil
}

func (w *SimpleWriter) String() string {
	return fmt.Sprintf("SimpleWriter(%s)", w.Path)
}

// StreamCount is the number of streams the output has.
func (w *SimpleWriter) StreamCount() int {
	return len(w.streams)
}

func (w *SimpleWriter) PacketsWritten() uint64 {
	return w.packetsWritten.Load()
}

func (w *SimpleWriter) BytesWritten() uint64 {
	return w.bytesWritten.Load()
}

// WriteHeader does nothing: the header is written by the first WriteBytes,
// once all the streams are known. Outputs with a global header (mp4, flv)
// hold packets back until every stream got its first packet, so that each
// stream's extradata can be taken from it.
func (w *SimpleWriter) WriteHeader(ctx context.Context) error {
	return nil
}

func (w *SimpleWriter) WriteBytes(
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

func (w *SimpleWriter) writeBytesLocked(
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
	if streamIndex < 0 || streamIndex >= len(w.streams) {
		return ErrStreamIndexOutOfRange{StreamIndex: streamIndex, StreamCount: len(w.streams)}
	}

	if !w.headerWritten {
		if stream := &w.streams[streamIndex]; !stream.extraDataChecked {
			w.setExtraDataLocked(ctx, *stream, data)
			stream.extraDataChecked = true
		}
		if w.waitsForExtraDataLocked() && len(w.pending) < maxPendingPackets {
			w.pending = append(w.pending, pendingPacket{
				data:        bytes.Clone(data),
				pts:         pts,
				duration:    duration,
				isKeyFrame:  isKeyFrame,
				streamIndex: streamIndex,
			})
			logger.Tracef(ctx, "holding back packet of stream #%d until every stream has extradata (%d pending)", streamIndex, len(w.pending))
			return nil
		}
		if err := w.writeHeaderAndPendingLocked(ctx); err != nil {
			return err
		}
	}
	return w.writePacketLocked(ctx, data, pts, duration, isKeyFrame, streamIndex)
}

// waitsForExtraDataLocked is true while a global header output still has a
// stream whose first packet was not seen: the container header can only be
// written once each stream got its parameter sets.
func (w *SimpleWriter) waitsForExtraDataLocked() bool {
	if !w.formatContext.OutputFormat().Flags().Has(avffi.FormatFlagGlobalHeader) {
		return false
	}
	for _, stream := range w.streams {
		if !stream.extraDataChecked {
			return true
		}
	}
	return false
}

func (w *SimpleWriter) writeHeaderAndPendingLocked(ctx context.Context) error {
	if err := w.writeHeaderLocked(ctx); err != nil {
		return err
	}
	pending := w.pending
	w.pending = nil
	for _, p := range pending {
		if err := w.writePacketLocked(ctx, p.data, p.pts, p.duration, p.isKeyFrame, p.streamIndex); err != nil {
			return err
		}
	}
	return nil
}

func (w *SimpleWriter) writePacketLocked(
	ctx context.Context,
	data []byte,
	pts int64,
	duration int64,
	isKeyFrame bool,
	streamIndex int,
) error {
	stream := w.streams[streamIndex]
	outTimeBase := stream.TimeBase()

	pkt := avffi.PacketPool.Get()
	defer avffi.PacketPool.Put(pkt)
	if err := pkt.SetData(data); err != nil {
		return fmt.Errorf("unable to fill the packet: %w", err)
	}
	pts = avffi.RescaleQRnd(pts, stream.InTimeBase, outTimeBase, avffi.RoundingNearInf|avffi.RoundingPassMinMax)
	pkt.SetPts(pts)
	pkt.SetDts(pts)
	pkt.SetDuration(avffi.RescaleQ(duration, stream.InTimeBase, outTimeBase))
	pkt.SetPos(-1)
	pkt.SetStreamIndex(streamIndex)
	if isKeyFrame {
		pkt.SetFlags(avffi.PacketFlagKey)
	} else {
		pkt.SetFlags(0)
	}
	logger.Tracef(ctx, "writing packet: stream:%d pts:%d dur:%d key:%t size:%d", streamIndex, pkt.Pts(), pkt.Duration(), isKeyFrame, len(data))

	if err := w.formatContext.WriteInterleavedFrame(pkt); err != nil {
		return fmt.Errorf("unable to write the packet to '%s': %w", w.Path, err)
	}
	w.ioContext.Flush()

	w.packetsWritten.Inc()
	w.bytesWritten.Add(uint64(len(data)))
	w.metrics.ObservePacket(streamIndex, len(data))
	return nil
}

// setExtraDataLocked gives the stream of a global header format (mp4, flv,
// mkv) the parameter sets found in its first access unit; libavformat
// converts them and the Annex B packets into the container's layout.
func (w *SimpleWriter) setExtraDataLocked(
	ctx context.Context,
	stream outputStream,
	accessUnit []byte,
) {
	if !w.formatContext.OutputFormat().Flags().Has(avffi.FormatFlagGlobalHeader) {
		return
	}
	par := stream.CodecParameters()
	if len(par.ExtraData()) > 0 {
		return
	}
	sets := extradata.ParameterSets(stream.CodecID, accessUnit)
	if len(sets) == 0 {
		logger.Debugf(ctx, "no parameter sets in the first packet of stream #%d", stream.Index())
		return
	}
	if err := par.SetExtraData(extradata.ToAnnexB(sets...)); err != nil {
		logger.Warnf(ctx, "unable to set the extradata of stream #%d: %v", stream.Index(), err)
		return
	}
	logger.Debugf(ctx, "stream #%d extradata: %s", stream.Index(), extradata.Raw(par.ExtraData()).Parse(stream.CodecID))
}

func (w *SimpleWriter) writeHeaderLocked(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "writeHeader: %s", w.FormatOptions)
	defer func() { logger.Debugf(ctx, "/writeHeader: %v", _err) }()

	dict, err := avffi.DictionaryFromItems(w.FormatOptions)
	if err != nil {
		return fmt.Errorf("unable to build the format options: %w", err)
	}
	defer dict.Free()

	if err := w.formatContext.WriteHeader(dict); err != nil {
		return fmt.Errorf("unable to write the header to '%s': %w", w.Path, err)
	}
	if unused := dict.Items(); len(unused) > 0 {
		logger.Warnf(ctx, "the muxer did not recognize the options: %s", unused)
	}
	w.headerWritten = true
	return nil
}

// WriteTrailer finishes the container. It does nothing before the header
// is written or once the trailer already is.
func (w *SimpleWriter) WriteTrailer(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		return w.writeTrailerLocked(ctx)
	})
}

func (w *SimpleWriter) writeTrailerLocked(ctx context.Context) (_err error) {
	if !w.headerWritten && len(w.pending) > 0 {
		logger.Debugf(ctx, "writing %d held back packets before the trailer", len(w.pending))
		if err := w.writeHeaderAndPendingLocked(ctx); err != nil {
			return err
		}
	}
	if !w.headerWritten || w.trailerWritten {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			_err = fmt.Errorf("got panic: %v:\n%s\n", r, debug.Stack())
		}
	}()
	logger.Debugf(ctx, "writing the trailer")
	if err := w.formatContext.WriteTrailer(); err != nil {
		return fmt.Errorf("unable to write the trailer to '%s': %w", w.Path, err)
	}
	w.trailerWritten = true
	w.ioContext.Flush()
	return nil
}

// Close writes the trailer if needed, then releases the output. Calling it
// again is a no-op.
func (w *SimpleWriter) Close(ctx context.Context) (_err error) {
	logger.Debugf(ctx, "Close[%s]", w.Path)
	defer func() { logger.Debugf(ctx, "/Close[%s]: %v", w.Path, _err) }()
	return xsync.DoR1(ctx, &w.locker, func() error {
		if w.closed {
			return nil
		}
		w.closed = true

		var result []error
		if err := w.writeTrailerLocked(ctx); err != nil {
			result = append(result, err)
		}
		result = append(result, w.release(ctx))
		return errors.Join(result...)
	})
}

func (w *SimpleWriter) release(ctx context.Context) error {
	var result []error
	if w.ioContext != nil {
		w.ioContext.Flush()
		if err := w.ioContext.Close(); err != nil {
			result = append(result, fmt.Errorf("unable to close the IO context: %w", err))
		}
	}
	if w.formatContext != nil {
		w.formatContext.SetIOContext(nil)
		w.formatContext.Free()
	}
	w.streams = nil
	return errors.Join(result...)
}

func (w *SimpleWriter) Flush(ctx context.Context) error {
	return xsync.DoR1(ctx, &w.locker, func() error {
		w.ioContext.Flush()
		return nil
	})
}

// Size is the number of bytes written to the output file so far; always 0
// for outputs without a file.
func (w *SimpleWriter) Size() uint64 {
	return xsync.DoR1(xsync.WithNoLogging(context.Background(), true), &w.locker, func() uint64 {
		if w.ioContext == nil {
			return 0
		}
		size := w.ioContext.Tell()
		if size < 0 {
			return 0
		}
		return uint64(size)
	})
}

// NewSimpleWriterFactory returns a segment.WriterFactory opening
// SimpleWriters.
func NewSimpleWriterFactory(opts ...WriterOption) segment.WriterFactory {
	return func(
		ctx context.Context,
		location string,
		descs []media.Desc,
		format string,
		formatOptions types.DictionaryItems,
	) (segment.Writer, error) {
		w, err := NewSimpleWriter(ctx, location, descs, format, formatOptions, opts...)
		if err != nil {
			return nil, err
		}
		return w, nil
	}
}
