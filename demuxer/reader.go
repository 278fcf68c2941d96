// Package demuxer reads packets out of media files and network inputs
// through libavformat, converting H.264/HEVC stored in MP4 style into
// Annex B.
package demuxer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/xaionaro-go/ffav/avconv"
	"github.com/xaionaro-go/ffav/avffi"
	"github.com/xaionaro-go/ffav/bitstreamfilter"
	"github.com/xaionaro-go/ffav/extradata"
	"github.com/xaionaro-go/ffav/internal"
	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/types"
	"github.com/xaionaro-go/secret"
	"github.com/xaionaro-go/xsync"
	"go.uber.org/atomic"
)

// Reader demuxes an input. Packets come out of one bitstream filter per
// stream: h264_mp4toannexb or hevc_mp4toannexb for avc1/hev1/hvc1 tagged
// streams and null for the rest.
type Reader struct {
	locker xsync.Mutex

	URL    string
	Config Config

	formatContext *avffi.FormatContext
	filters       []*avffi.BitStreamFilterContext
	outTimeBase   *avffi.Rational
	frameInfos    []media.FrameInfo
	eof           bool
	closed        bool
	iterErr       error

	packetsRead atomic.Uint64
}

// Open opens urlString (a file path or any URL FFmpeg supports) and probes
// its streams.
func Open(
	ctx context.Context,
	urlString string,
	cfg Config,
) (_ret *Reader, _err error) {
	logger.Debugf(ctx, "Open(ctx, '%s', %#+v)", urlString, cfg)
	defer func() { logger.Debugf(ctx, "/Open(ctx, '%s', %#+v): %p %v", urlString, cfg, _ret, _err) }()
	if urlString == "" {
		return nil, fmt.Errorf("the provided URL is empty")
	}

	r := &Reader{
		URL:    urlString,
		Config: cfg,
	}
	if cfg.TimeUnit > 0 {
		tb := avffi.RationalFromTypes(types.TimeBaseFromUnit(cfg.TimeUnit))
		r.outTimeBase = &tb
	}
	defer func() {
		if _err != nil {
			r.release()
		}
	}()

	if err := r.doOpen(ctx, urlString, cfg.AuthKey, cfg.FormatOptions); err != nil {
		return nil, err
	}
	if err := r.initFilters(ctx); err != nil {
		return nil, err
	}
	internal.Assert(ctx, len(r.filters) == len(r.frameInfos), len(r.filters), len(r.frameInfos))
	internal.SetFinalizer(ctx, r, func(r *Reader) {
		logger.Debugf(ctx, "finalizer: releasing %s", r)
		r.release()
	})
	return r, nil
}

func (r *Reader) doOpen(
	ctx context.Context,
	urlString string,
	authKey secret.String,
	options types.DictionaryItems,
) error {
	var formatName string
	dict := avffi.NewDictionary()
	defer dict.Free()
	for _, opt := range options {
		if opt.Key == "f" {
			formatName = opt.Value
			logger.Debugf(ctx, "overriding input format to '%s'", opt.Value)
			continue
		}
		logger.Debugf(ctx, "input.Dictionary['%s'] = '%s'", opt.Key, opt.Value)
		if err := dict.Set(opt.Key, opt.Value); err != nil {
			return fmt.Errorf("unable to set option '%s': %w", opt.Key, err)
		}
	}

	var inputFormat *avffi.InputFormat
	if formatName != "" {
		inputFormat = avffi.FindInputFormat(formatName)
		if inputFormat == nil {
			return fmt.Errorf("unable to find input format by name '%s': %w", formatName, avffi.ErrDemuxerNotFound)
		}
		logger.Debugf(ctx, "using format '%s'", inputFormat.Name())
	}

	urlWithSecret := urlString
	if authKey.Get() != "" {
		urlWithSecret += authKey.Get()
	}
	formatContext, err := avffi.OpenInput(urlWithSecret, inputFormat, dict)
	if err != nil {
		if authKey.Get() != "" {
			return fmt.Errorf("unable to open input by URL '%s<HIDDEN>': %w", urlString, err)
		}
		return fmt.Errorf("unable to open input by URL '%s': %w", urlString, err)
	}
	r.formatContext = formatContext
	internal.SetFinalizerFree(ctx, r.formatContext)
	if unused := dict.Items(); len(unused) > 0 {
		logger.Warnf(ctx, "the demuxer did not recognize the options: %s", unused)
	}

	if err := r.formatContext.FindStreamInfo(); err != nil {
		return fmt.Errorf("unable to get stream info: %w", err)
	}

	for _, stream := range r.formatContext.Streams() {
		par := stream.CodecParameters()
		logger.Debugf(ctx, "input stream #%d: %s, time base %s", stream.Index(), par, stream.TimeBase())
		if extra := par.ExtraData(); len(extra) > 0 {
			logger.Debugf(ctx, "input stream #%d extradata: %s", stream.Index(), extradata.Raw(extra).Parse(par.CodecID().Media()))
		}
		if logger.IsTraceEnabled(ctx) {
			logger.Tracef(ctx, "input stream #%d codec parameters: %s", stream.Index(), spew.Sdump(par))
		}
		r.frameInfos = append(r.frameInfos, media.FrameInfo{
			CodecID:   par.CodecID().Media(),
			CodecTag:  par.CodecTag(),
			MediaType: par.MediaType().Media(),
		})
	}
	return nil
}

func (r *Reader) initFilters(ctx context.Context) error {
	for _, stream := range r.formatContext.Streams() {
		par := stream.CodecParameters()
		name := bitstreamfilter.NameForCodecTag(par.CodecTag())
		filter := avffi.FindBitStreamFilterByName(name.String())
		if filter == nil {
			return fmt.Errorf("unable to find bitstream filter '%s': %w", name, avffi.ErrBSFNotFound)
		}

		bsf, err := avffi.AllocBitStreamFilterContext(filter)
		if err != nil {
			return fmt.Errorf("unable to allocate bitstream filter '%s': %w", name, err)
		}
		r.filters = append(r.filters, bsf)
		internal.SetFinalizerFree(ctx, bsf)

		if err := par.Copy(bsf.InputCodecParameters()); err != nil {
			return fmt.Errorf("unable to copy codec parameters of stream #%d to '%s': %w", stream.Index(), name, err)
		}
		timeBase := stream.TimeBase()
		if r.outTimeBase != nil {
			timeBase = *r.outTimeBase
		}
		bsf.SetInputTimeBase(timeBase)
		if err := bsf.Initialize(); err != nil {
			return fmt.Errorf("unable to initialize bitstream filter '%s' for stream #%d: %w", name, stream.Index(), err)
		}
		logger.Debugf(ctx, "stream #%d: bitstream filter '%s'", stream.Index(), name)
	}
	return nil
}

func (r *Reader) readIntoPacket(
	_ context.Context,
	packet *avffi.Packet,
) error {
	err := r.formatContext.ReadFrame(packet)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, avffi.ErrEOF):
		return io.EOF
	case errors.Is(err, avffi.ErrEIO):
		return io.EOF
	default:
		return fmt.Errorf("unable to read a frame: %w", err)
	}
}

// ReadPacket returns the next packet and the description of its stream,
// or io.EOF once the input and all the filters are drained. The caller
// owns the packet and may return it to avffi.PacketPool.
func (r *Reader) ReadPacket(ctx context.Context) (*avffi.Packet, media.FrameInfo, error) {
	var (
		pkt  *avffi.Packet
		info media.FrameInfo
		err  error
	)
	r.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		pkt, info, err = r.readPacketLocked(ctx)
	})
	return pkt, info, err
}

func (r *Reader) readPacketLocked(ctx context.Context) (*avffi.Packet, media.FrameInfo, error) {
	if r.closed {
		return nil, media.FrameInfo{}, io.EOF
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil, media.FrameInfo{}, err
		}

		if pkt, idx, ok := r.receiveFiltered(ctx); ok {
			r.packetsRead.Inc()
			logger.Tracef(ctx,
				"read a packet (stream:%d, pos:%d, pts:%d, dts:%d, dur:%d, key:%t), dataLen:%d",
				idx, pkt.Pos(), pkt.Pts(), pkt.Dts(), pkt.Duration(), pkt.IsKeyFrame(), pkt.Size(),
			)
			return pkt, r.frameInfos[idx], nil
		}
		if r.eof {
			return nil, media.FrameInfo{}, io.EOF
		}

		pkt := avffi.PacketPool.Get()
		err := r.readIntoPacket(ctx, pkt)
		switch {
		case err == io.EOF:
			avffi.PacketPool.Put(pkt)
			r.eof = true
			r.flushFilters(ctx)
			continue
		case err != nil:
			avffi.PacketPool.Put(pkt)
			return nil, media.FrameInfo{}, err
		}

		idx := pkt.StreamIndex()
		if idx < 0 || idx >= len(r.filters) {
			logger.Debugf(ctx, "skipping a packet of stream #%d which appeared after probing", idx)
			avffi.PacketPool.Put(pkt)
			continue
		}
		if r.outTimeBase != nil {
			r.rescale(pkt, r.formatContext.Stream(idx).TimeBase())
		}
		err = r.filters[idx].SendPacket(pkt)
		avffi.PacketPool.Put(pkt)
		if err != nil {
			return nil, media.FrameInfo{}, fmt.Errorf("unable to send a packet of stream #%d to the bitstream filter: %w", idx, err)
		}
	}
}

func (r *Reader) rescale(pkt *avffi.Packet, inTimeBase avffi.Rational) {
	outTimeBase := *r.outTimeBase
	rounding := avffi.RoundingNearInf | avffi.RoundingPassMinMax
	pkt.SetPts(avffi.RescaleQRnd(pkt.Pts(), inTimeBase, outTimeBase, rounding))
	pkt.SetDts(avffi.RescaleQRnd(pkt.Dts(), inTimeBase, outTimeBase, rounding))
	pkt.SetDuration(avffi.RescaleQ(pkt.Duration(), inTimeBase, outTimeBase))
}

// receiveFiltered returns the first packet any filter has ready.
func (r *Reader) receiveFiltered(ctx context.Context) (*avffi.Packet, int, bool) {
	for idx, bsf := range r.filters {
		pkt := avffi.PacketPool.Get()
		err := bsf.ReceivePacket(pkt)
		if err == nil {
			pkt.SetStreamIndex(idx)
			return pkt, idx, true
		}
		avffi.PacketPool.Put(pkt)
		if !errors.Is(err, avffi.ErrEAGAIN) && !errors.Is(err, avffi.ErrEOF) {
			logger.Debugf(ctx, "bitstream filter of stream #%d: %v", idx, err)
		}
	}
	return nil, 0, false
}

func (r *Reader) flushFilters(ctx context.Context) {
	for idx, bsf := range r.filters {
		if err := bsf.SendPacket(nil); err != nil {
			logger.Debugf(ctx, "unable to flush the bitstream filter of stream #%d: %v", idx, err)
		}
	}
}

// Packets iterates over the remaining packets. Iteration stops at the end
// of input or at the first error; Err returns that error afterwards.
func (r *Reader) Packets(ctx context.Context) iter.Seq2[*avffi.Packet, media.FrameInfo] {
	return func(yield func(*avffi.Packet, media.FrameInfo) bool) {
		r.setIterErr(ctx, nil)
		for {
			pkt, info, err := r.ReadPacket(ctx)
			if err != nil {
				if !errors.Is(err, io.EOF) {
					logger.Errorf(ctx, "unable to read a packet: %v", err)
					r.setIterErr(ctx, err)
				}
				return
			}
			if !yield(pkt, info) {
				return
			}
		}
	}
}

// Err is the error that stopped the last Packets iteration; nil if it ended
// at the end of input or was stopped by the caller.
func (r *Reader) Err() error {
	return xsync.DoR1(xsync.WithNoLogging(context.Background(), true), &r.locker, func() error {
		return r.iterErr
	})
}

func (r *Reader) setIterErr(ctx context.Context, err error) {
	r.locker.Do(xsync.WithNoLogging(ctx, true), func() {
		r.iterErr = err
	})
}

// PacketsRead is the number of packets returned so far.
func (r *Reader) PacketsRead() uint64 {
	return r.packetsRead.Load()
}

// BitRate is the total bit rate in bit/s; 0 if unknown.
func (r *Reader) BitRate() int64 {
	return r.formatContext.BitRate()
}

// Duration is in AV_TIME_BASE (microsecond) units; avffi.NoPTSValue if
// unknown.
func (r *Reader) Duration() int64 {
	return r.formatContext.Duration()
}

// StartTime is in AV_TIME_BASE (microsecond) units; avffi.NoPTSValue if
// unknown.
func (r *Reader) StartTime() int64 {
	return r.formatContext.StartTime()
}

// Stream returns nil for an out of range index.
func (r *Reader) Stream(index int) *avffi.Stream {
	return r.formatContext.Stream(index)
}

func (r *Reader) Streams() []*avffi.Stream {
	return r.formatContext.Streams()
}

// FrameInfos describes each stream, by stream index.
func (r *Reader) FrameInfos() []media.FrameInfo {
	result := make([]media.FrameInfo, len(r.frameInfos))
	copy(result, r.frameInfos)
	return result
}

// StreamTimeBase is the time base of the packets ReadPacket returns for
// the stream.
func (r *Reader) StreamTimeBase(index int) avffi.Rational {
	if r.outTimeBase != nil {
		return *r.outTimeBase
	}
	if index >= 0 && index < len(r.filters) {
		return r.filters[index].OutputTimeBase()
	}
	stream := r.formatContext.Stream(index)
	if stream == nil {
		return avffi.NewRational(0, 1)
	}
	return stream.TimeBase()
}

func (r *Reader) Close(ctx context.Context) error {
	logger.Debugf(ctx, "Close[%s]", r.URL)
	return xsync.DoR1(ctx, &r.locker, func() error {
		if r.closed {
			return nil
		}
		r.closed = true
		internal.ClearFinalizer(r)
		r.release()
		return nil
	})
}

func (r *Reader) release() {
	for _, bsf := range r.filters {
		bsf.Free()
	}
	r.filters = nil
	if r.formatContext != nil {
		r.formatContext.Free()
	}
}

func (r *Reader) String() string {
	return fmt.Sprintf("Reader(%s)", r.URL)
}

// DurationAsTime is Duration as time.Duration; avconv.NoDuration if
// unknown.
func (r *Reader) DurationAsTime() time.Duration {
	return avconv.Duration(r.Duration(), avTimeBase)
}

// StartTimeAsTime is StartTime as time.Duration.
func (r *Reader) StartTimeAsTime() time.Duration {
	return avconv.Duration(r.StartTime(), avTimeBase)
}

var avTimeBase = types.NewRational(1, 1000000)
