// options.go implements the builder choosing between a SimpleWriter and a
// segment.SplitWriter.

package muxer

import (
	"context"
	"fmt"
	"time"

	"github.com/xaionaro-go/ffav/logger"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/metrics"
	"github.com/xaionaro-go/ffav/segment"
	"github.com/xaionaro-go/ffav/types"
)

// Options collects the output settings. Open returns a SplitWriter when a
// format location or a max files limit is set, and a SimpleWriter otherwise.
type Options struct {
	descs         []media.Desc
	format        string
	formatOptions types.DictionaryItems
	metrics       *metrics.Metrics

	hasFormatLocation bool
	hasMaxFiles       bool
	splitOptions      segment.Options
}

func NewOptions() *Options {
	return &Options{}
}

// Media adds a media description; the order defines the stream indexes.
func (o *Options) Media(desc media.Desc) *Options {
	o.descs = append(o.descs, desc)
	return o
}

// Format is the muxer name, e.g. "mp4" or "mpegts".
func (o *Options) Format(format string) *Options {
	o.format = format
	return o
}

func (o *Options) FormatOptions(opts types.DictionaryItems) *Options {
	o.formatOptions = append(o.formatOptions, opts...)
	return o
}

// FormatOptionsString parses "key=value:key=value" muxer options.
func (o *Options) FormatOptionsString(s string) (*Options, error) {
	opts, err := types.ParseDictionaryItems(s)
	if err != nil {
		return o, fmt.Errorf("unable to parse the format options '%s': %w", s, err)
	}
	return o.FormatOptions(opts), nil
}

func (o *Options) FormatLocation(fn segment.FormatLocationFunc) *Options {
	o.hasFormatLocation = true
	o.splitOptions = append(o.splitOptions, segment.OptionFormatLocation(fn))
	return o
}

func (o *Options) BeforeSplit(fn segment.SplitNotifier) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionBeforeSplit(fn))
	return o
}

func (o *Options) AfterSplit(fn segment.SplitNotifier) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionAfterSplit(fn))
	return o
}

// MaxFiles is the number of segments kept on disk; 0 keeps all.
func (o *Options) MaxFiles(n uint) *Options {
	o.hasMaxFiles = true
	o.splitOptions = append(o.splitOptions, segment.OptionMaxFiles(n))
	return o
}

// MaxSizeBytes is the segment size to split at; 0 disables it.
func (o *Options) MaxSizeBytes(n uint64) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionMaxSizeBytes(n))
	return o
}

// MaxSizeTime is the segment duration to split at; 0 disables it.
func (o *Options) MaxSizeTime(d time.Duration) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionMaxSizeTime(d))
	return o
}

// MaxOverhead is the extra fraction of the limits allowed while waiting
// for a key frame (0.02 is 2%).
func (o *Options) MaxOverhead(f float64) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionMaxOverhead(f))
	return o
}

// SplitAtKeyFrame false splits as soon as a limit is reached. Exceeding a
// limit by MaxOverhead splits regardless.
func (o *Options) SplitAtKeyFrame(b bool) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionSplitAtKeyFrame(b))
	return o
}

func (o *Options) StartIndex(n int) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionStartIndex(n))
	return o
}

func (o *Options) Clock(clock segment.Clock) *Options {
	o.splitOptions = append(o.splitOptions, segment.OptionClock{Clock: clock})
	return o
}

func (o *Options) Metrics(m *metrics.Metrics) *Options {
	o.metrics = m
	return o
}

// IsSplit reports whether Open would return a SplitWriter.
func (o *Options) IsSplit() bool {
	return o.hasFormatLocation || o.hasMaxFiles
}

// Open creates the writer. For a SplitWriter, path is the output
// directory.
func (o *Options) Open(ctx context.Context, path string) (segment.Writer, error) {
	logger.Debugf(ctx, "Open(ctx, '%s'): split:%t", path, o.IsSplit())
	writerOpts := []WriterOption{WriterOptionMetrics{o.metrics}}
	if !o.IsSplit() {
		w, err := NewSimpleWriter(ctx, path, o.descs, o.format, o.formatOptions, writerOpts...)
		if err != nil {
			return nil, err
		}
		return w, nil
	}

	splitOptions := append(segment.Options{segment.OptionMetrics{Metrics: o.metrics}}, o.splitOptions...)
	w, err := segment.NewSplitWriter(
		ctx,
		NewSimpleWriterFactory(writerOpts...),
		path,
		o.descs,
		o.format,
		o.formatOptions,
		splitOptions...,
	)
	if err != nil {
		return nil, err
	}
	return w, nil
}
