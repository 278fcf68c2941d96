// option.go defines functional options for configuring a SplitWriter.

package segment

import (
	"context"
	"time"

	"github.com/xaionaro-go/ffav/metrics"
)

// FormatLocationFunc returns the path of the segment with the given index,
// relative to the output path.
type FormatLocationFunc func(index int) string

// SplitNotifier is called with the index of the segment being closed
// (before a split) or opened (after a split).
type SplitNotifier func(ctx context.Context, index int)

const (
	DefaultMaxOverhead     = 0.1
	DefaultSplitAtKeyFrame = true
)

type Config struct {
	FormatLocation  FormatLocationFunc
	BeforeSplit     SplitNotifier
	AfterSplit      SplitNotifier
	MaxFiles        uint
	MaxSizeBytes    uint64
	MaxSizeTime     time.Duration
	MaxOverhead     float64
	SplitAtKeyFrame bool
	StartIndex      int
	Clock           Clock
	Metrics         *metrics.Metrics
}

func DefaultConfig() Config {
	return Config{
		MaxOverhead:     DefaultMaxOverhead,
		SplitAtKeyFrame: DefaultSplitAtKeyFrame,
		Clock:           realClock{},
	}
}

type Option interface {
	apply(*Config)
}

type Options []Option

func (opts Options) apply(cfg *Config) {
	for _, opt := range opts {
		opt.apply(cfg)
	}
}

func (opts Options) Config() Config {
	cfg := DefaultConfig()
	opts.apply(&cfg)
	return cfg
}

type OptionFormatLocation FormatLocationFunc

func (opt OptionFormatLocation) apply(cfg *Config) {
	cfg.FormatLocation = FormatLocationFunc(opt)
}

type OptionBeforeSplit SplitNotifier

func (opt OptionBeforeSplit) apply(cfg *Config) {
	cfg.BeforeSplit = SplitNotifier(opt)
}

type OptionAfterSplit SplitNotifier

func (opt OptionAfterSplit) apply(cfg *Config) {
	cfg.AfterSplit = SplitNotifier(opt)
}

// OptionMaxFiles limits how many segments are kept on disk; 0 keeps all.
type OptionMaxFiles uint

func (opt OptionMaxFiles) apply(cfg *Config) {
	cfg.MaxFiles = uint(opt)
}

// OptionMaxSizeBytes is the segment size to split at; 0 disables it.
type OptionMaxSizeBytes uint64

func (opt OptionMaxSizeBytes) apply(cfg *Config) {
	cfg.MaxSizeBytes = uint64(opt)
}

// OptionMaxSizeTime is the segment wall-clock duration to split at; 0
// disables it.
type OptionMaxSizeTime time.Duration

func (opt OptionMaxSizeTime) apply(cfg *Config) {
	cfg.MaxSizeTime = time.Duration(opt)
}

// OptionMaxOverhead is the fraction a segment may exceed the limits by
// while waiting for a key frame.
type OptionMaxOverhead float64

func (opt OptionMaxOverhead) apply(cfg *Config) {
	cfg.MaxOverhead = float64(opt)
}

type OptionSplitAtKeyFrame bool

func (opt OptionSplitAtKeyFrame) apply(cfg *Config) {
	cfg.SplitAtKeyFrame = bool(opt)
}

type OptionStartIndex int

func (opt OptionStartIndex) apply(cfg *Config) {
	cfg.StartIndex = int(opt)
}

type OptionClock struct {
	Clock
}

func (opt OptionClock) apply(cfg *Config) {
	cfg.Clock = opt.Clock
}

type OptionMetrics struct {
	*metrics.Metrics
}

func (opt OptionMetrics) apply(cfg *Config) {
	cfg.Metrics = opt.Metrics
}
