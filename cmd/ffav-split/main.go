package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/ffav/cmd/internal/clilog"
	"github.com/xaionaro-go/ffav/extradata"
	"github.com/xaionaro-go/ffav/framed"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/metrics"
	"github.com/xaionaro-go/ffav/muxer"
	"github.com/xaionaro-go/observability"
)

const (
	timeUnit = 1000000
	ptsStep  = 40000
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options] <framed-H264-file> <output-dir>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	loggerLevel := clilog.Flags(pflag.CommandLine)
	configPath := pflag.String("config", "", "path to a YAML config file")
	pflag.Parse()
	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	ctx, l := clilog.Init(context.Background(), *loggerLevel)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt)
	defer cancelFn()
	defer belt.Flush(ctx)

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		l.Fatal(err)
	}
	maxSize, err := cfg.MaxSizeBytes()
	if err != nil {
		l.Fatal(err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg, "ffav")
	if cfg.MetricsAddr != "" {
		ln, err := net.Listen("tcp", cfg.MetricsAddr)
		if err != nil {
			l.Fatal(err)
		}
		observability.Go(ctx, func(ctx context.Context) {
			if err := serveMetrics(ctx, ln, reg); err != nil {
				l.Error(err)
			}
		})
	}

	opts, err := muxer.NewOptions().
		Media(media.NewAudioDesc()).
		Media(media.NewH264VideoDesc(352, 288, 4000, timeUnit)).
		Format(cfg.Format).
		FormatOptionsString(cfg.FormatOptions)
	if err != nil {
		l.Fatal(err)
	}
	opts = opts.
		MaxFiles(cfg.MaxFiles).
		MaxSizeBytes(maxSize).
		MaxSizeTime(cfg.MaxSizeTime).
		MaxOverhead(cfg.MaxOverhead).
		StartIndex(cfg.StartIndex).
		SplitAtKeyFrame(cfg.SplitAtKeyFrame).
		Metrics(m).
		AfterSplit(func(ctx context.Context, index int) {
			l.Infof("switched to segment #%d", index)
		})

	w, err := opts.Open(ctx, pflag.Arg(1))
	if err != nil {
		l.Fatal(err)
	}
	defer w.Close(ctx)

	var (
		pts     int64
		written uint64
	)
	for n := 0; n < cfg.Loops && ctx.Err() == nil; n++ {
		r, err := framed.Open(pflag.Arg(0))
		if err != nil {
			l.Fatal(err)
		}
		for ctx.Err() == nil {
			frame, err := r.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				l.Fatal(err)
			}
			isKey := extradata.IsKeyFrame(media.CodecIDH264, frame)
			if err := w.WriteBytes(ctx, frame, pts, ptsStep, isKey, 0); err != nil {
				l.Fatal(err)
			}
			pts += ptsStep
			written += uint64(len(frame))
		}
		r.Close()
	}
	if err := w.Close(ctx); err != nil {
		l.Error(err)
	}
	fmt.Printf("written %s in %d packets\n", humanize.IBytes(written), pts/ptsStep)
}
