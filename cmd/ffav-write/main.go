package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/ffav/cmd/internal/clilog"
	"github.com/xaionaro-go/ffav/extradata"
	"github.com/xaionaro-go/ffav/framed"
	"github.com/xaionaro-go/ffav/media"
	"github.com/xaionaro-go/ffav/muxer"
	"github.com/xaionaro-go/xcontext"
	"golang.org/x/sync/errgroup"
)

const (
	timeUnit = 1000000
	ptsStep  = 40000
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options] <framed-H264-file> <output-prefix>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	loggerLevel := clilog.Flags(pflag.CommandLine)
	width := pflag.Int("width", 352, "video width")
	height := pflag.Int("height", 288, "video height")
	bitRate := pflag.Int64("bit-rate", 4000, "video bit rate")
	repeat := pflag.Int("repeat", 1, "how many times to mux the input")
	pflag.Parse()
	if pflag.NArg() != 2 {
		pflag.Usage()
		os.Exit(1)
	}

	ctx, l := clilog.Init(context.Background(), *loggerLevel)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt)
	defer cancelFn()
	defer belt.Flush(ctx)

	frames, err := readFrames(pflag.Arg(0))
	if err != nil {
		l.Fatal(err)
	}
	var totalBytes uint64
	for _, frame := range frames {
		totalBytes += uint64(len(frame))
	}

	descs := []media.Desc{
		media.NewAudioDesc(),
		media.NewH264VideoDesc(*width, *height, *bitRate, timeUnit),
	}
	prefix := pflag.Arg(1)
	for n := 0; n < *repeat; n++ {
		startTS := time.Now()
		errGroup, gctx := errgroup.WithContext(ctx)
		for _, out := range []struct{ path, format string }{
			{prefix + ".mp4", ""},
			{prefix + ".ts", "mpegts"},
		} {
			errGroup.Go(func() error {
				return mux(gctx, out.path, out.format, descs, frames)
			})
		}
		if err := errGroup.Wait(); err != nil {
			l.Fatal(err)
		}
		fmt.Printf("#%6d Time elapsed %v to processing %s!\n", n, time.Since(startTS), humanize.IBytes(totalBytes))
		if ctx.Err() != nil {
			return
		}
	}
}

func readFrames(path string) ([][]byte, error) {
	r, err := framed.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var frames [][]byte
	for {
		frame, err := r.Next()
		switch {
		case err == nil:
			frames = append(frames, frame)
		case errors.Is(err, io.EOF):
			return frames, nil
		default:
			return nil, fmt.Errorf("unable to read frame #%d of '%s': %w", len(frames), path, err)
		}
	}
}

func mux(
	ctx context.Context,
	path string,
	format string,
	descs []media.Desc,
	frames [][]byte,
) (_err error) {
	w, err := muxer.NewSimpleWriter(ctx, path, descs, format, nil)
	if err != nil {
		return err
	}
	defer func() {
		_err = errors.Join(_err, w.Close(xcontext.DetachDone(ctx)))
	}()

	var pts int64
	for _, frame := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		isKey := extradata.IsKeyFrame(media.CodecIDH264, frame)
		if err := w.WriteBytes(ctx, frame, pts, ptsStep, isKey, 0); err != nil {
			return fmt.Errorf("unable to write to '%s': %w", path, err)
		}
		pts += ptsStep
	}
	return nil
}
