package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"

	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/ffav/avffi"
	"github.com/xaionaro-go/ffav/cmd/internal/clilog"
	"github.com/xaionaro-go/ffav/demuxer"
	"github.com/xaionaro-go/ffav/types"
)

const dumpBytes = 16

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s [options] <URL>\n", os.Args[0])
		pflag.PrintDefaults()
	}
	loggerLevel := clilog.Flags(pflag.CommandLine)
	formatOptions := pflag.String("format-options", "", "demuxer options in the form 'k=v:k=v'; 'f' forces the input format")
	timeUnit := pflag.Int("time-unit", 0, "if positive, print timestamps in 1/time-unit seconds")
	limit := pflag.Int("limit", 0, "stop after this amount of packets (0 means no limit)")
	pflag.Parse()
	if pflag.NArg() != 1 {
		pflag.Usage()
		os.Exit(1)
	}

	ctx, l := clilog.Init(context.Background(), *loggerLevel)
	ctx, cancelFn := signal.NotifyContext(ctx, os.Interrupt)
	defer cancelFn()
	defer belt.Flush(ctx)

	opts, err := types.ParseDictionaryItems(*formatOptions)
	if err != nil {
		l.Fatalf("unable to parse the format options: %v", err)
	}

	r, err := demuxer.Open(ctx, pflag.Arg(0), demuxer.Config{
		FormatOptions: opts,
		TimeUnit:      *timeUnit,
	})
	if err != nil {
		l.Fatal(err)
	}
	defer r.Close(ctx)

	count := 0
	for pkt, info := range r.Packets(ctx) {
		data := pkt.Data()
		if len(data) > dumpBytes {
			data = data[:dumpBytes]
		}
		fmt.Printf(
			"stream:%d codec:%s key:%t pts:%d dts:%d dur:%d size:%d data:%s\n",
			pkt.StreamIndex(), info.CodecID, pkt.IsKeyFrame(),
			pkt.Pts(), pkt.Dts(), pkt.Duration(), pkt.Size(), hex.EncodeToString(data),
		)
		avffi.PacketPool.Put(pkt)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	l.Debugf("read %d packets", r.PacketsRead())

	fmt.Printf("bit_rate:%d duration:%s start_time:%s\n", r.BitRate(), r.DurationAsTime(), r.StartTimeAsTime())
	for idx, stream := range r.Streams() {
		fmt.Printf("stream #%d: %s time_base:%s\n", idx, stream.CodecParameters(), r.StreamTimeBase(idx))
	}
}
