package main

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/spf13/pflag"
	"github.com/xaionaro-go/ffav/avffi"
	"github.com/xaionaro-go/ffav/cmd/internal/clilog"
	"github.com/xaionaro-go/ffav/probe"
	"github.com/xaionaro-go/ffav/profile"
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "syntax: %s\n", os.Args[0])
		pflag.PrintDefaults()
	}
	loggerLevel := clilog.Flags(pflag.CommandLine)
	pflag.Parse()

	ctx, l := clilog.Init(context.Background(), *loggerLevel)
	defer belt.Flush(ctx)

	current := profile.Current()
	fmt.Printf("profile:          %s\n", current)
	fmt.Printf("binding version:  %s\n", profile.BindingVersion())
	fmt.Printf("headers:          libavcodec %s\n", avffi.HeaderLibAVCodecVersion())
	fmt.Printf("linked:           libavcodec %s, libavformat %s, libavutil %s (FFmpeg %s)\n",
		avffi.LibAVCodecVersion(), avffi.LibAVFormatVersion(), avffi.LibAVUtilVersion(), avffi.FFmpegVersion(),
	)
	if err := avffi.CheckLinkedVersion(); err != nil {
		fmt.Printf("linked check:     %v\n", err)
	} else {
		fmt.Printf("linked check:     ok\n")
	}

	result, err := probe.Detect(ctx)
	if err != nil {
		l.Debugf("probe: %v", err)
		fmt.Printf("installed:        %v\n", err)
		return
	}
	fmt.Printf("installed:        %s\n", result)
}
