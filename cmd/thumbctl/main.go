package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"image-thumbnailer/internal/cli"

	"github.com/wb-go/wbf/zlog"
)

func main() {
	zlog.Init()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.New(os.Stdout, &zlog.Logger).Execute(ctx, os.Args[1:]); err != nil {
		stop()
		os.Exit(1)
	}
}
