package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	log "github.com/golang/glog"

	"github.com/bobonovski/gosmt/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := cli.CreateRootCommand().ExecuteContext(ctx)
	log.Flush()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
