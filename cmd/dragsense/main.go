// cmd/dragsense/main.go
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/xkilldash9x/dragsense/cmd"
	"github.com/xkilldash9x/dragsense/internal/observability"
)

func main() {
	// Interrupt signals cancel the context so a realtime replay can stop
	// mid-stream.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err := cmd.Execute(ctx)
	observability.Sync()
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Graceful shutdown.
			os.Exit(0)
		}
		os.Exit(1)
	}
}
