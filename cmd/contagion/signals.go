package main

import (
	"context"
	"os"
	"os/signal"
)

// withSignalCancel returns a context canceled on the first interrupt. The
// returned stop function releases the signal handler.
func withSignalCancel(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	ch := make(chan os.Signal, 1)
	notifySignals(ch)
	go func() {
		select {
		case <-ch:
			cancel()
		case <-ctx.Done():
		}
	}()
	return ctx, func() {
		signal.Stop(ch)
		cancel()
	}
}
