//go:build unix

package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"launchpad/internal/ui/services/lifecycle"
)

// lifecycleSignals maps SIGUSR1 to focus and SIGUSR2 to hide
func lifecycleSignals(ctx context.Context) (<-chan lifecycle.Signal, func()) {
	raw := make(chan os.Signal, 1)
	signal.Notify(raw, syscall.SIGUSR1, syscall.SIGUSR2)

	out := make(chan lifecycle.Signal, 1)
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case sig := <-raw:
				s := lifecycle.SignalFocusRequested
				if sig == syscall.SIGUSR2 {
					s = lifecycle.SignalHideRequested
				}
				select {
				case out <- s:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, func() {
		signal.Stop(raw)
		cancel()
		<-done
	}
}
