package lifecycle

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/jsamuelsen/go-container-controller/internal/ports"
)

// WatchSignals translates OS signals into lifecycle events on n until ctx is
// done. A terminating signal is posted once and then WatchSignals returns, so
// the caller can begin shutdown.
func WatchSignals(ctx context.Context, n *Notifier, logger *slog.Logger) {
	background, terminate := signalSets()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, append(background, terminate...)...)
	defer signal.Stop(sigCh)

	for {
		select {
		case <-ctx.Done():
			return
		case sig := <-sigCh:
			event := ports.EventTerminating
			if slices.Contains(background, sig) {
				event = ports.EventEnteringBackground
			}

			logger.InfoContext(ctx, "lifecycle signal received",
				slog.String("signal", sig.String()),
				slog.String("event", string(event)),
			)
			n.Post(event)

			if event == ports.EventTerminating {
				return
			}
		}
	}
}
