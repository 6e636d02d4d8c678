package eventbus

import (
	"context"

	"github.com/voxelcore/worldcore/internal/logging"
)

// StartLoggingListener subscribes to every event on the bus and logs each
// delivery at TRACE through the package-level default logger. That logger
// has no file and prints only INFO and above, so these lines are filtered
// out. Non-blocking.
func StartLoggingListener(bus EventBus) error {
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		logging.Trace("bus event id=%s type=%s src=%s", ev.ID, ev.EventType, ev.Source)
	})
	if err != nil {
		return err
	}
	logging.Info("eventbus logging listener active")
	return nil
}
