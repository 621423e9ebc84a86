package notify

import (
	"context"
	"log/slog"

	"github.com/OpenNSW/formflow/internal/eventloop"
	"github.com/OpenNSW/formflow/internal/metrics"
)

// Dispatcher hands notifications to the host on the next scheduler tick.
// Host failures are logged and swallowed; nothing is retried or returned to the caller.
type Dispatcher struct {
	scheduler eventloop.Scheduler
}

func NewDispatcher(scheduler eventloop.Scheduler) *Dispatcher {
	return &Dispatcher{scheduler: scheduler}
}

// Dispatch queues n for the host. It returns immediately.
func (d *Dispatcher) Dispatch(ctx context.Context, notifier Notifier, n Notification) {
	if notifier == nil {
		slog.WarnContext(ctx, "no notifier configured, notification dropped",
			"level", n.Level,
			"message", n.Message)
		return
	}

	hostCtx := context.WithoutCancel(ctx)
	err := d.scheduler.Defer(func() {
		id, err := notifier.AddGlobalNotification(hostCtx, n)
		if err != nil {
			metrics.NotificationDispatchFailuresTotal.Inc()
			slog.WarnContext(hostCtx, "error showing notification",
				"level", n.Level,
				"error", err)
			return
		}
		metrics.NotificationsDispatchedTotal.WithLabelValues(string(n.Level)).Inc()
		slog.DebugContext(hostCtx, "notification shown",
			"notificationID", id,
			"level", n.Level)
	})
	if err != nil {
		metrics.NotificationDispatchFailuresTotal.Inc()
		slog.WarnContext(ctx, "failed to schedule notification",
			"level", n.Level,
			"error", err)
	}
}
