package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// InvocationsTotal counts handler invocations by handler type
	InvocationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "invocations_total",
		Help:      "Form handler invocations",
	}, []string{"handler"})

	// OutcomesTotal counts terminal invocation states (outcome=aborted/notified_success/notified_error)
	OutcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "outcomes_total",
		Help:      "Terminal states reached by form handler invocations",
	}, []string{"handler", "outcome"})

	// WorkflowRequestsTotal counts workflow endpoint responses by status code
	WorkflowRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "workflow_requests_total",
		Help:      "Completed workflow endpoint requests (status=0 means no HTTP response)",
	}, []string{"handler", "status"})

	NotificationsDispatchedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "notifications_dispatched_total",
		Help:      "Notifications handed to the host",
	}, []string{"level"})

	NotificationDispatchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "formflow",
		Name:      "notification_dispatch_failures_total",
		Help:      "Notifications the host rejected",
	})
)

var InboxDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "formflow",
	Subsystem: "hostbridge",
	Name:      "inbox_dropped_total",
	Help:      "Notifications evicted from a full host bridge inbox before being read",
})
