package handler

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/OpenNSW/formflow/internal/endpoints"
	"github.com/OpenNSW/formflow/internal/eventloop"
	"github.com/OpenNSW/formflow/internal/metrics"
	"github.com/OpenNSW/formflow/internal/notify"
	"github.com/OpenNSW/formflow/internal/payload"
	"github.com/OpenNSW/formflow/internal/transport"
)

// Deps are the runtime collaborators every handler needs
type Deps struct {
	Sender    transport.Sender
	Scheduler eventloop.Scheduler
}

// requester sends a handler's payload and reports the outcome. It holds no per-invocation state.
type requester struct {
	handler    Type
	url        string
	sender     transport.Sender
	scheduler  eventloop.Scheduler
	dispatcher *notify.Dispatcher
	messages   notify.Messages
	notify     bool // report the outcome as a host notification, otherwise only log it
	pending    bool // show messages.Pending when the request is issued
}

func newRequester(t Type, url string, deps Deps, msgs notify.Messages) requester {
	return requester{
		handler:    t,
		url:        url,
		sender:     deps.Sender,
		scheduler:  deps.Scheduler,
		dispatcher: notify.NewDispatcher(deps.Scheduler),
		messages:   msgs,
		notify:     true,
	}
}

// send moves inv from VALIDATING to SENDING and issues the request. It returns without waiting
// for the response.
func (r *requester) send(ctx context.Context, inv *Invocation, notifier notify.Notifier, p payload.ActionPayload) error {
	body, err := p.Encode()
	if err != nil {
		r.transition(ctx, inv, ActionAbort)
		return fmt.Errorf("%s: %w", r.handler, err)
	}
	r.transition(ctx, inv, ActionSend)

	slog.DebugContext(ctx, "data being sent to flow",
		"handler", r.handler,
		"invocationID", inv.ID,
		"payload", p)

	if r.notify && r.pending && strings.TrimSpace(r.messages.Pending) != "" {
		r.dispatcher.Dispatch(ctx, notifier, notify.New(notify.LevelInfo, r.messages.Pending))
	}

	r.sender.Send(ctx, r.url, body, func(resp transport.Response) {
		if err := r.scheduler.Defer(func() { r.complete(ctx, inv, notifier, resp) }); err != nil {
			slog.WarnContext(ctx, "workflow result dropped, event loop unavailable",
				"handler", r.handler,
				"invocationID", inv.ID,
				"status", resp.StatusCode,
				"error", err)
		}
	})

	slog.InfoContext(ctx, "workflow request issued",
		"handler", r.handler,
		"invocationID", inv.ID,
		"url", endpoints.Redact(r.url))
	return nil
}

// complete runs on the event loop once the request has finished.
func (r *requester) complete(ctx context.Context, inv *Invocation, notifier notify.Notifier, resp transport.Response) {
	metrics.WorkflowRequestsTotal.WithLabelValues(string(r.handler), strconv.Itoa(resp.StatusCode)).Inc()

	action := ActionSucceed
	if resp.OK() {
		slog.InfoContext(ctx, "workflow request succeeded",
			"handler", r.handler,
			"invocationID", inv.ID,
			"status", resp.StatusCode)
	} else {
		action = ActionFail
		slog.WarnContext(ctx, "workflow request failed",
			"handler", r.handler,
			"invocationID", inv.ID,
			"status", resp.StatusCode,
			"error", resp.AsError())
	}

	if r.notify {
		r.dispatcher.Dispatch(ctx, notifier, notify.ForResponse(resp, r.messages))
	}
	r.transition(ctx, inv, action)
}

// abort ends inv before any request is sent, reporting message as an error notification.
func (r *requester) abort(ctx context.Context, inv *Invocation, notifier notify.Notifier, message string) {
	r.transition(ctx, inv, ActionAbort)
	r.dispatcher.Dispatch(ctx, notifier, notify.New(notify.LevelError, message))
}

func (r *requester) transition(ctx context.Context, inv *Invocation, action Action) {
	state, err := inv.transition(action)
	if err != nil {
		slog.ErrorContext(ctx, "invalid invocation transition",
			"handler", r.handler,
			"invocationID", inv.ID,
			"error", err)
		return
	}
	if state.Terminal() {
		metrics.OutcomesTotal.WithLabelValues(string(r.handler), strings.ToLower(string(state))).Inc()
	}
}
