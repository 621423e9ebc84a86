package handler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OpenNSW/formflow/internal/form"
	"github.com/OpenNSW/formflow/internal/metrics"
	"github.com/OpenNSW/formflow/internal/notify"
	"github.com/OpenNSW/formflow/internal/payload"
)

// MsgContactNotFound is shown when the open record has no identifier.
const MsgContactNotFound = "Contact ID not found."

var OrderMessages = notify.Messages{
	Pending:       "Order is being created for the contact.",
	Success:       "Order has been created successfully.",
	FailurePrefix: "Order creation failed: ",
}

// OrderHandler triggers the order-creation workflow for the contact on the open form.
type OrderHandler struct {
	requester
}

// NewOrderHandler creates an OrderHandler posting to url. When notifyPending is set, an
// informational notification is shown as soon as the request is issued.
func NewOrderHandler(url string, deps Deps, notifyPending bool) *OrderHandler {
	r := newRequester(TypeOrder, url, deps, OrderMessages)
	r.pending = notifyPending
	return &OrderHandler{requester: r}
}

func (h *OrderHandler) Type() Type {
	return TypeOrder
}

// Invoke reads the contact and user identifiers, then posts them to the order workflow.
// A missing contact identifier aborts the invocation without any network request.
func (h *OrderHandler) Invoke(ctx context.Context, host Host) (*Invocation, error) {
	metrics.InvocationsTotal.WithLabelValues(string(TypeOrder)).Inc()
	inv := newInvocation(TypeOrder)
	h.transition(ctx, inv, ActionValidate)

	ids, err := form.ReadIdentifiers(host)
	if err != nil {
		slog.WarnContext(ctx, "order creation aborted",
			"invocationID", inv.ID,
			"error", err)
		h.abort(ctx, inv, host, MsgContactNotFound)
		return inv, fmt.Errorf("order: %w", err)
	}

	return inv, h.send(ctx, inv, host, payload.NewOrderPayload(ids))
}
