package handler

import (
	"context"

	"github.com/OpenNSW/formflow/internal/metrics"
	"github.com/OpenNSW/formflow/internal/notify"
	"github.com/OpenNSW/formflow/internal/payload"
)

var InventoryMessages = notify.Messages{
	Success:       "Inventory quantity request completed successfully.",
	FailurePrefix: "Inventory quantity request failed: ",
}

// InventoryHandler triggers the inventory-quantity workflow. Its payload carries a fixed
// inventory identifier and does not depend on the open record.
type InventoryHandler struct {
	requester
	inventoryID string
}

// NewInventoryHandler creates an InventoryHandler. When notifyResult is false the outcome is
// only logged.
func NewInventoryHandler(url string, deps Deps, inventoryID string, notifyResult bool) *InventoryHandler {
	if inventoryID == "" {
		inventoryID = payload.DefaultInventoryID
	}
	r := newRequester(TypeInventory, url, deps, InventoryMessages)
	r.notify = notifyResult
	return &InventoryHandler{requester: r, inventoryID: inventoryID}
}

func (h *InventoryHandler) Type() Type {
	return TypeInventory
}

func (h *InventoryHandler) Invoke(ctx context.Context, host Host) (*Invocation, error) {
	metrics.InvocationsTotal.WithLabelValues(string(TypeInventory)).Inc()
	inv := newInvocation(TypeInventory)
	h.transition(ctx, inv, ActionValidate)

	return inv, h.send(ctx, inv, host, payload.NewInventoryPayload(h.inventoryID))
}
