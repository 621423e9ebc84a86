package payload

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/OpenNSW/formflow/internal/form"
)

// DefaultInventoryID is the inventory identifier sent by the inventory handler when none is configured.
const DefaultInventoryID = "213213"

// ActionPayload is the flat key/value body posted to a workflow endpoint.
// Values are strings or numbers. A payload is built per invocation and not modified afterwards.
type ActionPayload map[string]any

// NewOrderPayload builds the order-creation payload from the current record and acting user.
func NewOrderPayload(ids form.Identifiers) ActionPayload {
	return ActionPayload{
		"contactId": ids.RecordID,
		"userId":    ids.UserID,
	}
}

// NewInventoryPayload builds the inventory-quantity payload. It does not depend on the open record.
func NewInventoryPayload(inventoryID string) ActionPayload {
	return ActionPayload{
		"inventoryID": inventoryID,
	}
}

// Encode serializes the payload as a JSON object.
func (p ActionPayload) Encode() ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("payload is nil")
	}
	body, err := json.Marshal(map[string]any(p))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return body, nil
}

// Keys returns the sorted field names, for logging without the values.
func (p ActionPayload) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
