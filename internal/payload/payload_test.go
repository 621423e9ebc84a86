package payload

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenNSW/formflow/internal/form"
)

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload ActionPayload
	}{
		{
			name:    "order payload",
			payload: NewOrderPayload(form.Identifiers{RecordID: "abc-123", UserID: "user-9"}),
		},
		{
			name:    "order payload with empty user",
			payload: NewOrderPayload(form.Identifiers{RecordID: "abc-123"}),
		},
		{
			name:    "inventory payload",
			payload: NewInventoryPayload(DefaultInventoryID),
		},
		{
			name:    "numeric value",
			payload: ActionPayload{"quantity": float64(12)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := tt.payload.Encode()
			require.NoError(t, err)

			var decoded map[string]any
			require.NoError(t, json.Unmarshal(body, &decoded))

			if diff := cmp.Diff(map[string]any(tt.payload), decoded); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewOrderPayload_Shape(t *testing.T) {
	p := NewOrderPayload(form.Identifiers{RecordID: "r", UserID: "u"})
	assert.Equal(t, []string{"contactId", "userId"}, p.Keys())
	assert.Equal(t, "r", p["contactId"])
	assert.Equal(t, "u", p["userId"])
}

func TestNewInventoryPayload_IgnoresRecord(t *testing.T) {
	p := NewInventoryPayload(DefaultInventoryID)
	assert.Equal(t, ActionPayload{"inventoryID": "213213"}, p)
}

func TestEncode_Nil(t *testing.T) {
	var p ActionPayload
	_, err := p.Encode()
	assert.Error(t, err)
}
