// Package form reads identifiers from the host's currently displayed record.
package form

import (
	"errors"
	"strings"
)

// ErrMissingIdentifier is returned when the record identifier is empty after normalization.
var ErrMissingIdentifier = errors.New("record identifier not found")

// Context is the host-supplied form context for the open record and the acting user.
type Context interface {
	// EntityID returns the record identifier, wrapped in braces, e.g. "{abc-123}".
	EntityID() string
	// UserID returns the acting user's identifier in the same wrapped format.
	UserID() string
}

// Identifiers are the trimmed values ready to be embedded in a payload.
type Identifiers struct {
	RecordID string
	UserID   string
}

// StaticContext is a Context backed by fixed values. Adapters use it to wrap identifiers
// received from a host over the wire.
type StaticContext struct {
	Entity string `json:"entityId"`
	User   string `json:"userId"`
}

func (c StaticContext) EntityID() string { return c.Entity }
func (c StaticContext) UserID() string   { return c.User }

// TrimBraces removes one leading "{" and one trailing "}". Interior characters are kept.
func TrimBraces(s string) string {
	s = strings.TrimPrefix(s, "{")
	return strings.TrimSuffix(s, "}")
}

// ReadIdentifiers extracts and normalizes the record and user identifiers.
// Only the record identifier is required; no format check is applied to either value.
func ReadIdentifiers(fc Context) (Identifiers, error) {
	if fc == nil {
		return Identifiers{}, ErrMissingIdentifier
	}
	ids := Identifiers{
		RecordID: TrimBraces(fc.EntityID()),
		UserID:   TrimBraces(fc.UserID()),
	}
	if ids.RecordID == "" {
		return ids, ErrMissingIdentifier
	}
	return ids, nil
}
