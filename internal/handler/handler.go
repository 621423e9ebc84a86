package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/OpenNSW/formflow/internal/form"
	"github.com/OpenNSW/formflow/internal/notify"
)

var ErrUnknownType = errors.New("unknown handler type")

// Type identifies a form-event handler
type Type string

const (
	TypeOrder     Type = "order"
	TypeInventory Type = "inventory"
)

// Types lists every registered handler type.
func Types() []Type {
	return []Type{TypeOrder, TypeInventory}
}

// ParseType converts a case-insensitive handler name to a Type.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Types() {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
}

// Host is what the host runtime supplies to a handler at call time: the open form and
// the global notification channel.
type Host interface {
	form.Context
	notify.Notifier
}

// BasicHost assembles a Host from a form context and a notifier.
type BasicHost struct {
	form.Context
	notify.Notifier
}

// Handler reacts to a single form event. Invoke returns as soon as the workflow request
// has been issued; the outcome is reported to the host asynchronously.
type Handler interface {
	Type() Type
	Invoke(ctx context.Context, host Host) (*Invocation, error)
}
