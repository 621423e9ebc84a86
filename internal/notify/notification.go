package notify

import (
	"context"

	"github.com/OpenNSW/formflow/internal/transport"
)

// Level is the severity the host renders a global notification with
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// TypeGlobal is the host's notification type for a global, non-blocking toast.
const TypeGlobal = 2

// Notification is handed to the host's notification API and then forgotten; the host owns display.
type Notification struct {
	Type            int    `json:"type"`
	Level           Level  `json:"level"`
	Message         string `json:"message"`
	ShowCloseButton bool   `json:"showCloseButton"`
}

// New builds a dismissible global notification.
func New(level Level, message string) Notification {
	return Notification{
		Type:            TypeGlobal,
		Level:           level,
		Message:         message,
		ShowCloseButton: true,
	}
}

// Notifier is the host's global notification API. It returns the host's notification id.
type Notifier interface {
	AddGlobalNotification(ctx context.Context, n Notification) (string, error)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, n Notification) (string, error)

func (f NotifierFunc) AddGlobalNotification(ctx context.Context, n Notification) (string, error) {
	return f(ctx, n)
}

// Messages holds the fixed texts a handler reports with.
type Messages struct {
	Pending       string // optional, shown when the request is issued
	Success       string
	FailurePrefix string // the raw response body is appended verbatim
}

// ForResponse maps a completed request to exactly one notification.
// Status 200 is success; everything else, including network failures, is an error.
func ForResponse(resp transport.Response, msgs Messages) Notification {
	if resp.OK() {
		return New(LevelSuccess, msgs.Success)
	}
	return New(LevelError, msgs.FailurePrefix+resp.Body)
}
