package main

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"

	"github.com/OpenNSW/formflow/internal/notify"
)

var levelColors = map[notify.Level]*color.Color{
	notify.LevelInfo:    color.New(color.FgCyan),
	notify.LevelSuccess: color.New(color.FgGreen),
	notify.LevelWarning: color.New(color.FgYellow),
	notify.LevelError:   color.New(color.FgRed),
}

// consoleNotifier prints global notifications as coloured lines.
type consoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

func newConsoleNotifier(out io.Writer) *consoleNotifier {
	return &consoleNotifier{out: out}
}

func (c *consoleNotifier) AddGlobalNotification(_ context.Context, n notify.Notification) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := fmt.Sprintf("[%s]", n.Level)
	if col, ok := levelColors[n.Level]; ok {
		label = col.Sprint(label)
	}
	if _, err := fmt.Fprintf(c.out, "%s %s\n", label, n.Message); err != nil {
		return "", err
	}
	return uuid.NewString(), nil
}
