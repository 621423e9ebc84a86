package handler

import (
	"sync"

	"github.com/google/uuid"
)

var invocationFSM = NewInvocationFSM()

// Invocation tracks one user action from validation to its terminal state.
// A new Invocation is created for every call; none is ever reused.
type Invocation struct {
	ID      uuid.UUID
	Handler Type

	mu    sync.RWMutex
	state State
	done  chan struct{}
}

func newInvocation(t Type) *Invocation {
	return &Invocation{
		ID:      uuid.New(),
		Handler: t,
		state:   StateIdle,
		done:    make(chan struct{}),
	}
}

func (i *Invocation) State() State {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.state
}

// Done is closed when the invocation reaches a terminal state. If the workflow
// endpoint never completes, Done is never closed.
func (i *Invocation) Done() <-chan struct{} {
	return i.done
}

func (i *Invocation) transition(action Action) (State, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	next, err := invocationFSM.Next(i.state, action)
	if err != nil {
		return i.state, err
	}
	i.state = next
	if next.Terminal() {
		close(i.done)
	}
	return next, nil
}
