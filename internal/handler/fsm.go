package handler

import "fmt"

// State is the lifecycle position of a single handler invocation
type State string

const (
	StateIdle            State = "IDLE"
	StateValidating      State = "VALIDATING"
	StateAborted         State = "ABORTED"
	StateSending         State = "SENDING"
	StateNotifiedSuccess State = "NOTIFIED_SUCCESS"
	StateNotifiedError   State = "NOTIFIED_ERROR"
)

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == StateAborted || s == StateNotifiedSuccess || s == StateNotifiedError
}

type Action string

const (
	ActionValidate Action = "VALIDATE"
	ActionAbort    Action = "ABORT"
	ActionSend     Action = "SEND"
	ActionSucceed  Action = "SUCCEED"
	ActionFail     Action = "FAIL"
)

type TransitionKey struct {
	From   State
	Action Action
}

// FSM is a static transition table.
type FSM struct {
	transitions map[TransitionKey]State
}

func NewFSM(transitions map[TransitionKey]State) *FSM {
	return &FSM{transitions: transitions}
}

// Next returns the state reached by applying action in from.
func (f *FSM) Next(from State, action Action) (State, error) {
	to, ok := f.transitions[TransitionKey{From: from, Action: action}]
	if !ok {
		return from, fmt.Errorf("fsm: action %q not permitted in state %q", action, from)
	}
	return to, nil
}

func (f *FSM) CanTransition(from State, action Action) bool {
	_, ok := f.transitions[TransitionKey{From: from, Action: action}]
	return ok
}

// NewInvocationFSM returns the state graph shared by every handler.
//
// State graph:
//
//	IDLE        ──VALIDATE──► VALIDATING
//	VALIDATING  ──ABORT─────► ABORTED           [terminal, no request sent]
//	VALIDATING  ──SEND──────► SENDING
//	SENDING     ──SUCCEED───► NOTIFIED_SUCCESS  [terminal]
//	SENDING     ──FAIL──────► NOTIFIED_ERROR    [terminal]
func NewInvocationFSM() *FSM {
	return NewFSM(map[TransitionKey]State{
		{StateIdle, ActionValidate}:   StateValidating,
		{StateValidating, ActionAbort}: StateAborted,
		{StateValidating, ActionSend}:  StateSending,
		{StateSending, ActionSucceed}:  StateNotifiedSuccess,
		{StateSending, ActionFail}:     StateNotifiedError,
	})
}
