package machine

import (
	"context"

	"github.com/Comcast/vend/store"
)

// Event kinds.
const (
	EventPurchase = "purchase"
	EventFill     = "fill"
	EventTake     = "take"
)

// Event is a message emitted by an Action when the store changes.
type Event struct {
	Kind       string       `json:"kind"`
	Recipe     string       `json:"recipe,omitempty"`
	Consumable string       `json:"consumable,omitempty"`
	Amount     uint64       `json:"amount,omitempty"`
	Money      uint64       `json:"money,omitempty"`
	Levels     store.Levels `json:"levels"`
}

// Execution is what an Action produces.
type Execution struct {
	// Output is text for the operator.
	Output string

	// Emitted holds Events for the couplings.
	Emitted []Event
}

// Emit adds the given Event to the list of emitted events.
func (e *Execution) Emit(ev Event) {
	e.Emitted = append(e.Emitted, ev)
}

// Action is a named wrapper around a Go function.  The name is only
// used for documentation and rendering.
type Action struct {
	Name string `json:"name"`

	F func(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) `json:"-"`
}

// Exec runs the Action.  A nil Action does nothing.
func (a *Action) Exec(ctx context.Context, m *Machine, bs Bindings) (*Execution, error) {
	if a == nil {
		return &Execution{}, nil
	}
	exe, err := a.F(ctx, m, bs)
	if exe == nil {
		exe = &Execution{}
	}
	return exe, err
}
