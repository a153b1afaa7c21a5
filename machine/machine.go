package machine

import (
	"context"
	"fmt"
	"strings"

	"github.com/Comcast/vend/catalog"
	"github.com/Comcast/vend/store"
)

// Recipes is read-only, indexed access to a recipe catalog.
type Recipes interface {
	Len() int
	At(i int) catalog.Recipe
}

// Inventory is what a Machine needs from a store.  Both *store.Store
// and *store.Guarded qualify.
type Inventory interface {
	Fill(c store.Consumable, amount uint64) error
	TakeMoney() uint64
	ProcessPurchase(r catalog.Recipe) error
	Levels() store.Levels
}

// Machine is one session: a State, a catalog, and a store.
type Machine struct {
	spec    *Spec
	state   State
	recipes Recipes
	store   Inventory
}

// New makes a Machine at the Spec's Initial State.
//
// The Spec must have been compiled.
func New(spec *Spec, recipes Recipes, inv Inventory) (*Machine, error) {
	if !spec.compiled {
		return nil, &SpecNotCompiled{spec}
	}
	if recipes == nil || recipes.Len() == 0 {
		return nil, NoRecipes
	}
	if inv == nil {
		return nil, fmt.Errorf("no store")
	}
	return &Machine{
		spec:    spec,
		state:   spec.Initial,
		recipes: recipes,
		store:   inv,
	}, nil
}

// NewVending makes a Machine using VendingSpec.
func NewVending(recipes Recipes, inv Inventory) (*Machine, error) {
	spec, err := VendingSpec()
	if err != nil {
		return nil, err
	}
	return New(spec, recipes, inv)
}

func (m *Machine) State() State         { return m.state }
func (m *Machine) Spec() *Spec          { return m.spec }
func (m *Machine) Recipes() Recipes     { return m.recipes }
func (m *Machine) Store() Inventory     { return m.store }
func (m *Machine) Done() bool           { return m.state == Exit }
func (m *Machine) Levels() store.Levels { return m.store.Levels() }

// Reset returns the Machine to the Spec's Initial State.  The store
// is not touched.
func (m *Machine) Reset() {
	m.state = m.spec.Initial
}

// Menu enumerates the catalog as "1 - Espresso, 2 - Latte".
func (m *Machine) Menu() string {
	items := make([]string, m.recipes.Len())
	for i := range items {
		items[i] = fmt.Sprintf("%d - %s", i+1, m.recipes.At(i).Name)
	}
	return strings.Join(items, ", ")
}

// Prompt returns the text to show at the current State.
func (m *Machine) Prompt() string {
	n, have := m.spec.Nodes[m.state]
	if !have {
		return ""
	}
	return strings.Replace(n.Prompt, "{recipes}", m.Menu(), -1)
}

// Normalize trims the given line and lowercases it.
func Normalize(line string) string {
	return strings.ToLower(strings.TrimSpace(line))
}

// Stride represents the Step that was taken.
type Stride struct {
	// From is the State before the Step.
	From State `json:"from"`

	// To is the State after the Step.
	To State `json:"to"`

	// Input is the normalized input.
	Input string `json:"input"`

	// Branch is the index of the Branch taken or -1 if none
	// matched.
	Branch int `json:"branch"`

	// Output is text for the operator.
	Output string `json:"output,omitempty"`

	// Emitted holds the Events from the Branch's Action.
	Emitted []Event `json:"emitted,omitempty"`
}

// Step consumes one line of input.
//
// The returned Stride is never nil when the error is recoverable
// (see IsRecoverable).  The Machine's State is always Stride.To
// afterwards.
func (m *Machine) Step(ctx context.Context, line string) (*Stride, error) {
	if !m.spec.compiled {
		return nil, &SpecNotCompiled{m.spec}
	}

	n, have := m.spec.Nodes[m.state]
	if !have {
		return nil, &UnknownNode{m.spec, m.state}
	}

	input := Normalize(line)
	stride := &Stride{
		From:   m.state,
		To:     m.state,
		Input:  input,
		Branch: -1,
	}

	for i, b := range n.Branches {
		bs, matched := b.pattern.match(input)
		if !matched {
			continue
		}
		stride.Branch = i

		exe, err := b.Action.Exec(ctx, m, bs)
		stride.Output = exe.Output
		stride.Emitted = exe.Emitted
		if err != nil {
			stride.To = b.ErrorTarget
			m.state = stride.To
			return stride, err
		}
		stride.To = b.Target
		m.state = stride.To
		return stride, nil
	}

	err := &InvalidInput{Input: input}
	if n.Otherwise != nil {
		err.Msg = n.Otherwise.Message
		stride.To = n.Otherwise.Target
		m.state = stride.To
	}

	return stride, err
}
