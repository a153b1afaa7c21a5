package machine

// These errors are user errors, not internal errors, except for
// SpecNotCompiled, UnknownNode, and BadBranch, which indicate a
// broken Spec.

import (
	"errors"
	"fmt"

	"github.com/Comcast/vend/store"
)

// DefaultInvalidInputMessage is used when a Node's Otherwise doesn't
// provide a message.
var DefaultInvalidInputMessage = "Incorrect input"

// InvalidInput occurs when input can't be parsed or is out of range.
type InvalidInput struct {
	Input string
	Msg   string
}

func (e *InvalidInput) Error() string {
	if e.Msg == "" {
		return DefaultInvalidInputMessage
	}
	return e.Msg
}

// SpecNotCompiled occurs when a Spec is used before it has been
// Compile()ed.
type SpecNotCompiled struct {
	Spec *Spec
}

func (e *SpecNotCompiled) Error() string {
	return `spec "` + e.Spec.Name + `" not compiled`
}

// UnknownNode occurs when a State (say a branch target) has no Node
// in the Spec.
type UnknownNode struct {
	Spec  *Spec
	State State
}

func (e *UnknownNode) Error() string {
	return `node "` + e.State.String() + `" not found in spec "` + e.Spec.Name + `"`
}

// BadBranch occurs when a Branch can't be compiled.
type BadBranch struct {
	Spec   *Spec
	State  State
	Branch int
	Err    error
}

func (e *BadBranch) Error() string {
	return fmt.Sprintf(`branch %d at node "%s" in spec "%s": %v`,
		e.Branch, e.State, e.Spec.Name, e.Err)
}

func (e *BadBranch) Unwrap() error {
	return e.Err
}

var (
	errPatternSpace    = errors.New("pattern has whitespace")
	errPatternVariable = errors.New("pattern variable has no name")
	errNoActionFunc    = errors.New("action has no function")

	// NoRecipes occurs when a Machine is made without a catalog.
	NoRecipes = errors.New("no recipes")
)

// IsRecoverable reports whether err is something an operator caused
// and can recover from.  The console reports these and continues.
func IsRecoverable(err error) bool {
	var (
		ii *InvalidInput
		fe *store.IncorrectFill
		ne *store.NotEnoughIngredient
	)
	return errors.As(err, &ii) || errors.As(err, &fe) || errors.As(err, &ne)
}
