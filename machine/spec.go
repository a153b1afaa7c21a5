package machine

import (
	"sort"
	"strconv"
	"strings"
)

// Spec is a specification used to build a Machine.
//
// A Spec gives the structure of the controller.  It does not include
// any state, so a single compiled Spec can be shared by many
// Machines.
type Spec struct {
	// Name is the generic name for this controller.
	Name string `json:"name,omitempty"`

	// Doc is general documentation about how this Spec works.
	// Rendered as Markdown by tools.RenderSpecHTML.
	Doc string `json:"doc,omitempty"`

	// Initial is the State of a new Machine.
	Initial State `json:"initial"`

	// Nodes is the structure of the controller.
	Nodes map[State]*Node `json:"nodes"`

	compiled bool
}

// Node represents what can happen at one State.
type Node struct {
	Doc string `json:"doc,omitempty"`

	// Prompt is shown to the operator while at this Node.  The
	// string "{recipes}" is replaced by the enumerated catalog
	// ("1 - Espresso, 2 - Latte").
	Prompt string `json:"prompt,omitempty"`

	// Branches is the ordered list of possible transitions.
	Branches []*Branch `json:"branches,omitempty"`

	// Otherwise is followed when no Branch matches.  A nil
	// Otherwise keeps the current State.
	Otherwise *Otherwise `json:"otherwise,omitempty"`
}

// Terminal determines if a node has no way out.
func (n *Node) Terminal(at State) bool {
	for _, b := range n.Branches {
		if b.Target != at || (b.Action != nil && b.ErrorTarget != at) {
			return false
		}
	}
	return n.Otherwise == nil || n.Otherwise.Target == at
}

// Branch is a possible transition to the next State.
type Branch struct {
	Doc string `json:"doc,omitempty"`

	// Pattern is matched against the normalized input.
	Pattern string `json:"pattern"`

	// Action is optional.
	Action *Action `json:"action,omitempty"`

	// Target is the next State when the Action (if any)
	// succeeds.
	Target State `json:"target"`

	// ErrorTarget is the next State when the Action returns an
	// error.  Required when there is an Action.
	ErrorTarget State `json:"errorTarget,omitempty"`

	pattern *pattern
}

// Otherwise is the fallback for input that no Branch matched.
type Otherwise struct {
	// Message is reported in the resulting *InvalidInput.
	Message string `json:"message,omitempty"`

	Target State `json:"target"`
}

// SortedStates returns the States of the Spec's Nodes starting with
// Initial and then in declaration order.
func (s *Spec) SortedStates() []State {
	acc := make([]State, 0, len(s.Nodes))
	for st := range s.Nodes {
		acc = append(acc, st)
	}
	sort.Slice(acc, func(i, j int) bool {
		if acc[i] == s.Initial {
			return acc[j] != s.Initial
		}
		if acc[j] == s.Initial {
			return false
		}
		return acc[i] < acc[j]
	})
	return acc
}

// Compile checks the Spec and parses its Patterns.
//
// Every Branch Target (and ErrorTarget when there's an Action) and
// every Otherwise Target must name a Node in the Spec.
func (s *Spec) Compile() error {
	if _, have := s.Nodes[s.Initial]; !have {
		return &UnknownNode{Spec: s, State: s.Initial}
	}

	known := func(st State) error {
		if _, have := s.Nodes[st]; !have {
			return &UnknownNode{Spec: s, State: st}
		}
		return nil
	}

	for at, n := range s.Nodes {
		if n == nil {
			return &UnknownNode{Spec: s, State: at}
		}
		for i, b := range n.Branches {
			p, err := parsePattern(b.Pattern)
			if err != nil {
				return &BadBranch{Spec: s, State: at, Branch: i, Err: err}
			}
			b.pattern = p
			if err = known(b.Target); err != nil {
				return err
			}
			if b.Action != nil {
				if b.Action.F == nil {
					return &BadBranch{Spec: s, State: at, Branch: i, Err: errNoActionFunc}
				}
				if err = known(b.ErrorTarget); err != nil {
					return err
				}
			}
		}
		if n.Otherwise != nil {
			if err := known(n.Otherwise.Target); err != nil {
				return err
			}
		}
	}

	s.compiled = true

	return nil
}

// Bindings are the variables bound by a Pattern match.
type Bindings map[string]uint64

// pattern is a compiled Branch.Pattern.
type pattern struct {
	literal  string
	variable string
}

func parsePattern(s string) (*pattern, error) {
	s = strings.TrimSpace(s)
	if strings.ContainsAny(s, " \t\r\n") {
		return nil, errPatternSpace
	}
	if strings.HasPrefix(s, "?") {
		if len(s) == 1 {
			return nil, errPatternVariable
		}
		return &pattern{variable: s[1:]}, nil
	}
	return &pattern{literal: strings.ToLower(s)}, nil
}

// match returns the bindings (possibly empty) if the input matches.
func (p *pattern) match(input string) (Bindings, bool) {
	switch {
	case p.variable != "":
		n, err := strconv.ParseUint(input, 10, 64)
		if err != nil {
			return nil, false
		}
		return Bindings{p.variable: n}, true
	case p.literal == "":
		return Bindings{}, true
	default:
		if input != p.literal {
			return nil, false
		}
		return Bindings{}, true
	}
}
