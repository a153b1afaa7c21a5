package machine

import (
	"fmt"
)

// State is the current position of a session.
//
// The zero State isn't a state at all, which lets Spec.Compile catch
// a Branch that forgot its Target.
type State int

const (
	MainMenu State = iota + 1
	BuyMenu
	FillWater
	FillMilk
	FillBeans
	FillCups
	Exit
)

// States lists every State.
var States = []State{MainMenu, BuyMenu, FillWater, FillMilk, FillBeans, FillCups, Exit}

var stateNames = map[State]string{
	MainMenu:  "mainMenu",
	BuyMenu:   "buyMenu",
	FillWater: "fillWater",
	FillMilk:  "fillMilk",
	FillBeans: "fillBeans",
	FillCups:  "fillCups",
	Exit:      "exit",
}

func (s State) String() string {
	if name, have := stateNames[s]; have {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Valid reports whether s is one of the States.
func (s State) Valid() bool {
	_, have := stateNames[s]
	return have
}

// ParseState is the inverse of String.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

func (s State) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("can't marshal %s", s)
	}
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(bs []byte) error {
	x, err := ParseState(string(bs))
	if err != nil {
		return err
	}
	*s = x
	return nil
}
