package tools

import (
	"reflect"
	"testing"

	"github.com/Comcast/vend/machine"
)

func TestAnalyze(t *testing.T) {
	a := Analyze(vendingSpec(t))

	if a.NodeCount != 7 {
		t.Fatalf("nodes %d", a.NodeCount)
	}
	if a.Branches != 12 {
		t.Fatalf("branches %d", a.Branches)
	}
	if !reflect.DeepEqual(a.TerminalNodes, []machine.State{machine.Exit}) {
		t.Fatalf("terminal %v", a.TerminalNodes)
	}
	if len(a.Unreachable) != 0 || len(a.MissingStates) != 0 {
		t.Fatalf("%+v", a)
	}
	want := []string{"buy", "fill beans", "fill cups", "fill milk", "fill water", "goodbye", "remaining", "take"}
	if !reflect.DeepEqual(a.Actions, want) {
		t.Fatalf("actions %v", a.Actions)
	}
}

func TestAnalyzeUnreachable(t *testing.T) {
	spec := &machine.Spec{
		Initial: machine.MainMenu,
		Nodes: map[machine.State]*machine.Node{
			machine.MainMenu: {
				Branches: []*machine.Branch{
					{Pattern: "exit", Target: machine.Exit},
				},
			},
			machine.Exit:    {},
			machine.BuyMenu: {},
		},
	}
	a := Analyze(spec)
	if !reflect.DeepEqual(a.Unreachable, []machine.State{machine.BuyMenu}) {
		t.Fatalf("unreachable %v", a.Unreachable)
	}
	if len(a.MissingStates) != 4 {
		t.Fatalf("missing %v", a.MissingStates)
	}
	// MainMenu has no Otherwise, so bad input keeps it there, but
	// "exit" leaves.
	if !reflect.DeepEqual(a.TerminalNodes, []machine.State{machine.BuyMenu, machine.Exit}) {
		t.Fatalf("terminal %v", a.TerminalNodes)
	}
}
