/* Copyright 2018 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package tools

import (
	"sort"

	"github.com/Comcast/vend/machine"
)

// SpecAnalysis reports some structural facts about a Spec.
type SpecAnalysis struct {
	NodeCount int
	Branches  int
	Actions   []string

	// TerminalNodes have no way out.
	TerminalNodes []machine.State

	// Unreachable nodes can't be reached from the initial State.
	Unreachable []machine.State

	// MissingStates are States that have no Node.
	MissingStates []machine.State
}

// Analyze examines the Spec.  The Spec need not be compiled.
func Analyze(s *machine.Spec) *SpecAnalysis {
	a := &SpecAnalysis{
		NodeCount: len(s.Nodes),
	}

	actions := make(map[string]bool)
	for _, at := range s.SortedStates() {
		n := s.Nodes[at]
		if n.Terminal(at) {
			a.TerminalNodes = append(a.TerminalNodes, at)
		}
		for _, b := range n.Branches {
			a.Branches++
			if b.Action != nil {
				actions[b.Action.Name] = true
			}
		}
	}
	for name := range actions {
		a.Actions = append(a.Actions, name)
	}
	sort.Strings(a.Actions)

	reached := Reachable(s)
	for _, st := range machine.States {
		_, have := s.Nodes[st]
		switch {
		case !have:
			a.MissingStates = append(a.MissingStates, st)
		case !reached[st]:
			a.Unreachable = append(a.Unreachable, st)
		}
	}

	return a
}

// Reachable finds the States that can be reached from the Spec's
// initial State.
func Reachable(s *machine.Spec) map[machine.State]bool {
	seen := make(map[machine.State]bool)
	var visit func(machine.State)
	visit = func(at machine.State) {
		if seen[at] {
			return
		}
		seen[at] = true
		n, have := s.Nodes[at]
		if !have {
			return
		}
		for _, b := range n.Branches {
			visit(b.Target)
			if b.Action != nil {
				visit(b.ErrorTarget)
			}
		}
		if n.Otherwise != nil {
			visit(n.Otherwise.Target)
		}
	}
	visit(s.Initial)
	return seen
}
