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
	"fmt"
	"io"
	"strings"

	"github.com/Comcast/vend/machine"
)

type MermaidOpts struct {
	// ShowPatterns will result in a branch label that's the
	// branch pattern.
	ShowPatterns bool `json:"showPatterns"`

	// ShowOtherwise adds edges for input that no branch
	// matches.
	ShowOtherwise bool `json:"showOtherwise"`

	// ActionFill is the fill color for states that have a branch
	// with an action.
	ActionFill string `json:"actionFill,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given Spec.
func Mermaid(spec *machine.Spec, w io.Writer, opts *MermaidOpts) error {
	if opts == nil {
		opts = &MermaidOpts{
			ShowPatterns: true,
			ActionFill:   "#bcf2db",
		}
	}

	fmt.Fprintf(w, "graph TB\n")

	states := spec.SortedStates()
	for _, at := range states {
		n := spec.Nodes[at]
		hasAction := false
		for _, b := range n.Branches {
			if b.Action != nil {
				hasAction = true
			}
		}
		if hasAction {
			fmt.Fprintf(w, "  %s[\"%s\"]\n", at, at)
			if opts.ActionFill != "" {
				fmt.Fprintf(w, "  style %s fill:%s\n", at, opts.ActionFill)
			}
		} else {
			fmt.Fprintf(w, "  %s(\"%s\")\n", at, at)
		}
	}

	for _, at := range states {
		n := spec.Nodes[at]
		for _, b := range n.Branches {
			label := ""
			if opts.ShowPatterns {
				p := b.Pattern
				if p == "" {
					p = "*"
				}
				label = fmt.Sprintf(`-- "%s"`, strings.Replace(p, `"`, `'`, -1))
			}
			fmt.Fprintf(w, "  %s %s --> %s\n", at, label, b.Target)
			if b.Action != nil && b.ErrorTarget != b.Target {
				fmt.Fprintf(w, "  %s -. error .-> %s\n", at, b.ErrorTarget)
			}
		}
		if opts.ShowOtherwise && n.Otherwise != nil {
			fmt.Fprintf(w, "  %s -. otherwise .-> %s\n", at, n.Otherwise.Target)
		}
	}

	_, err := fmt.Fprintf(w, "\n")
	return err
}
