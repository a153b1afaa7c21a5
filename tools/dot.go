package tools

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/Comcast/vend/machine"
)

// Dot makes a Graphviz dot file for the given Spec.
//
// The optional from and to can be States during a transition.  If
// non-zero, then the from -> to edges will be red and the to node
// will be red.
func Dot(spec *machine.Spec, w io.Writer, from, to machine.State) error {
	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=TB,nodesep=0.3,ranksep=0.6]
  node [shape="record" style="rounded,filled"]
  edge [fontsize = "12"]
`)

	node := func(at machine.State, n *machine.Node) {
		label := at.String()
		if doc := firstSentence(n.Doc); doc != "" {
			label += "<BR/><FONT POINT-SIZE='8'>" + escHTML(doc) + "</FONT>"
		}
		var (
			color     = "black"
			fillcolor = "#99ddc8"
			style     = "filled"
		)
		if n.Terminal(at) {
			style += ",dashed"
			fillcolor = "#52aa5e"
		}
		if at == spec.Initial {
			style += ",bold"
		}
		if at == to {
			color = "red"
			fillcolor = "#f98b8b"
		}
		fmt.Fprintf(w, "  %s [shape=\"record\", style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			at, style, color, fillcolor, label)
	}

	edge := func(src, dst machine.State, label, color string) {
		if src == from && dst == to {
			color = "red"
		}
		fmt.Fprintf(w, "  %s -> %s [ color=\"%s\" label = <%s> ]\n",
			src, dst, color, label)
	}

	states := spec.SortedStates()
	for _, at := range states {
		node(at, spec.Nodes[at])
	}

	for _, at := range states {
		n := spec.Nodes[at]
		for i, b := range n.Branches {
			label := fmt.Sprintf("%d/%d %s", i+1, len(n.Branches), patternLabel(b.Pattern))
			if b.Action != nil {
				label += `<BR ALIGN="LEFT"/><FONT POINT-SIZE="8">` + escHTML(b.Action.Name) + `</FONT>`
			}
			edge(at, b.Target, label, "black")
			if b.Action != nil && b.ErrorTarget != b.Target {
				edge(at, b.ErrorTarget, label+" (error)", "orange")
			}
		}
		if o := n.Otherwise; o != nil {
			edge(at, o.Target, "otherwise", "gray")
		}
	}

	fmt.Fprintf(w, "}\n")
	return nil
}

// PNG generates a PNG image based on output from Dot.
//
// This function with write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(spec *machine.Spec, basename string, from, to machine.State) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(spec, dotfile, from, to); err != nil {
		dotfile.Close()
		return pngname, err
	}
	if err := dotfile.Close(); err != nil {
		return pngname, err
	}
	if err := exec.Command("dot", "-Tpng", "-o", pngname, dotname).Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

// patternLabel renders a Branch pattern for a graph.
func patternLabel(p string) string {
	if p == "" {
		return "*"
	}
	return escHTML(p)
}

// firstSentence trims long docs at the first period.
func firstSentence(doc string) string {
	if 40 < len(doc) {
		if period := strings.Index(doc, ". "); 0 < period {
			doc = doc[0 : period+1]
		}
	}
	return doc
}

func escHTML(s string) string {
	s = strings.Replace(s, "&", `&amp;`, -1)
	s = strings.Replace(s, "<", `&lt;`, -1)
	s = strings.Replace(s, ">", `&gt;`, -1)
	return s
}
