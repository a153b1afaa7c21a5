package tools

import (
	"encoding/json"
	"fmt"
	"html"
	"io"

	"github.com/Comcast/vend/machine"

	md "github.com/russross/blackfriday/v2"
)

// RenderSpecHTML writes an HTML fragment documenting the Spec.  Docs
// are rendered as Markdown.
func RenderSpecHTML(s *machine.Spec, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="specDoc doc">%s</div>`, md.Run([]byte(s.Doc)))

	f(`<div class="nodes"><table>`)
	for _, at := range s.SortedStates() {
		node := s.Nodes[at]
		f(`<tr class="node"><td><span id="%s" class="nodeName">%s</span></td><td>`, at, at)

		if node.Doc != "" {
			f(`<div class="nodeDoc doc">%s</div>`, md.Run([]byte(node.Doc)))
		}
		if node.Prompt != "" {
			f(`<div class="prompt"><code>%s</code></div>`, html.EscapeString(node.Prompt))
		}
		f(`<div class="branches">`)
		f(`<table>`)
		for i, b := range node.Branches {
			f(`<tr><td><div class="branchNum">%d</div></td><td>`, i)
			f(`<table>`)
			if b.Doc != "" {
				f(`<tr><td></td><td>doc</td>`)
				f(`<td><div class="branchDoc doc">%s</div></td></tr>`, md.Run([]byte(b.Doc)))
			}
			f(`<tr><td></td><td>pattern</td>`)
			f(`<td><code>%s</code></td></tr>`, html.EscapeString(patternText(b.Pattern)))
			if b.Action != nil {
				f(`<tr><td></td><td>action</td>`)
				f(`<td><code>%s</code></td></tr>`, html.EscapeString(b.Action.Name))
				f(`<tr><td></td><td>on error</td>`)
				f(`<td><a href="#%s"><code>%s</code></a></td></tr>`, b.ErrorTarget, b.ErrorTarget)
			}
			f(`<tr><td></td><td>target</td>`)
			f(`<td><a href="#%s"><code>%s</code></a></td></tr>`, b.Target, b.Target)
			f(`</table>`)
			f(`</td></tr>`)
		}
		if o := node.Otherwise; o != nil {
			f(`<tr><td><div class="branchNum">otherwise</div></td><td>`)
			f(`<table>`)
			if o.Message != "" {
				f(`<tr><td></td><td>message</td>`)
				f(`<td><code>%s</code></td></tr>`, html.EscapeString(o.Message))
			}
			f(`<tr><td></td><td>target</td>`)
			f(`<td><a href="#%s"><code>%s</code></a></td></tr>`, o.Target, o.Target)
			f(`</table>`)
			f(`</td></tr>`)
		}
		f(`</table>`)
		f(`</div>`)
		f(`</td></tr>`)
	}
	f(`</table></div>`)

	return nil
}

func patternText(p string) string {
	if p == "" {
		return "(anything)"
	}
	return p
}

// RenderSpecPage writes a complete HTML page for the Spec.
//
// When includeGraph is true, the page carries the Spec as JSON and
// a Mermaid rendering of it.
func RenderSpecPage(s *machine.Spec, out io.Writer, cssFiles []string, includeGraph bool) error {
	if cssFiles == nil {
		cssFiles = []string{"/static/spec-html.css"}
	}

	js, err := json.Marshal(s)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html.EscapeString(s.Name))

	if includeGraph {
		fmt.Fprintf(out, `
  <script src="https://cdn.jsdelivr.net/npm/mermaid/dist/mermaid.min.js"></script>
  <script>
  var thisSpec = %s;
  mermaid.initialize({startOnLoad:true});
  </script>
`, js)
	}

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html.EscapeString(s.Name))

	if includeGraph {
		fmt.Fprintf(out, "<div class=\"mermaid\">\n")
		if err = Mermaid(s, out, nil); err != nil {
			return err
		}
		fmt.Fprintf(out, "</div>\n")
	}

	if err = RenderSpecHTML(s, out); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, `
  </body>
</html>
`)

	return err
}
