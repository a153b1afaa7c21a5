// Package main renders the vending machine's spec and checks recipe
// catalogs.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Comcast/vend/catalog"
	"github.com/Comcast/vend/machine"
	"github.com/Comcast/vend/tools"

	"gopkg.in/yaml.v2"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if err == errUsage {
			Usage()
		}
		os.Exit(1)
	}
}

var errUsage = fmt.Errorf("bad usage")

func run(args []string, out io.Writer) error {
	if len(args) < 1 {
		return errUsage
	}

	spec, err := machine.VendingSpec()
	if err != nil {
		return err
	}

	switch args[0] {
	case "dot":
		return tools.Dot(spec, out, 0, 0)
	case "mermaid":
		return tools.Mermaid(spec, out, &tools.MermaidOpts{
			ShowPatterns:  true,
			ShowOtherwise: true,
			ActionFill:    "#bcf2db",
		})
	case "html":
		return tools.RenderSpecPage(spec, out, nil, true)
	case "json":
		bs, err := json.MarshalIndent(spec, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", bs)
		return err
	case "analyze":
		bs, err := json.MarshalIndent(tools.Analyze(spec), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", bs)
		return err
	case "recipes":
		c := catalog.Default()
		if 1 < len(args) {
			if c, err = catalog.Load(args[1]); err != nil {
				return err
			}
		}
		bs, err := yaml.Marshal(&c)
		if err != nil {
			return err
		}
		_, err = out.Write(bs)
		return err
	default:
		return errUsage
	}
}

func Usage() {
	fmt.Fprintf(os.Stderr, `Subcommands:

  dot              Graphviz dot for the vending spec
  mermaid          Mermaid graph for the vending spec
  html             HTML page documenting the vending spec
  json             the vending spec as JSON
  analyze          structural analysis of the vending spec
  recipes [FILE]   check a recipe catalog and write it as YAML

`)
}
