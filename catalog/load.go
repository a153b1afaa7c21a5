package catalog

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// NumFields is the number of comma-separated fields in a recipe
// line: name,water,milk,beans,cups,cost.
const NumFields = 6

// LoadError reports a recipe source that could not be loaded.
//
// Line is the 1-based line number for the line format and the 1-based
// entry number for YAML.  Line is zero when the problem isn't tied to
// a specific line (say, an empty catalog).
type LoadError struct {
	Source string
	Line   int
	Msg    string
	Err    error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	b.WriteString("recipe catalog")
	if e.Source != "" {
		b.WriteString(" " + strconv.Quote(e.Source))
	}
	if 0 < e.Line {
		fmt.Fprintf(&b, " line %d", e.Line)
	}
	b.WriteString(": " + e.Msg)
	if e.Err != nil {
		b.WriteString(": " + e.Err.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Parse reads recipes in the line format.
//
// Each line is "name,water,milk,beans,cups,cost".  Fields are
// trimmed.  Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (Catalog, error) {
	var (
		acc  = make(Catalog, 0, 8)
		in   = bufio.NewScanner(r)
		line = 0
	)
	for in.Scan() {
		line++
		s := strings.TrimSpace(in.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		rec, err := parseLine(s)
		if err != nil {
			err.Line = line
			return nil, err
		}
		acc = append(acc, rec)
	}
	if err := in.Err(); err != nil {
		return nil, &LoadError{Msg: "read failed", Err: err}
	}
	if len(acc) == 0 {
		return nil, &LoadError{Msg: "no recipes"}
	}
	return acc, nil
}

func parseLine(s string) (Recipe, *LoadError) {
	fields := strings.Split(s, ",")
	if len(fields) != NumFields {
		return Recipe{}, &LoadError{
			Msg: fmt.Sprintf("want %d fields, got %d", NumFields, len(fields)),
		}
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	r := Recipe{Name: fields[0]}
	if r.Name == "" {
		return Recipe{}, &LoadError{Msg: "empty name"}
	}

	targets := []struct {
		name string
		dst  *uint64
	}{
		{"water", &r.Water},
		{"milk", &r.Milk},
		{"beans", &r.Beans},
		{"cups", &r.Cups},
		{"cost", &r.Cost},
	}
	for i, t := range targets {
		n, err := strconv.ParseUint(fields[i+1], 10, 64)
		if err != nil {
			return Recipe{}, &LoadError{
				Msg: fmt.Sprintf("bad %s %q", t.name, fields[i+1]),
				Err: err,
			}
		}
		*t.dst = n
	}

	return r, nil
}

// ParseYAML reads recipes from a YAML list of maps with the keys
// name, water, milk, beans, cups, and cost.
func ParseYAML(bs []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.UnmarshalStrict(bs, &c); err != nil {
		return nil, &LoadError{Msg: "bad YAML", Err: err}
	}
	if len(c) == 0 {
		return nil, &LoadError{Msg: "no recipes"}
	}
	for i := range c {
		c[i].Name = strings.TrimSpace(c[i].Name)
		if c[i].Name == "" {
			return nil, &LoadError{Line: i + 1, Msg: "empty name"}
		}
	}
	return c, nil
}

// Load reads the given file.  Files ending in ".yaml" or ".yml" are
// parsed with ParseYAML; everything else with Parse.
func Load(filename string) (Catalog, error) {
	bs, err := os.ReadFile(filename)
	if err != nil {
		return nil, &LoadError{Source: filename, Msg: "read failed", Err: err}
	}

	var c Catalog
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		c, err = ParseYAML(bs)
	default:
		c, err = Parse(bytes.NewReader(bs))
	}
	if err != nil {
		if le, is := err.(*LoadError); is {
			le.Source = filename
		}
		return nil, err
	}
	return c, nil
}
