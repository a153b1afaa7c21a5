package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Comcast/vend/catalog"
)

func TestSubcommands(t *testing.T) {
	for _, sub := range []string{"dot", "mermaid", "html", "json", "analyze", "recipes"} {
		t.Run(sub, func(t *testing.T) {
			out := &bytes.Buffer{}
			if err := run([]string{sub}, out); err != nil {
				t.Fatal(err)
			}
			if out.Len() == 0 {
				t.Fatal("no output")
			}
		})
	}
}

func TestRecipesRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "recipes.csv")
	if err := ioutil.WriteFile(src, []byte("Mocha,300,50,18,1,8\n"), 0644); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if err := run([]string{"recipes", src}, out); err != nil {
		t.Fatal(err)
	}

	dst := filepath.Join(dir, "recipes.yaml")
	if err := ioutil.WriteFile(dst, out.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := catalog.Load(dst)
	if err != nil {
		t.Fatal(err)
	}
	if len(c) != 1 || c[0] != (catalog.Recipe{Name: "Mocha", Water: 300, Milk: 50, Beans: 18, Cups: 1, Cost: 8}) {
		t.Fatalf("%+v", c)
	}
}

func TestUsage(t *testing.T) {
	if err := run(nil, &bytes.Buffer{}); err != errUsage {
		t.Fatal(err)
	}
	if err := run([]string{"paint"}, &bytes.Buffer{}); err != errUsage {
		t.Fatal(err)
	}
	err := run([]string{"recipes", "/nonexistent/recipes"}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "/nonexistent/recipes") {
		t.Fatalf("got %v", err)
	}
}
