package main

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestScenarios(t *testing.T) {
	files, err := filepath.Glob("../../scenarios/*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no scenarios")
	}
	out := &bytes.Buffer{}
	if failed := run(files, time.Second, false, out); failed != 0 {
		t.Fatal(out.String())
	}
}

func TestFailure(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "bad.yaml")
	src := "steps:\n  - input: take\n    output: nothing\n"
	if err := ioutil.WriteFile(filename, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	out := &bytes.Buffer{}
	if failed := run([]string{filename, "missing.yaml"}, time.Second, false, out); failed != 2 {
		t.Fatalf("failed %d: %s", failed, out)
	}
	if !strings.Contains(out.String(), "step 0") {
		t.Fatal(out.String())
	}
}
