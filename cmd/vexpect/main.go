// Package main runs scripted vending-machine sessions.
//
//	vexpect scenarios/*.yaml
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/Comcast/vend/tools/expect"
)

func main() {
	var (
		timeout = flag.Duration("t", 10*time.Second, "timeout per session")
		verbose = flag.Bool("v", false, "verbose")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintf(os.Stderr, "usage: vexpect [-t TIMEOUT] [-v] FILE...\n")
		os.Exit(1)
	}

	if failed := run(flag.Args(), *timeout, *verbose, os.Stdout); 0 < failed {
		os.Exit(1)
	}
}

// run runs the sessions in the given files and returns the number
// that failed.
func run(filenames []string, timeout time.Duration, verbose bool, out io.Writer) int {
	failed := 0
	for _, filename := range filenames {
		if err := runFile(filename, timeout, verbose); err != nil {
			fmt.Fprintf(out, "FAIL %s: %v\n", filename, err)
			failed++
			continue
		}
		fmt.Fprintf(out, "ok   %s\n", filename)
	}
	return failed
}

func runFile(filename string, timeout time.Duration, verbose bool) error {
	s, err := expect.ReadSession(filename)
	if err != nil {
		return err
	}
	s.Verbose = s.Verbose || verbose

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	m, err := s.Run(ctx)
	if err != nil {
		return err
	}
	if verbose {
		log.Printf("%s final state %s %s", filename, m.State(), m.Levels().String())
	}
	return nil
}
