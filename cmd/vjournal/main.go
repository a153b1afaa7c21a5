// Package main prints a vending machine's journal.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Comcast/vend/journal"
)

func main() {
	var (
		filename = flag.String("journal", "vend.db", "bbolt journal filename")
		since    = flag.Uint64("since", 0, "first sequence number to print")
		summary  = flag.Bool("summary", false, "print totals instead of entries")
		verbose  = flag.Bool("v", false, "verbose")
	)
	flag.Parse()

	if err := run(context.Background(), *filename, *since, *summary, *verbose, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, filename string, since uint64, summary, verbose bool, out io.Writer) error {
	if _, err := os.Stat(filename); err != nil {
		return err
	}

	j := journal.NewJournal(filename)
	j.Debug = verbose
	if err := j.Open(ctx); err != nil {
		return err
	}
	defer j.Close(ctx)

	es, err := j.Entries(ctx, since)
	if err != nil {
		return err
	}

	if summary {
		js, err := json.MarshalIndent(journal.Summarize(es), "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n", js)
		return err
	}

	enc := json.NewEncoder(out)
	for _, e := range es {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
