/* Copyright 2019 Comcast Cable Communications Management, LLC
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

// Package main is an interactive vending machine that reads from
// stdin and writes to stdout (or serves a WebSocket console).
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/Comcast/vend/catalog"
	"github.com/Comcast/vend/journal"
	"github.com/Comcast/vend/machine"
	"github.com/Comcast/vend/sio"
	"github.com/Comcast/vend/store"
)

// Opts holds the command-line options.
type Opts struct {
	Recipes string
	Journal string
	IO      string
	WSAddr  string

	MQTTBroker   string
	MQTTTopic    string
	MQTTClientID string

	Echo    bool
	Verbose bool
}

func (opts *Opts) flags(fs *flag.FlagSet) {
	fs.StringVar(&opts.Recipes, "recipes", "", "Optional recipe catalog (name,water,milk,beans,cups,cost lines or YAML)")
	fs.StringVar(&opts.Journal, "journal", "", "Optional bbolt journal filename for sales, fills, and withdrawals")
	fs.StringVar(&opts.IO, "io", "std", `IO: "std" or "ws"`)
	fs.StringVar(&opts.WSAddr, "ws-addr", "localhost:8080", "WebSocket console address (for -io ws)")
	fs.StringVar(&opts.MQTTBroker, "mqtt-broker", "", "Optional MQTT broker (e.g. tcp://localhost:1883) for events")
	fs.StringVar(&opts.MQTTTopic, "mqtt-topic", "vend/events", "MQTT topic for events")
	fs.StringVar(&opts.MQTTClientID, "mqtt-client-id", "vend", "MQTT client id")
	fs.BoolVar(&opts.Echo, "e", false, "Echo input")
	fs.BoolVar(&opts.Verbose, "v", false, "Verbose")
}

func main() {
	opts := &Opts{}
	opts.flags(flag.CommandLine)
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt)
		<-sigs
		log.Printf("interrupted")
		cancel()
	}()

	if err := opts.run(ctx, os.Stdin, os.Stdout); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}

func (opts *Opts) catalog() (catalog.Catalog, error) {
	if opts.Recipes == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(opts.Recipes)
}

func (opts *Opts) run(ctx context.Context, in io.Reader, out io.Writer) error {
	recipes, err := opts.catalog()
	if err != nil {
		return err
	}
	if opts.Verbose {
		log.Printf("recipes: %s", sio.JS(recipes.Names()))
	}

	m, err := machine.NewVending(recipes, store.New())
	if err != nil {
		return err
	}

	var sinks sio.Sinks
	if opts.Verbose {
		sinks = append(sinks, &sio.LogSink{})
	}

	if opts.Journal != "" {
		j := journal.NewJournal(opts.Journal)
		j.Debug = opts.Verbose
		if err := j.Open(ctx); err != nil {
			return fmt.Errorf("journal %s: %w", opts.Journal, err)
		}
		defer func() {
			if err := j.Close(context.Background()); err != nil {
				log.Printf("journal close error %s", err)
			}
		}()
		sinks = append(sinks, j)
	}

	if opts.MQTTBroker != "" {
		mq := sio.NewMQTTSink(opts.MQTTBroker, opts.MQTTClientID, opts.MQTTTopic)
		if err := mq.Start(ctx); err != nil {
			return fmt.Errorf("mqtt %s: %w", opts.MQTTBroker, err)
		}
		defer mq.Stop(context.Background())
		sinks = append(sinks, mq)
	}

	switch opts.IO {
	case "std", "":
		loop := &sio.Loop{
			Machine:   m,
			In:        in,
			Out:       out,
			Sinks:     sinks,
			EchoInput: opts.Echo,
			Verbose:   opts.Verbose,
		}
		return loop.Run(ctx)
	case "ws":
		c := sio.NewWebSocketConsole(m, sinks)
		c.Verbose = opts.Verbose
		return c.ListenAndServe(ctx, opts.WSAddr)
	default:
		return fmt.Errorf("unknown io: '%s'", opts.IO)
	}
}
