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

// Package sio couples a Machine to the outside world: a console on
// stdin/stdout, a WebSocket console, and Sinks for emitted Events.
package sio

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/Comcast/vend/machine"
)

// Turn gives one line to the Machine, forwards emitted Events to the
// Sinks, and returns the text to show the operator.
//
// A recoverable Machine error is rendered into the reply.  Anything
// else is returned.
func Turn(ctx context.Context, m *machine.Machine, sinks Sinks, line string) (string, error) {
	stride, err := m.Step(ctx, line)
	if err != nil && !machine.IsRecoverable(err) {
		return "", err
	}

	var lines []string
	if stride != nil {
		if stride.Output != "" {
			lines = append(lines, stride.Output)
		}
		for _, ev := range stride.Emitted {
			if err := sinks.Emit(ctx, ev); err != nil {
				return "", err
			}
		}
	}
	if err != nil {
		lines = append(lines, err.Error())
	}

	return strings.Join(lines, "\n"), nil
}

// Loop is a console that reads lines from In and writes prompts and
// replies to Out.
type Loop struct {
	Machine *machine.Machine

	// In is the source of operator input.
	In io.Reader

	// Out gets prompts and replies.
	Out io.Writer

	// Sinks get emitted Events.
	Sinks Sinks

	// EchoInput writes each input line to Out.  Handy when In
	// isn't a terminal.
	EchoInput bool

	// Verbose logs each Stride.
	Verbose bool
}

// NewLoop makes a Loop on stdin and stdout.
func NewLoop(m *machine.Machine) *Loop {
	return &Loop{
		Machine: m,
		In:      os.Stdin,
		Out:     os.Stdout,
	}
}

func (l *Loop) logf(format string, args ...interface{}) {
	if l.Verbose {
		log.Printf("Loop."+format, args...)
	}
}

// Run processes input until the Machine is done, the input ends, or
// the context is canceled.
//
// Reaching the end of input is not an error.
func (l *Loop) Run(ctx context.Context) error {
	in := bufio.NewReader(l.In)
	for {
		if l.Machine.Done() {
			_, err := fmt.Fprintln(l.Out, l.Machine.Prompt())
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if _, err := fmt.Fprint(l.Out, l.Machine.Prompt()); err != nil {
			return err
		}

		line, err := in.ReadString('\n')
		if err == io.EOF && line == "" {
			l.logf("Run input EOF")
			_, err = fmt.Fprintln(l.Out)
			return err
		}
		if err != nil && err != io.EOF {
			return err
		}
		if l.EchoInput {
			fmt.Fprintln(l.Out, strings.TrimRight(line, "\r\n"))
		}

		from := l.Machine.State()
		reply, err := Turn(ctx, l.Machine, l.Sinks, line)
		if err != nil {
			return err
		}
		l.logf("Run %s -> %s %q", from, l.Machine.State(), reply)

		if reply != "" {
			if _, err = fmt.Fprintln(l.Out, reply); err != nil {
				return err
			}
		}
	}
}
