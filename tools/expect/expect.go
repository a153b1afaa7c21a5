/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
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

// Package expect is a tool for testing a vending machine with
// scripted sessions.
//
// You construct a Session, which has inputs and expected results.
// Then run the session to see if what was expected actually
// happened.
//
// Specifying what's expected can be simple, as in some literal
// output, or fairly fancy, as in Javascript that examines the store.
//
// See ../../cmd/vexpect for command-line use.
package expect

import (
	"context"
	"fmt"
	"io/ioutil"
	"log"
	"regexp"

	"github.com/Comcast/vend/catalog"
	"github.com/Comcast/vend/machine"
	"github.com/Comcast/vend/store"

	"github.com/jsccast/yaml"
)

// Step is one line of input and what should follow from it.
type Step struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Input is the line to give to the Machine.
	Input string `json:"input" yaml:"input"`

	// Output is an optional regular expression that the Step's
	// output must match.
	Output string `json:"output,omitempty" yaml:"output,omitempty"`

	// Error is an optional regular expression that the Step's
	// error must match.  When Error is empty, the Step must not
	// return an error.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// State is the optional name of the State the Machine
	// should be in after the Step.
	State string `json:"state,omitempty" yaml:"state,omitempty"`

	// Check is optional Javascript that must return true.  See
	// Check.
	Check string `json:"check,omitempty" yaml:"check,omitempty"`
}

// Session is mostly a sequence of Steps.
type Session struct {
	// Doc is an opaque documentation string.
	Doc string `json:"doc,omitempty" yaml:"doc,omitempty"`

	// Recipes is the catalog to use.  Defaults to
	// catalog.Default().
	Recipes catalog.Catalog `json:"recipes,omitempty" yaml:"recipes,omitempty"`

	// Levels, if given, is the initial store.  Defaults to
	// store.DefaultLevels.
	Levels *store.Levels `json:"levels,omitempty" yaml:"levels,omitempty"`

	// Steps is the sequence of Steps that this session will run.
	Steps []Step `json:"steps" yaml:"steps"`

	Verbose bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Failure reports the first Step that didn't go as expected.
type Failure struct {
	Step  int
	Input string
	Msg   string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("step %d (%q): %s", f.Step, f.Input, f.Msg)
}

// ReadSession reads a YAML (or JSON) Session from the given file.
func ReadSession(filename string) (*Session, error) {
	bs, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return ParseSession(bs)
}

// ParseSession parses a YAML (or JSON) Session.
func ParseSession(bs []byte) (*Session, error) {
	var s Session
	if err := yaml.Unmarshal(bs, &s); err != nil {
		return nil, err
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("session has no steps")
	}
	return &s, nil
}

func (s *Session) logf(format string, args ...interface{}) {
	if s.Verbose {
		log.Printf("Session."+format, args...)
	}
}

// Machine makes the Machine that the Session will run.
func (s *Session) Machine() (*machine.Machine, error) {
	recipes := s.Recipes
	if len(recipes) == 0 {
		recipes = catalog.Default()
	}
	st := store.New()
	if s.Levels != nil {
		var err error
		if st, err = store.NewWith(*s.Levels); err != nil {
			return nil, err
		}
	}
	return machine.NewVending(recipes, st)
}

// Run processes all the Steps in the Session against a new Machine.
//
// The returned Machine is useful for diagnostics.
func (s *Session) Run(ctx context.Context) (*machine.Machine, error) {
	m, err := s.Machine()
	if err != nil {
		return nil, err
	}

	for i, step := range s.Steps {
		select {
		case <-ctx.Done():
			return m, ctx.Err()
		default:
		}

		fail := func(format string, args ...interface{}) error {
			return &Failure{
				Step:  i,
				Input: step.Input,
				Msg:   fmt.Sprintf(format, args...),
			}
		}

		stride, err := m.Step(ctx, step.Input)
		if err != nil && !machine.IsRecoverable(err) {
			return m, err
		}
		s.logf("Run step %d %q -> %s", i, step.Input, m.State())

		var output, errMsg string
		if stride != nil {
			output = stride.Output
		}
		if err != nil {
			errMsg = err.Error()
		}

		if step.Error == "" {
			if err != nil {
				return m, fail("unexpected error %q", errMsg)
			}
		} else {
			if err == nil {
				return m, fail("expected error %q", step.Error)
			}
			if matched, err := regexp.MatchString(step.Error, errMsg); err != nil {
				return m, fail("bad error pattern: %s", err)
			} else if !matched {
				return m, fail("error %q doesn't match %q", errMsg, step.Error)
			}
		}

		if step.Output != "" {
			if matched, err := regexp.MatchString(step.Output, output); err != nil {
				return m, fail("bad output pattern: %s", err)
			} else if !matched {
				return m, fail("output %q doesn't match %q", output, step.Output)
			}
		}

		if step.State != "" {
			want, err := machine.ParseState(step.State)
			if err != nil {
				return m, fail("%s", err)
			}
			if m.State() != want {
				return m, fail("state %s, expected %s", m.State(), want)
			}
		}

		if step.Check != "" {
			env := Env(m, stride, errMsg)
			ok, err := Check(ctx, step.Check, env)
			if err != nil {
				return m, fail("check error: %s", err)
			}
			if !ok {
				return m, fail("check failed")
			}
		}
	}

	return m, nil
}
