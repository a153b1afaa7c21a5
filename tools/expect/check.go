package expect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/Comcast/vend/machine"

	"github.com/dop251/goja"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Check if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)
)

// Env builds the environment that a Check sees at _.
//
//	state: the name of the Machine's State.
//	input: the normalized input.
//	output: the Step's output.
//	error: the Step's error message (or "").
//	levels: the store's levels (water, milk, beans, cups, money).
//	emitted: the list of emitted events.
func Env(m *machine.Machine, stride *machine.Stride, errMsg string) map[string]interface{} {
	env := map[string]interface{}{
		"state":   m.State().String(),
		"error":   errMsg,
		"levels":  canonicalize(m.Levels()),
		"emitted": []interface{}{},
	}
	if stride != nil {
		env["input"] = stride.Input
		env["output"] = stride.Output
		if 0 < len(stride.Emitted) {
			env["emitted"] = canonicalize(stride.Emitted)
		}
	}
	return env
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

// Check runs the given Javascript with the given environment at _.
// The code should return a boolean.  The function log(x) writes x as
// JSON to the log.
//
// Canceling the context interrupts the code.
func Check(ctx context.Context, src string, env map[string]interface{}) (bool, error) {
	p, err := goja.Compile("check", wrapSrc(src), true)
	if err != nil {
		return false, err
	}

	o := goja.New()
	o.Set("_", env)
	o.Set("log", func(x interface{}) interface{} {
		if v, is := x.(goja.Value); is {
			x = v.Export()
		}
		js, err := json.Marshal(&x)
		if err != nil {
			log.Println("check.log (can't marshal: " + err.Error() + ")")
		} else {
			log.Println(string(js))
		}
		return x
	})

	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		o.Interrupt(InterruptedMessage)
	}()

	v, err := o.RunProgram(p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return false, Interrupted
		}
		return false, err
	}

	switch vv := v.Export().(type) {
	case bool:
		return vv, nil
	default:
		return false, fmt.Errorf("%#v (%T) isn't a boolean", vv, vv)
	}
}

// canonicalize turns x into plain maps and lists via JSON.
func canonicalize(x interface{}) interface{} {
	js, err := json.Marshal(&x)
	if err != nil {
		panic(err)
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		panic(err)
	}
	return y
}
