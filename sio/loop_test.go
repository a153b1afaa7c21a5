package sio

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Comcast/vend/catalog"
	"github.com/Comcast/vend/machine"
	"github.com/Comcast/vend/store"
)

const mainPrompt = "Write action (buy, fill, take, remaining, exit): "

func newMachine(t *testing.T) *machine.Machine {
	m, err := machine.NewVending(catalog.Default(), store.New())
	if err != nil {
		t.Fatal(err)
	}
	return m
}

type collector struct {
	events []machine.Event
}

func (c *collector) Emit(ctx context.Context, ev machine.Event) error {
	c.events = append(c.events, ev)
	return nil
}

func TestLoopSession(t *testing.T) {
	var (
		m    = newMachine(t)
		out  = &bytes.Buffer{}
		col  = &collector{}
		loop = &Loop{
			Machine: m,
			In:      strings.NewReader("buy\n1\nTAKE\nnope\nexit\nbuy\n"),
			Out:     out,
			Sinks:   Sinks{col},
		}
	)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := mainPrompt +
		"Choose coffee (1 - Espresso, 2 - Latte, 3 - Cappuccino, back): " +
		"I make you a coffee!\n" +
		mainPrompt +
		"I give you 554$\n" +
		mainPrompt +
		"Incorrect input\n" +
		mainPrompt +
		"Goodbye!\n"

	if got := out.String(); got != want {
		t.Fatalf("got\n%q\nwant\n%q", got, want)
	}

	if len(col.events) != 2 {
		t.Fatalf("events %v", col.events)
	}
	if ev := col.events[0]; ev.Kind != machine.EventPurchase || ev.Recipe != "Espresso" {
		t.Fatalf("first event %+v", ev)
	}
	if ev := col.events[1]; ev.Kind != machine.EventTake || ev.Money != 554 {
		t.Fatalf("second event %+v", ev)
	}
}

func TestLoopEOF(t *testing.T) {
	var (
		m    = newMachine(t)
		out  = &bytes.Buffer{}
		loop = &Loop{
			Machine: m,
			In:      strings.NewReader("fill\n100"),
			Out:     out,
		}
	)

	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if m.State() != machine.FillMilk {
		t.Fatalf("state %s", m.State())
	}
	if m.Levels().Water != 500 {
		t.Fatalf("water %d", m.Levels().Water)
	}
	if !strings.HasSuffix(out.String(), "Input milk in millilitres (10000 max): \n") {
		t.Fatalf("output %q", out.String())
	}
}

func TestLoopEcho(t *testing.T) {
	var (
		out  = &bytes.Buffer{}
		loop = &Loop{
			Machine:   newMachine(t),
			In:        strings.NewReader("exit\n"),
			Out:       out,
			EchoInput: true,
		}
	)
	if err := loop.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if want := mainPrompt + "exit\nGoodbye!\n"; out.String() != want {
		t.Fatalf("got %q", out.String())
	}
}

func TestLoopSinkError(t *testing.T) {
	var (
		broken = errors.New("broken")
		loop   = &Loop{
			Machine: newMachine(t),
			In:      strings.NewReader("take\nexit\n"),
			Out:     &bytes.Buffer{},
			Sinks: Sinks{SinkFunc(func(ctx context.Context, ev machine.Event) error {
				return broken
			})},
		}
	)
	if err := loop.Run(context.Background()); !errors.Is(err, broken) {
		t.Fatalf("expected broken, got %v", err)
	}
}

func TestLoopCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	loop := &Loop{
		Machine: newMachine(t),
		In:      strings.NewReader("remaining\n"),
		Out:     &bytes.Buffer{},
	}
	if err := loop.Run(ctx); err != context.Canceled {
		t.Fatalf("expected Canceled, got %v", err)
	}
}

func TestTurnErrors(t *testing.T) {
	m := newMachine(t)
	ctx := context.Background()

	reply, err := Turn(ctx, m, nil, "fill")
	if err != nil || reply != "" {
		t.Fatalf("%q %v", reply, err)
	}
	if reply, err = Turn(ctx, m, nil, "20000"); err != nil {
		t.Fatal(err)
	}
	if reply != "Too much water" {
		t.Fatalf("reply %q", reply)
	}
	if m.State() != machine.FillWater {
		t.Fatalf("state %s", m.State())
	}
}
