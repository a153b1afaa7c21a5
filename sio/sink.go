package sio

import (
	"context"
	"fmt"
	"log"

	"github.com/Comcast/vend/machine"
)

// Sink consumes Events emitted by a Machine.
//
// A journal.Journal is a Sink.
type Sink interface {
	Emit(ctx context.Context, ev machine.Event) error
}

// Sinks fans Events out to several Sinks.
type Sinks []Sink

// Emit gives the Event to every Sink in order and stops at the first
// error.
func (ss Sinks) Emit(ctx context.Context, ev machine.Event) error {
	for i, s := range ss {
		if err := s.Emit(ctx, ev); err != nil {
			return fmt.Errorf("sink %d (%T): %w", i, s, err)
		}
	}
	return nil
}

// LogSink writes each Event to the log.
type LogSink struct {
	Prefix string
}

func (s *LogSink) Emit(ctx context.Context, ev machine.Event) error {
	log.Printf("%semit %s", s.Prefix, JS(ev))
	return nil
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, ev machine.Event) error

func (f SinkFunc) Emit(ctx context.Context, ev machine.Event) error {
	return f(ctx, ev)
}
