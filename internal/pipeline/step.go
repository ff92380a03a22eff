package pipeline

import (
	"context"
)

// stepFunc adapts a function to the Step interface.
type stepFunc struct {
	name   string
	reads  []Slot
	writes Slot
	run    func(ctx context.Context, rc *Context) (Value, error)
}

// NewStep builds a Step from a function and its declared slot contract.
func NewStep(
	name string,
	reads []Slot,
	writes Slot,
	run func(ctx context.Context, rc *Context) (Value, error),
) Step {
	return &stepFunc{
		name:   name,
		reads:  reads,
		writes: writes,
		run:    run,
	}
}

func (s *stepFunc) Name() string {
	return s.name
}

func (s *stepFunc) Reads() []Slot {
	return s.reads
}

func (s *stepFunc) Writes() Slot {
	return s.writes
}

func (s *stepFunc) Run(ctx context.Context, rc *Context) (Value, error) {
	return s.run(ctx, rc)
}
