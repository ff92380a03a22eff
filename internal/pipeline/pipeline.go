// Package pipeline runs a fixed ordered chain of research steps over a
// shared Context. Each step reads a declared subset of slots and writes
// exactly one; the orchestrator merges the result and moves on.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/porticohq/portico/internal/log"
)

// ErrEmptyTopology is returned when a pipeline is built with zero steps.
var ErrEmptyTopology = errors.New("pipeline has no steps")

// StepCrashError is a structural failure: a step escaped its own error
// handling. Capability failures never surface this way.
type StepCrashError struct {
	Step  string
	Panic any
}

func (e *StepCrashError) Error() string {
	return fmt.Sprintf("step %q crashed: %v", e.Step, e.Panic)
}

// Step is one unit of the chain. Reads and Writes declare the slot contract
// statically so New can verify that producers precede consumers.
type Step interface {
	// Name identifies the step in logs and errors.
	Name() string

	// Reads lists the slots the step may consume. Slots that no step in the
	// topology writes are treated as pipeline inputs.
	Reads() []Slot

	// Writes names the single slot the step produces.
	Writes() Slot

	// Run produces the value for the Writes slot. An error is a capability
	// failure at the step boundary; the orchestrator decides, per policy,
	// whether the run degrades or aborts.
	Run(ctx context.Context, rc *Context) (Value, error)
}

// FailurePolicy controls how the orchestrator reacts to a step's capability
// failure.
type FailurePolicy int

const (
	// ContinueDegraded substitutes a diagnostic placeholder into the failing
	// step's output slot and keeps going. A "successful" run may therefore
	// contain degraded content; partial availability wins over strictness.
	ContinueDegraded FailurePolicy = iota

	// AbortOnError stops the run at the first capability failure.
	AbortOnError
)

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithFailurePolicy sets the capability-failure policy.
func WithFailurePolicy(policy FailurePolicy) Option {
	return func(p *Pipeline) {
		p.policy = policy
	}
}

// WithStepTimeout bounds each step's capability call. Zero disables the
// bound. A timeout is treated like any other capability failure.
func WithStepTimeout(d time.Duration) Option {
	return func(p *Pipeline) {
		p.stepTimeout = d
	}
}

// Pipeline is a fixed, total chain Step₁ → … → Stepₙ → End. There is no
// branching or conditional routing.
type Pipeline struct {
	steps       []Step
	policy      FailurePolicy
	stepTimeout time.Duration
}

// New builds a Pipeline and verifies the topology: at least one step, no two
// steps writing the same slot, and no step reading a slot that only a later
// step produces.
func New(steps []Step, opts ...Option) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, ErrEmptyTopology
	}

	writers := make(map[Slot]int, len(steps))

	for i, step := range steps {
		slot := step.Writes()
		if j, ok := writers[slot]; ok {
			return nil, fmt.Errorf("steps %q and %q both write slot %q", steps[j].Name(), step.Name(), slot)
		}

		writers[slot] = i
	}

	for i, step := range steps {
		for _, slot := range step.Reads() {
			j, ok := writers[slot]
			if ok && j > i {
				return nil, fmt.Errorf("step %q reads slot %q before step %q writes it",
					step.Name(), slot, steps[j].Name())
			}

			if ok && j == i {
				return nil, fmt.Errorf("step %q reads its own output slot %q", step.Name(), slot)
			}
		}
	}

	p := &Pipeline{steps: steps}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// FinalSlot is the output slot of the last step, the externally returned
// artifact.
func (p *Pipeline) FinalSlot() Slot {
	return p.steps[len(p.steps)-1].Writes()
}

// Run executes the chain over rc. Cancellation is honored at step
// boundaries; an in-flight capability call is bounded by the step timeout.
func (p *Pipeline) Run(ctx context.Context, rc *Context) (*Context, error) {
	if rc == nil {
		rc = NewContext()
	}

	start := time.Now()

	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("pipeline canceled before step %q: %w", step.Name(), err)
		}

		value, err := p.runStep(ctx, step, rc)
		if err != nil {
			var crash *StepCrashError
			if errors.As(err, &crash) {
				return nil, err
			}

			if p.policy == AbortOnError {
				return nil, fmt.Errorf("step %q failed: %w", step.Name(), err)
			}

			// Degrade: the step's own slot records the failure and the
			// chain continues.
			log.Warn(ctx, "step degraded to placeholder",
				log.String("step", step.Name()),
				log.Cause(err),
			)

			value = StringValue(fmt.Sprintf("Connection Error: %v", err))
		}

		rc.Set(step.Writes(), value)

		log.Debug(ctx, "step completed",
			log.String("step", step.Name()),
			log.String("slot", string(step.Writes())),
		)
	}

	log.Info(ctx, "pipeline completed",
		log.Int("steps", len(p.steps)),
		log.Duration("elapsed", time.Since(start)),
	)

	return rc, nil
}

func (p *Pipeline) runStep(ctx context.Context, step Step, rc *Context) (value Value, err error) {
	if p.stepTimeout > 0 {
		var cancel context.CancelFunc

		ctx, cancel = context.WithTimeout(ctx, p.stepTimeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			err = &StepCrashError{Step: step.Name(), Panic: r}
		}
	}()

	return step.Run(ctx, rc)
}
