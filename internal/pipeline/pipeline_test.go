package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recordingStep(name string, reads []Slot, writes Slot, order *[]string) Step {
	return NewStep(name, reads, writes, func(_ context.Context, rc *Context) (Value, error) {
		*order = append(*order, name)
		return StringValue(name + "-output"), nil
	})
}

func TestNew(t *testing.T) {
	t.Run("empty topology", func(t *testing.T) {
		_, err := New(nil)
		assert.ErrorIs(t, err, ErrEmptyTopology)
	})

	t.Run("duplicate writers rejected", func(t *testing.T) {
		var order []string

		_, err := New([]Step{
			recordingStep("a", nil, SlotMacroData, &order),
			recordingStep("b", nil, SlotMacroData, &order),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "both write")
	})

	t.Run("consumer before producer rejected", func(t *testing.T) {
		var order []string

		_, err := New([]Step{
			recordingStep("editor", []Slot{SlotMacroData}, SlotFinalReport, &order),
			recordingStep("macro", nil, SlotMacroData, &order),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "before")
	})

	t.Run("self read rejected", func(t *testing.T) {
		var order []string

		_, err := New([]Step{
			recordingStep("a", []Slot{SlotMacroData}, SlotMacroData, &order),
		})
		require.Error(t, err)
	})

	t.Run("reads of input slots are fine", func(t *testing.T) {
		var order []string

		_, err := New([]Step{
			recordingStep("macro", []Slot{SlotLocation, SlotYear}, SlotMacroData, &order),
		})
		assert.NoError(t, err)
	})
}

func TestRun_Order(t *testing.T) {
	var order []string

	p, err := New([]Step{
		recordingStep("a", nil, SlotMacroData, &order),
		recordingStep("b", []Slot{SlotMacroData}, SlotMarketData, &order),
		recordingStep("c", []Slot{SlotMacroData, SlotMarketData}, SlotFinalReport, &order),
	})
	require.NoError(t, err)

	rc, err := p.Run(context.Background(), NewContext())
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, SlotFinalReport, p.FinalSlot())

	// Every upstream slot is visible to the last step's context.
	for _, slot := range []Slot{SlotMacroData, SlotMarketData, SlotFinalReport} {
		assert.True(t, rc.Has(slot))
	}
}

func TestRun_LastStepSeesUpstreamOutput(t *testing.T) {
	producer := NewStep("macro", nil, SlotMacroData, func(_ context.Context, _ *Context) (Value, error) {
		return StringValue("rates easing"), nil
	})

	var seen string

	consumer := NewStep("editor", []Slot{SlotMacroData}, SlotFinalReport, func(_ context.Context, rc *Context) (Value, error) {
		seen = rc.StringOr(SlotMacroData, "N/A")
		return StringValue("report: " + seen), nil
	})

	p, err := New([]Step{producer, consumer})
	require.NoError(t, err)

	rc, err := p.Run(context.Background(), NewContext())
	require.NoError(t, err)

	assert.Equal(t, "rates easing", seen)

	report, ok := rc.String(SlotFinalReport)
	require.True(t, ok)
	assert.Equal(t, "report: rates easing", report)
}

func TestRun_DegradesOnCapabilityFailure(t *testing.T) {
	failing := NewStep("macro", nil, SlotMacroData, func(_ context.Context, _ *Context) (Value, error) {
		return Value{}, errors.New("dial tcp: connection refused")
	})

	editor := NewStep("editor", []Slot{SlotMacroData}, SlotFinalReport, func(_ context.Context, rc *Context) (Value, error) {
		return StringValue("synthesis of: " + rc.StringOr(SlotMacroData, "N/A")), nil
	})

	p, err := New([]Step{failing, editor})
	require.NoError(t, err)

	rc, err := p.Run(context.Background(), NewContext())
	require.NoError(t, err)

	macro, ok := rc.String(SlotMacroData)
	require.True(t, ok)
	assert.Contains(t, macro, "Connection Error")
	assert.Contains(t, macro, "connection refused")

	report, ok := rc.String(SlotFinalReport)
	require.True(t, ok)
	assert.Contains(t, report, "Connection Error")
}

func TestRun_AbortOnErrorPolicy(t *testing.T) {
	capErr := errors.New("capability down")

	failing := NewStep("macro", nil, SlotMacroData, func(_ context.Context, _ *Context) (Value, error) {
		return Value{}, capErr
	})

	var editorRan bool

	editor := NewStep("editor", nil, SlotFinalReport, func(_ context.Context, _ *Context) (Value, error) {
		editorRan = true
		return StringValue(""), nil
	})

	p, err := New([]Step{failing, editor}, WithFailurePolicy(AbortOnError))
	require.NoError(t, err)

	_, err = p.Run(context.Background(), NewContext())
	require.ErrorIs(t, err, capErr)
	assert.False(t, editorRan)
}

func TestRun_StepCrashIsStructural(t *testing.T) {
	crashing := NewStep("macro", nil, SlotMacroData, func(_ context.Context, _ *Context) (Value, error) {
		panic("boom")
	})

	p, err := New([]Step{crashing})
	require.NoError(t, err)

	_, err = p.Run(context.Background(), NewContext())
	require.Error(t, err)

	var crash *StepCrashError
	require.ErrorAs(t, err, &crash)
	assert.Equal(t, "macro", crash.Step)
}

func TestRun_CancellationAtStepBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := NewStep("macro", nil, SlotMacroData, func(_ context.Context, _ *Context) (Value, error) {
		cancel()
		return StringValue("done"), nil
	})

	var secondRan bool

	second := NewStep("market", nil, SlotMarketData, func(_ context.Context, _ *Context) (Value, error) {
		secondRan = true
		return StringValue(""), nil
	})

	p, err := New([]Step{first, second})
	require.NoError(t, err)

	_, err = p.Run(ctx, NewContext())
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, secondRan)
}

func TestRun_StepTimeout(t *testing.T) {
	slow := NewStep("macro", nil, SlotMacroData, func(ctx context.Context, _ *Context) (Value, error) {
		select {
		case <-ctx.Done():
			return Value{}, ctx.Err()
		case <-time.After(5 * time.Second):
			return StringValue("too late"), nil
		}
	})

	p, err := New([]Step{slow}, WithStepTimeout(10*time.Millisecond))
	require.NoError(t, err)

	rc, err := p.Run(context.Background(), NewContext())
	require.NoError(t, err)

	// Timeout degrades like any other capability failure.
	macro, ok := rc.String(SlotMacroData)
	require.True(t, ok)
	assert.Contains(t, macro, "Connection Error")
}

func TestRun_NilContext(t *testing.T) {
	var order []string

	p, err := New([]Step{recordingStep("a", nil, SlotMacroData, &order)})
	require.NoError(t, err)

	rc, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	assert.True(t, rc.Has(SlotMacroData))
}
