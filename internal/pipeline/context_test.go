package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_StringSlots(t *testing.T) {
	rc := NewContext()

	assert.False(t, rc.Has(SlotLocation))
	assert.Equal(t, "NYC", rc.StringOr(SlotLocation, "NYC"))

	rc.SetString(SlotLocation, "Austin")

	assert.True(t, rc.Has(SlotLocation))

	got, ok := rc.String(SlotLocation)
	require.True(t, ok)
	assert.Equal(t, "Austin", got)
	assert.Equal(t, "Austin", rc.StringOr(SlotLocation, "NYC"))
}

func TestContext_NumberSlots(t *testing.T) {
	rc := NewContext()

	assert.Equal(t, 0.0, rc.NumberOr(SlotRentChangePct, 0))

	rc.SetNumber(SlotRentChangePct, 7.5)

	got, ok := rc.Number(SlotRentChangePct)
	require.True(t, ok)
	assert.Equal(t, 7.5, got)

	// A number slot does not answer as a string.
	_, ok = rc.String(SlotRentChangePct)
	assert.False(t, ok)
}

func TestContext_SetOverwrites(t *testing.T) {
	rc := NewContext()

	rc.SetString(SlotMacroData, "first")
	rc.SetString(SlotMacroData, "second")

	got, ok := rc.String(SlotMacroData)
	require.True(t, ok)
	assert.Equal(t, "second", got)
}

func TestValue_Text(t *testing.T) {
	assert.Equal(t, "rates easing", StringValue("rates easing").Text())
	assert.Equal(t, "7.5", NumberValue(7.5).Text())
	assert.Equal(t, "12", NumberValue(12).Text())
}

func TestContext_Slots(t *testing.T) {
	rc := NewContext()
	rc.SetString(SlotLocation, "NYC")
	rc.SetNumber(SlotOccupancyChangePct, -2)

	slots := rc.Slots()
	assert.ElementsMatch(t, []Slot{SlotLocation, SlotOccupancyChangePct}, slots)
}
