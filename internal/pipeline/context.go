package pipeline

import (
	"strconv"
)

// Slot names one value in the shared research context. Slots are either
// provided as pipeline input or produced by exactly one step.
type Slot string

const (
	// Input slots.
	SlotObjective          Slot = "objective"
	SlotLocation           Slot = "location"
	SlotYear               Slot = "year"
	SlotRentChangePct      Slot = "rent_change_pct"
	SlotOccupancyChangePct Slot = "occupancy_change_pct"
	SlotDocumentText       Slot = "document_text"
	SlotUserQuery          Slot = "user_query"

	// Output slots, one per step.
	SlotMacroData     Slot = "macro_data"
	SlotMarketData    Slot = "market_data"
	SlotLegalData     Slot = "legal_data"
	SlotRiskAnalysis  Slot = "risk_analysis"
	SlotLeaseAnalysis Slot = "lease_analysis"
	SlotFinalReport   Slot = "final_report"
)

type valueKind int

const (
	kindString valueKind = iota
	kindNumber
)

// Value is a string or numeric slot value.
type Value struct {
	kind valueKind
	str  string
	num  float64
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: kindString, str: s}
}

// NumberValue wraps a number.
func NumberValue(f float64) Value {
	return Value{kind: kindNumber, num: f}
}

// Text renders the value for prompt interpolation.
func (v Value) Text() string {
	if v.kind == kindNumber {
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	}

	return v.str
}

// Context is the shared state threaded through one pipeline run. It is
// created fresh per invocation and never shared across runs, so access
// needs no locking.
type Context struct {
	values map[Slot]Value
}

// NewContext creates an empty Context.
func NewContext() *Context {
	return &Context{values: make(map[Slot]Value)}
}

// Set writes a slot. Within a run the orchestrator is the only writer, and
// merge is last-writer-wins per slot.
func (c *Context) Set(slot Slot, value Value) {
	c.values[slot] = value
}

// SetString writes a string slot.
func (c *Context) SetString(slot Slot, s string) {
	c.Set(slot, StringValue(s))
}

// SetNumber writes a numeric slot.
func (c *Context) SetNumber(slot Slot, f float64) {
	c.Set(slot, NumberValue(f))
}

// Has reports whether the slot is set.
func (c *Context) Has(slot Slot) bool {
	_, ok := c.values[slot]
	return ok
}

// String reads a string slot.
func (c *Context) String(slot Slot) (string, bool) {
	v, ok := c.values[slot]
	if !ok || v.kind != kindString {
		return "", false
	}

	return v.str, true
}

// StringOr reads a string slot, falling back to def when unset.
func (c *Context) StringOr(slot Slot, def string) string {
	if s, ok := c.String(slot); ok {
		return s
	}

	return def
}

// Number reads a numeric slot.
func (c *Context) Number(slot Slot) (float64, bool) {
	v, ok := c.values[slot]
	if !ok || v.kind != kindNumber {
		return 0, false
	}

	return v.num, true
}

// NumberOr reads a numeric slot, falling back to def when unset.
func (c *Context) NumberOr(slot Slot, def float64) float64 {
	if f, ok := c.Number(slot); ok {
		return f
	}

	return def
}

// Slots returns the set slots. Only used by tests and logging.
func (c *Context) Slots() []Slot {
	slots := make([]Slot, 0, len(c.values))
	for slot := range c.values {
		slots = append(slots, slot)
	}

	return slots
}
