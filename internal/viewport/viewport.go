// Package viewport holds the engine-owned viewport state and the width
// measurer that turns container resize notifications into relayouts.
package viewport

import "time"

// FrameInterval is the delay used to batch resize notifications into one
// relayout.
const FrameInterval = 16 * time.Millisecond

// ScrollOffset is the single logical scroll position shared by every surface.
type ScrollOffset struct {
	Top  int
	Left int
}

// State is the viewport state owned by the engine.
type State struct {
	ContainerWidth int
	Height         int
	RowHeight      int
	Scroll         ScrollOffset
}

// ChangeFunc receives the previous and the newly applied container width.
type ChangeFunc func(prev, next int)

// Measurer observes the container width and reports changes.
//
// Reports are collected by Observe and applied by Flush, so several
// notifications arriving within one frame cause a single relayout.
type Measurer struct {
	width      int
	pending    int
	hasPending bool
	relayouts  int
	onChange   ChangeFunc
}

// NewMeasurer creates a measurer starting at width.
func NewMeasurer(width int, onChange ChangeFunc) *Measurer {
	return &Measurer{width: width, onChange: onChange}
}

// Width returns the last applied width.
func (m *Measurer) Width() int {
	return m.width
}

// Pending reports whether a width change is waiting for Flush.
func (m *Measurer) Pending() bool {
	return m.hasPending
}

// Relayouts returns how many width changes have been applied.
func (m *Measurer) Relayouts() int {
	return m.relayouts
}

// Observe records a reported width. Zero widths (transient mount frames) and
// the current width are ignored. It returns true when this report opened a
// new pending change, i.e. when the caller should schedule a Flush.
func (m *Measurer) Observe(width int) bool {
	if width <= 0 {
		return false
	}
	if width == m.width {
		m.hasPending = false
		return false
	}
	opened := !m.hasPending
	m.pending = width
	m.hasPending = true
	return opened
}

// Flush applies the latest pending width. It returns false when there was
// nothing to apply.
func (m *Measurer) Flush() bool {
	if !m.hasPending {
		return false
	}
	prev := m.width
	m.width = m.pending
	m.hasPending = false
	m.relayouts++
	if m.onChange != nil {
		m.onChange(prev, m.width)
	}
	return true
}

// Apply observes and flushes width in one step.
func (m *Measurer) Apply(width int) bool {
	m.Observe(width)
	return m.Flush()
}

// Range is a half-open index range [From, To).
type Range struct {
	From int
	To   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	return max(r.To-r.From, 0)
}

// Contains reports whether i lies in the range.
func (r Range) Contains(i int) bool {
	return i >= r.From && i < r.To
}

// Rect is an axis-aligned rectangle in units.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
