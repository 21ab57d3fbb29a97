// Package scrollsync keeps the header and the pinned strips in lockstep with
// the scrollable body.
//
// The body is the only source of scroll positions. Every committed position
// is forwarded to the followers inside the same call that delivered it, so
// there is never a moment where a strip shows a different row window than
// the body.
package scrollsync

import (
	"github.com/rs/zerolog"

	"github.com/rshade/vtable/internal/grid"
	"github.com/rshade/vtable/internal/viewport"
)

// Phase is the coordinator state for one scroll event.
type Phase int

const (
	// Idle means no event is being dispatched.
	Idle Phase = iota
	// Scrolling means an event from the body is being dispatched.
	Scrolling
)

func (p Phase) String() string {
	if p == Scrolling {
		return "scrolling"
	}
	return "idle"
}

// HeaderFollower tracks the horizontal position of the body.
type HeaderFollower interface {
	SetScrollLeft(left int)
}

// Follower is a pinned strip tracking the vertical position of the body.
type Follower interface {
	Mounted() bool
	SetScrollTop(top int)
	ResetAfterRow(index int)
}

// Source is the scrollable body.
type Source interface {
	Subscribe(l grid.Listener)
	Offset() viewport.ScrollOffset
	ResetAfterRow(index int)
	ResetAfterColumn(index int)
}

// Stats counts coordinator activity.
type Stats struct {
	Events        int
	HeaderPushes  int
	OverlayPushes int
	Skipped       int
	Dropped       int
}

// Coordinator owns the committed ScrollOffset and fans it out.
type Coordinator struct {
	source    Source
	header    HeaderFollower
	followers []Follower

	offset viewport.ScrollOffset
	phase  Phase
	stats  Stats
	logger zerolog.Logger
}

// New creates a coordinator subscribed to source. header may be nil.
func New(source Source, header HeaderFollower, logger zerolog.Logger, followers ...Follower) *Coordinator {
	c := &Coordinator{
		source:    source,
		header:    header,
		followers: followers,
		offset:    source.Offset(),
		logger:    logger.With().Str("component", "scrollsync").Logger(),
	}
	source.Subscribe(c.handle)
	return c
}

// Offset returns the committed scroll position.
func (c *Coordinator) Offset() viewport.ScrollOffset {
	return c.offset
}

// Phase returns the current dispatch phase.
func (c *Coordinator) Phase() Phase {
	return c.phase
}

// Stats returns activity counters.
func (c *Coordinator) Stats() Stats {
	return c.stats
}

// Mount registers another follower and brings it up to date.
func (c *Coordinator) Mount(f Follower) {
	c.followers = append(c.followers, f)
	if f.Mounted() {
		f.SetScrollTop(c.offset.Top)
	}
}

func (c *Coordinator) handle(ev grid.ScrollEvent) {
	if c.phase == Scrolling {
		c.stats.Dropped++
		c.logger.Trace().Int("top", ev.Offset.Top).Msg("dropped re-entrant scroll event")
		return
	}
	c.phase = Scrolling
	defer func() { c.phase = Idle }()

	c.stats.Events++
	c.offset = ev.Offset
	c.push()

	c.logger.Trace().
		Int("top", ev.Offset.Top).
		Int("left", ev.Offset.Left).
		Int("events", c.stats.Events).
		Int("skipped", c.stats.Skipped).
		Msg("scroll dispatched")
}

// push forwards the committed position to every follower.
func (c *Coordinator) push() {
	if c.header != nil {
		c.header.SetScrollLeft(c.offset.Left)
		c.stats.HeaderPushes++
	}
	for _, f := range c.followers {
		if !f.Mounted() {
			c.stats.Skipped++
			continue
		}
		f.SetScrollTop(c.offset.Top)
		c.stats.OverlayPushes++
	}
}

// Resync re-reads the body position and pushes it to every follower. It is
// used after relayouts, when a strip may have been mounted or resized.
func (c *Coordinator) Resync() {
	if c.phase == Scrolling {
		return
	}
	c.offset = c.source.Offset()
	c.push()
}

// InvalidateRows drops cached row offsets from index on in every surface.
func (c *Coordinator) InvalidateRows(index int) {
	if index < 0 {
		return
	}
	c.source.ResetAfterRow(index)
	for _, f := range c.followers {
		f.ResetAfterRow(index)
	}
	c.logger.Debug().Int("from", index).Msg("row offsets invalidated")
}

// InvalidateColumns drops cached column offsets from index on.
func (c *Coordinator) InvalidateColumns(index int) {
	if index < 0 {
		return
	}
	c.source.ResetAfterColumn(index)
	c.logger.Debug().Int("from", index).Msg("column offsets invalidated")
}

// LogStats writes the counters at debug level.
func (c *Coordinator) LogStats() {
	c.logger.Debug().
		Int("events", c.stats.Events).
		Int("header_pushes", c.stats.HeaderPushes).
		Int("overlay_pushes", c.stats.OverlayPushes).
		Int("skipped", c.stats.Skipped).
		Int("dropped", c.stats.Dropped).
		Msg("scroll sync stats")
}
