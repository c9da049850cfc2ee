package engine

import (
	"cmp"
	"math"
	"slices"
	"time"
)

type timer struct {
	due   uint64
	epoch uint64
	seq   uint64
	fn    func(w *World)
}

// Timers runs one-shot delayed actions measured in ticks. Timers cannot be
// cancelled. Instead every timer remembers the epoch it was scheduled in and
// is silently dropped if the epoch has moved on by the time it is due.
type Timers struct {
	now     uint64
	epoch   uint64
	seq     uint64
	pending []timer
}

// After schedules fn to run ticks from now. Delays below one tick are
// rounded up so an action never fires during the tick that scheduled it.
func (t *Timers) After(ticks int, fn func(w *World)) {
	if ticks < 1 {
		ticks = 1
	}
	t.seq++
	t.pending = append(t.pending, timer{
		due:   t.now + uint64(ticks),
		epoch: t.epoch,
		seq:   t.seq,
		fn:    fn,
	})
}

// Bump invalidates every timer scheduled so far.
func (t *Timers) Bump() {
	t.epoch++
}

// Epoch returns the current epoch.
func (t *Timers) Epoch() uint64 {
	return t.epoch
}

// Now returns the number of ticks advanced so far.
func (t *Timers) Now() uint64 {
	return t.now
}

// Pending returns the number of scheduled timers that can still fire.
func (t *Timers) Pending() int {
	n := 0
	for _, tm := range t.pending {
		if tm.epoch == t.epoch {
			n++
		}
	}
	return n
}

// Advance moves time forward one tick and runs every due timer in
// scheduling order. It returns the number of actions that ran.
func (t *Timers) Advance(w *World) int {
	t.now++

	var due []timer
	kept := t.pending[:0]
	for _, tm := range t.pending {
		switch {
		case tm.epoch != t.epoch:
			// stale, drop
		case tm.due <= t.now:
			due = append(due, tm)
		default:
			kept = append(kept, tm)
		}
	}
	clear(t.pending[len(kept):])
	t.pending = kept

	slices.SortFunc(due, func(a, b timer) int {
		return cmp.Or(cmp.Compare(a.due, b.due), cmp.Compare(a.seq, b.seq))
	})

	ran := 0
	for _, tm := range due {
		// An earlier action in this batch may have bumped the epoch.
		if tm.epoch != t.epoch {
			continue
		}
		tm.fn(w)
		ran++
	}
	return ran
}

// Ticks converts a duration into a tick count at the given rate, never
// less than one.
func Ticks(d time.Duration, tickRate int) int {
	n := int(math.Round(d.Seconds() * float64(tickRate)))
	if n < 1 {
		return 1
	}
	return n
}
