// Package seconds implements the millisecond-precision time values used
// throughout the scoring pipeline: Seconds, MinuteSecond and Duration.
package seconds

import (
	"fmt"
	"math"
)

// toleranceMs is the slack applied when comparing two Seconds values for
// equality. Score sheets and keystroke timers rarely land on the same
// millisecond, so exact equality would make every timing comparison brittle.
const toleranceMs = 10

// Seconds is a span of time stored as whole milliseconds.
type Seconds int64

// New builds a Seconds value from a fractional-second count, rounding up to
// the next millisecond so that a note never starts before its nominal time.
func New(s float64) Seconds {
	return Seconds(int64(math.Ceil(s * 1000)))
}

// Zero is the origin of the timeline.
var Zero = Seconds(0)

// Seconds returns the value as a floating point second count.
func (s Seconds) Seconds() float64 {
	return float64(s) / 1000
}

// Milliseconds returns the raw millisecond count.
func (s Seconds) Milliseconds() int64 {
	return int64(s)
}

// Add returns s + other.
func (s Seconds) Add(other Seconds) Seconds {
	return s + other
}

// Sub returns s - other, saturating at zero rather than going negative.
func (s Seconds) Sub(other Seconds) Seconds {
	if other >= s {
		return Zero
	}
	return s - other
}

// Div returns the ratio s / other as a float, used for remaining-time
// progress bars.
func (s Seconds) Div(other Seconds) float64 {
	if other == 0 {
		return 0
	}
	return float64(s) / float64(other)
}

// Equal reports whether s and other are within toleranceMs of each other.
func (s Seconds) Equal(other Seconds) bool {
	d := s - other
	if d < 0 {
		d = -d
	}
	return d <= toleranceMs
}

// Less reports whether s sorts strictly before other. Unlike Equal this is
// not tolerance adjusted: ordering needs to stay a strict total order even
// for near-equal values, or notes a millisecond apart could compare equal in
// one direction and less in another.
func (s Seconds) Less(other Seconds) bool {
	return s < other
}

// Min returns the earlier of s and other.
func (s Seconds) Min(other Seconds) Seconds {
	if other < s {
		return other
	}
	return s
}

// Max returns the later of s and other.
func (s Seconds) Max(other Seconds) Seconds {
	if other > s {
		return other
	}
	return s
}

func (s Seconds) String() string {
	return fmt.Sprintf("%.2fs", s.Seconds())
}

// MinuteSecond is an editable (minutes, seconds) timestamp, as it appears in
// a score sheet's `|N` and `*N.N` directives.
type MinuteSecond struct {
	Minutes int
	Seconds Seconds
}

// ZeroMinuteSecond is minute 0, second 0.
var ZeroMinuteSecond = MinuteSecond{}

// WithMinutes returns a copy of m with Minutes replaced, leaving Seconds
// untouched.
func (m MinuteSecond) WithMinutes(minutes int) MinuteSecond {
	return MinuteSecond{Minutes: minutes, Seconds: m.Seconds}
}

// WithSeconds returns a copy of m with Seconds replaced, carrying any
// overflow of 60 seconds or more into Minutes.
func (m MinuteSecond) WithSeconds(s Seconds) MinuteSecond {
	minutes := m.Minutes
	minuteLength := New(60)
	for s >= minuteLength {
		s -= minuteLength
		minutes++
	}
	return MinuteSecond{Minutes: minutes, Seconds: s}
}

// ToSeconds flattens the pair into a single Seconds value.
func (m MinuteSecond) ToSeconds() Seconds {
	return New(float64(m.Minutes)*60) + m.Seconds
}

// Less orders by minutes first, then seconds, matching the score sheet's
// natural reading order.
func (m MinuteSecond) Less(other MinuteSecond) bool {
	if m.Minutes != other.Minutes {
		return m.Minutes < other.Minutes
	}
	return m.Seconds.Less(other.Seconds)
}

// LessEqual reports m <= other, using Seconds' tolerance for the equal case
// so that a `*` directive repeating the current timestamp within toleranceMs
// (10ms) of jitter isn't treated as moving forward.
func (m MinuteSecond) LessEqual(other MinuteSecond) bool {
	return m.Less(other) || (m.Minutes == other.Minutes && m.Seconds.Equal(other.Seconds))
}

// Duration is a half-open time span [From, To) covering a single note.
type Duration struct {
	From Seconds
	To   Seconds
}

// NewDuration builds a Duration, rejecting spans that don't have a strictly
// positive length.
func NewDuration(from, to Seconds) (Duration, error) {
	if from >= to {
		return Duration{}, fmt.Errorf("duration: from (%v) must be before to (%v)", from, to)
	}
	return Duration{From: from, To: to}, nil
}

// Includes reports whether t falls in the half-open span [From, To).
func (d Duration) Includes(t Seconds) bool {
	return d.From <= t && t < d.To
}

// Concat returns the convex hull of d and other: the span from the earlier
// of the two starts to the later of the two ends. Used to derive a
// section's overall Duration from just its first and last note.
func (d Duration) Concat(other Duration) Duration {
	from := d.From
	if other.From < from {
		from = other.From
	}
	to := d.To
	if other.To > to {
		to = other.To
	}
	return Duration{From: from, To: to}
}

// Following returns a new Duration of the given length starting where d
// leaves off, used to append the trailing blank note after the last lyric.
func (d Duration) Following(length Seconds) Duration {
	return Duration{From: d.To, To: d.To + length}
}

// RemainingRatio returns how far through d now falls, as a 0..1 ratio. Times
// before d.From report 0, times at or after d.To report 1.
func (d Duration) RemainingRatio(now Seconds) float64 {
	if now <= d.From {
		return 0
	}
	if now >= d.To {
		return 1
	}
	return now.Sub(d.From).Div(d.To.Sub(d.From))
}
