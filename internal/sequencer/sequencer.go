// Package sequencer delays an external navigation until the celebration
// animation has played.
//
// The machine has two states. Idle has no target. Animating(target) holds
// the url to open and the deadline of the single timer. Request moves Idle
// to Animating and, while already animating, replaces the target without
// moving the deadline. Complete is the timer transition back to Idle; it
// yields the target exactly once.
package sequencer

import "time"

// DefaultDuration is the length of the confetti burst.
const DefaultDuration = 1600 * time.Millisecond

// Pending is the deferred navigation of one visitor.
type Pending struct {
	TargetURL string    `json:"url,omitempty"`
	Animating bool      `json:"anim,omitempty"`
	Deadline  time.Time `json:"deadline,omitempty"`
}

// Idle reports whether no navigation is pending.
func (p Pending) Idle() bool { return !p.Animating }

// Request records url as the target and starts the timer if it is not
// already running. An empty url is ignored.
func (p Pending) Request(url string, now time.Time, d time.Duration) Pending {
	if url == "" {
		return p
	}
	if d <= 0 {
		d = DefaultDuration
	}
	if !p.Animating {
		p.Deadline = now.Add(d)
	}
	p.TargetURL = url
	p.Animating = true
	return p
}

// Complete fires the timer. Before the deadline it returns p unchanged and
// done=false. Otherwise it returns the idle state, the url to open (empty
// when nothing was pending) and done=true.
func (p Pending) Complete(now time.Time) (next Pending, open string, done bool) {
	if !p.Animating {
		return Pending{}, "", true
	}
	if now.Before(p.Deadline) {
		return p, "", false
	}
	return Pending{}, p.TargetURL, true
}

// Remaining is the time left before Complete succeeds.
func (p Pending) Remaining(now time.Time) time.Duration {
	if !p.Animating {
		return 0
	}
	if d := p.Deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Normalize repairs a value restored from client storage so the invariant
// Animating == (TargetURL != "") holds.
func Normalize(p Pending) Pending {
	if p.TargetURL == "" || !p.Animating {
		return Pending{}
	}
	return p
}
