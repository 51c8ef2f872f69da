// Package anim steps through a frame schedule in wall-clock time.
//
// The caller owns the clock: Advance is fed the elapsed time since the last
// call, so the player never blocks and behaves the same under test.
package anim

import (
	"time"

	"github.com/milk9111/convolve/schedule"
)

type State int

const (
	Playing State = iota
	// Paused holds a pause frame until its duration runs out.
	Paused
	// Holding holds a pause frame until Resume is called.
	Holding
	Done
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	case Holding:
		return "holding"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// Player walks a schedule.Frames one frame per delay and stops on pause
// frames.
type Player struct {
	frames   schedule.Frames
	delay    time.Duration
	pauseFor time.Duration
	hold     bool

	pos       int
	acc       time.Duration
	remaining time.Duration
	state     State
}

// NewPlayer starts playback at the first frame. With hold set, pause frames
// wait for Resume instead of pauseFor.
func NewPlayer(frames schedule.Frames, delay, pauseFor time.Duration, hold bool) *Player {
	p := &Player{
		frames:   frames,
		delay:    delay,
		pauseFor: pauseFor,
		hold:     hold,
	}
	p.Restart()
	return p
}

// Restart rewinds to the first frame.
func (p *Player) Restart() {
	p.pos = 0
	p.acc = 0
	p.remaining = 0
	p.state = Playing
	if p.frames.Len() == 0 {
		p.state = Done
		return
	}
	p.enter()
}

// Advance moves the clock forward by dt and reports whether the current
// frame changed. A pause frame is never skipped, however large dt is.
func (p *Player) Advance(dt time.Duration) bool {
	switch p.state {
	case Done, Holding:
		return false
	case Paused:
		p.remaining -= dt
		if p.remaining > 0 {
			return false
		}
		dt = -p.remaining
		p.resume()
		if p.state == Done {
			return false
		}
	}

	p.acc += dt
	changed := false
	for p.delay <= 0 || p.acc >= p.delay {
		if p.pos >= p.frames.Len()-1 {
			p.state = Done
			return changed
		}
		if p.delay > 0 {
			p.acc -= p.delay
		}
		p.pos++
		changed = true
		if p.enter() {
			return true
		}
		if p.delay <= 0 {
			break
		}
	}
	return changed
}

// Resume releases a hold. A timed pause always runs to completion, so
// Resume reports false for it and for any other state.
func (p *Player) Resume() bool {
	if p.state != Holding {
		return false
	}
	p.resume()
	return true
}

func (p *Player) resume() {
	p.remaining = 0
	p.acc = 0
	p.state = Playing
	if p.pos >= p.frames.Len()-1 {
		p.state = Done
	}
}

// enter applies the pause rule to the frame at pos.
func (p *Player) enter() bool {
	if !p.frames.IsPause(p.frames.Indices[p.pos]) {
		return false
	}
	p.acc = 0
	if p.hold {
		p.state = Holding
	} else {
		p.state = Paused
		p.remaining = p.pauseFor
	}
	return true
}

// Current returns the axis index of the displayed frame, or -1 when there
// are no frames.
func (p *Player) Current() int {
	if p.frames.Len() == 0 {
		return -1
	}
	return p.frames.Indices[p.pos]
}

// Position returns the displayed frame's position in the schedule.
func (p *Player) Position() int {
	return p.pos
}

func (p *Player) State() State {
	return p.state
}

// Remaining is what is left of a timed pause.
func (p *Player) Remaining() time.Duration {
	if p.state != Paused {
		return 0
	}
	return p.remaining
}

func (p *Player) Frames() schedule.Frames {
	return p.frames
}
