package anim

import (
	"testing"
	"time"

	"github.com/milk9111/convolve/schedule"
)

const ms = time.Millisecond

func frames(indices, pauses []int) schedule.Frames {
	return schedule.Frames{Indices: indices, Pauses: pauses}
}

func TestPlayerSteps(t *testing.T) {
	p := NewPlayer(frames([]int{0, 2, 4, 6}, nil), 10*ms, time.Second, false)

	steps := []struct {
		name    string
		dt      time.Duration
		changed bool
		current int
		state   State
	}{
		{"short_tick", 4 * ms, false, 0, Playing},
		{"accumulates", 6 * ms, true, 2, Playing},
		{"two_frames", 20 * ms, true, 6, Playing},
		{"last_frame_done", 10 * ms, false, 6, Done},
		{"done_stays", time.Second, false, 6, Done},
	}

	for _, s := range steps {
		t.Run(s.name, func(t *testing.T) {
			if got := p.Advance(s.dt); got != s.changed {
				t.Fatalf("Advance(%v) = %v, want %v", s.dt, got, s.changed)
			}
			if p.Current() != s.current || p.State() != s.state {
				t.Fatalf("at %d (%v), want %d (%v)", p.Current(), p.State(), s.current, s.state)
			}
		})
	}
}

func TestPlayerTimedPause(t *testing.T) {
	p := NewPlayer(frames([]int{0, 1, 2, 4}, []int{2}), 10*ms, 100*ms, false)

	if !p.Advance(time.Second) {
		t.Fatalf("expected to move")
	}
	if p.Current() != 2 || p.State() != Paused {
		t.Fatalf("skipped the pause: at %d (%v)", p.Current(), p.State())
	}
	if p.Remaining() != 100*ms {
		t.Fatalf("remaining = %v", p.Remaining())
	}

	if p.Advance(60 * ms) {
		t.Fatalf("moved while paused")
	}
	if p.Remaining() != 40*ms {
		t.Fatalf("remaining = %v", p.Remaining())
	}

	// the pause ends after 40ms and the leftover 10ms moves one frame
	if !p.Advance(50 * ms) {
		t.Fatalf("expected to resume and move")
	}
	if p.Current() != 4 || p.State() != Playing {
		t.Fatalf("at %d (%v), want 4 playing", p.Current(), p.State())
	}
	p.Advance(10 * ms)
	if p.State() != Done {
		t.Fatalf("state = %v, want done", p.State())
	}
}

func TestPlayerTimedPauseIgnoresResume(t *testing.T) {
	p := NewPlayer(frames([]int{0, 1, 2, 4}, []int{2}), 10*ms, 5*time.Second, false)

	p.Advance(20 * ms)
	if p.Current() != 2 || p.State() != Paused {
		t.Fatalf("at %d (%v), want 2 paused", p.Current(), p.State())
	}
	if p.Resume() {
		t.Fatalf("Resume released a timed pause")
	}
	if p.State() != Paused || p.Remaining() != 5*time.Second {
		t.Fatalf("after Resume: %v, %v left", p.State(), p.Remaining())
	}
	if p.Advance(10*ms) || p.Current() != 2 {
		t.Fatalf("moved to %d during a timed pause", p.Current())
	}
	if p.Remaining() != 5*time.Second-10*ms {
		t.Fatalf("remaining = %v", p.Remaining())
	}
}

func TestPlayerHold(t *testing.T) {
	p := NewPlayer(frames([]int{0, 3, 4, 8}, []int{4}), 10*ms, time.Second, true)

	p.Advance(time.Minute)
	if p.Current() != 4 || p.State() != Holding {
		t.Fatalf("at %d (%v), want 4 holding", p.Current(), p.State())
	}
	if p.Advance(time.Hour) {
		t.Fatalf("moved while holding")
	}
	if !p.Resume() {
		t.Fatalf("Resume should release a hold")
	}
	if p.Resume() {
		t.Fatalf("Resume while playing should report false")
	}
	if !p.Advance(10*ms) || p.Current() != 8 {
		t.Fatalf("at %d after resume", p.Current())
	}
}

func TestPlayerPauseOnFirstAndLastFrame(t *testing.T) {
	p := NewPlayer(frames([]int{0, 1}, []int{0, 1}), 10*ms, 20*ms, false)
	if p.State() != Paused || p.Current() != 0 {
		t.Fatalf("first frame pause: at %d (%v)", p.Current(), p.State())
	}

	p.Advance(20 * ms)
	if p.State() != Playing {
		t.Fatalf("state = %v after first pause", p.State())
	}
	p.Advance(10 * ms)
	if p.Current() != 1 || p.State() != Paused {
		t.Fatalf("last frame pause: at %d (%v)", p.Current(), p.State())
	}
	p.Advance(20 * ms)
	if p.State() != Done {
		t.Fatalf("state = %v after last pause", p.State())
	}

	p.Restart()
	if p.Position() != 0 || p.State() != Paused {
		t.Fatalf("Restart: at %d (%v)", p.Position(), p.State())
	}
}

func TestPlayerZeroDelay(t *testing.T) {
	p := NewPlayer(frames([]int{0, 1, 2}, nil), 0, 0, false)
	for want := 1; want <= 2; want++ {
		if !p.Advance(0) || p.Current() != want {
			t.Fatalf("zero delay should move one frame per call, at %d", p.Current())
		}
	}
	p.Advance(0)
	if p.State() != Done {
		t.Fatalf("state = %v", p.State())
	}
}

func TestPlayerEmpty(t *testing.T) {
	p := NewPlayer(schedule.Frames{}, 10*ms, 0, false)
	if p.State() != Done || p.Current() != -1 || p.Advance(time.Second) {
		t.Fatalf("empty player should be done")
	}
}

func TestPlayerWithBuiltSchedule(t *testing.T) {
	axis := []float64{-2, -1, 0, 1, 2}
	f := schedule.Build(axis, 2, []float64{0.4})
	p := NewPlayer(f, 10*ms, 50*ms, false)

	var seen []int
	seen = append(seen, p.Current())
	for p.State() != Done {
		if p.Advance(10 * ms) {
			seen = append(seen, p.Current())
		}
	}
	want := []int{0, 1, 2, 4}
	if len(seen) != len(want) {
		t.Fatalf("played %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("played %v, want %v", seen, want)
		}
	}
}
