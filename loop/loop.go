// Package loop schedules animation frames.
//
// A Ticker calls its callback once per frame period on the calling
// goroutine. Each callback runs to completion before the next frame is
// scheduled, so frame state needs no locking.
package loop

import (
	"context"
	"errors"
	"time"

	"github.com/gogpu/fundamentals"
)

// ErrStop may be returned by a frame callback to end the loop without
// error.
var ErrStop = errors.New("loop: stop")

// Tick describes one frame.
type Tick struct {
	// Frame counts from 0.
	Frame uint64

	// Time is the time since the loop started.
	Time time.Duration

	// Delta is the time since the previous frame, 0 on the first one.
	Delta time.Duration
}

// Seconds returns Delta in seconds.
func (t Tick) Seconds() float32 { return float32(t.Delta.Seconds()) }

// Ticker runs frame callbacks at a fixed rate.
type Ticker struct {
	// FPS is the target frame rate. Zero or negative runs frames back to
	// back.
	FPS int

	// Frames stops the loop after this many frames when positive.
	Frames int
}

// Period returns the frame period, or 0 when unthrottled.
func (t Ticker) Period() time.Duration {
	if t.FPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(t.FPS)
}

// Run calls fn once per frame until ctx is done, the frame limit is
// reached or fn returns an error. ErrStop from fn ends the loop with a nil
// error; a cancelled ctx ends it with ctx.Err().
func (t Ticker) Run(ctx context.Context, fn func(Tick) error) error {
	var tc <-chan time.Time
	if p := t.Period(); p > 0 {
		ticker := time.NewTicker(p)
		defer ticker.Stop()
		tc = ticker.C
	}

	log := fundamentals.Logger()
	log.Debug("loop: started", "fps", t.FPS, "frames", t.Frames)

	start := time.Now()
	last := start
	for frame := uint64(0); ; frame++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := time.Now()
		tick := Tick{Frame: frame, Time: now.Sub(start)}
		if frame > 0 {
			tick.Delta = now.Sub(last)
		}
		last = now

		if err := fn(tick); err != nil {
			if errors.Is(err, ErrStop) {
				log.Debug("loop: stopped", "frame", frame)
				return nil
			}
			return err
		}
		if t.Frames > 0 && frame+1 >= uint64(t.Frames) {
			log.Debug("loop: frame limit reached", "frames", frame+1)
			return nil
		}

		if tc != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tc:
			}
		}
	}
}
