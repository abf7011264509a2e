package core

import (
	"context"
	"time"
)

// Pacer spaces simulation steps by a fixed delay.
type Pacer struct {
	delay time.Duration
	last  time.Time
	now   func() time.Time
}

// NewPacer returns a Pacer that waits delay between ticks. A non-positive
// delay never blocks.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{delay: delay, now: time.Now}
}

// NewPacerTPS constructs a Pacer targeting the given ticks per second.
func NewPacerTPS(tps int) *Pacer {
	if tps <= 0 {
		tps = 60
	}
	return NewPacer(time.Second / time.Duration(tps))
}

// Delay returns the configured inter-step delay.
func (p *Pacer) Delay() time.Duration { return p.delay }

// SetDelay changes the delay. It is safe to call from the main loop.
func (p *Pacer) SetDelay(d time.Duration) { p.delay = d }

// Wait blocks until delay has elapsed since the previous Wait returned or ctx
// is done. Time spent between calls counts toward the delay.
func (p *Pacer) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if p.delay <= 0 {
		p.last = p.now()
		return nil
	}
	remaining := p.delay
	if !p.last.IsZero() {
		remaining -= p.now().Sub(p.last)
	}
	if remaining > 0 {
		t := time.NewTimer(remaining)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}
	}
	p.last = p.now()
	return nil
}
