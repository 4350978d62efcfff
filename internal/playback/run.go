package playback

import (
	"context"
	"time"
)

// Run advances p every interval and hands each frame to emit until the
// playback finishes, ctx is done or emit fails. Paused ticks emit nothing.
func Run(ctx context.Context, p *Player, interval time.Duration, emit func(Frame) error) error {
	if err := emit(p.Frame()); err != nil {
		return err
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-t.C:
			d := now.Sub(last)
			last = now
			before := p.Frame()
			if before.Paused {
				continue
			}
			if !before.Running {
				return nil
			}
			f := p.Advance(d)
			if err := emit(f); err != nil {
				return err
			}
			if !f.Running {
				return nil
			}
		}
	}
}
