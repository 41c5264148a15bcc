package frame

import (
	"context"
	"errors"
	"time"
)

type RunOptions struct {
	// MaxFrames stops the loop after that many frames; 0 runs until the
	// context ends or the backend closes.
	MaxFrames int
	// Interval paces the loop; 0 leaves pacing to the backend.
	Interval time.Duration
}

// Run advances d and presents every frame on b. A backend reporting
// ErrClosed ends the loop without error.
func Run(ctx context.Context, d *Driver, b Backend, opts RunOptions) error {
	var tick <-chan time.Time
	if opts.Interval > 0 {
		t := time.NewTicker(opts.Interval)
		defer t.Stop()
		tick = t.C
	}

	d.logger.Info("frame loop started", "max_frames", opts.MaxFrames, "interval", opts.Interval)
	defer func() {
		c := d.Counters()
		d.logger.Info("frame loop stopped", "frames", c.Frames, "replacements", c.Replacements, "recoveries", c.Recoveries)
	}()

	for n := 0; opts.MaxFrames == 0 || n < opts.MaxFrames; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := d.Advance()
		if err := d.Present(b, f); err != nil {
			if errors.Is(err, ErrClosed) {
				return nil
			}
			return err
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-tick:
			}
		}
	}
	return nil
}
