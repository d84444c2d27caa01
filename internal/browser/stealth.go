package browser

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits for a random duration between min and max milliseconds, or until ctx is done.
func RandomDelay(ctx context.Context, min, max int) {
	duration := min
	if max > min {
		duration = rand.Intn(max-min+1) + min
	}
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(duration) * time.Millisecond):
	}
}

// MouseJiggle simulates random mouse movements to prevent idle detection
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	viewportSize := page.ViewportSize()
	if viewportSize == nil || viewportSize.Width <= 0 || viewportSize.Height <= 0 {
		return nil
	}
	for i := 0; i < 3; i++ {
		x := rand.Intn(viewportSize.Width)
		y := rand.Intn(viewportSize.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		RandomDelay(ctx, 100, 300)
	}
	return nil
}

type ScrollOptions struct {
	Step        int
	Interval    time.Duration
	MaxSteps    int
	MaxDuration time.Duration
}

type ScrollResult struct {
	Steps     int
	Distance  int
	Height    int
	Converged bool
}

// reads the height first, then scrolls, so growth triggered by this step is seen next tick
const scrollStepJS = `(distance) => {
	const height = document.body.scrollHeight;
	window.scrollBy(0, distance);
	return height;
}`

// AutoScroll scrolls the page down by opts.Step every opts.Interval until the scrolled
// distance reaches the document height. Lazy-loaded content grows the height as we go;
// MaxSteps and MaxDuration stop pages that never stop growing.
func AutoScroll(ctx context.Context, page playwright.Page, opts ScrollOptions) (ScrollResult, error) {
	return autoScroll(ctx, opts, func(distance int) (int, error) {
		v, err := page.Evaluate(scrollStepJS, distance)
		if err != nil {
			return 0, err
		}
		return toInt(v)
	})
}

func autoScroll(ctx context.Context, opts ScrollOptions, step func(distance int) (int, error)) (ScrollResult, error) {
	var res ScrollResult
	if opts.Step <= 0 || opts.Interval <= 0 {
		return res, fmt.Errorf("invalid scroll options: step=%d interval=%s", opts.Step, opts.Interval)
	}

	ticker := time.NewTicker(opts.Interval)
	defer ticker.Stop()

	var deadline time.Time
	if opts.MaxDuration > 0 {
		deadline = time.Now().Add(opts.MaxDuration)
	}

	for {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		case <-ticker.C:
		}

		height, err := step(opts.Step)
		if err != nil {
			return res, fmt.Errorf("scroll step %d: %w", res.Steps+1, err)
		}
		res.Steps++
		res.Distance += opts.Step
		res.Height = height

		if res.Distance >= height {
			res.Converged = true
			return res, nil
		}
		if opts.MaxSteps > 0 && res.Steps >= opts.MaxSteps {
			return res, nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return res, nil
		}
	}
}

func toInt(v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	default:
		return 0, fmt.Errorf("unexpected scroll height %T(%v)", v, v)
	}
}
