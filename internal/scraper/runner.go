package scraper

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"

	"github.com/playwright-community/playwright-go"
)

// Runner executes one scraper per call inside its own browser session, under an
// overall deadline and an optional bounded retry.
type Runner struct {
	opener   browser.Opener
	scraper  Scraper
	timeout  time.Duration
	retry    config.RetryConfig
}

// NewRunner takes a *browser.Launcher as opener in production.
func NewRunner(opener browser.Opener, s Scraper, timeouts config.TimeoutConfig, retry config.RetryConfig) *Runner {
	return &Runner{
		opener:   opener,
		scraper:  s,
		timeout:  timeouts.Pipeline,
		retry:    retry,
	}
}

// Search returns the jobs found for query. A successful search with nothing found
// returns an empty, non-nil slice.
func (r *Runner) Search(ctx context.Context, query string) ([]Job, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	started := time.Now()
	log.Printf("▶️ Starting %s search for %q", r.scraper.Name(), query)

	var jobs []Job
	err := Retry(ctx, r.retry.Attempts, r.retry.Backoff, func(ctx context.Context) error {
		var err error
		jobs, err = browser.WithSession(ctx, r.opener, r.scrapeOnce(query))
		return err
	})
	if err != nil {
		log.Printf("❌ %s search for %q failed after %s: %v", r.scraper.Name(), query, time.Since(started).Round(time.Millisecond), err)
		return nil, err
	}

	if jobs == nil {
		jobs = []Job{}
	}
	log.Printf("✅ %s search for %q finished in %s. Found %d jobs.", r.scraper.Name(), query, time.Since(started).Round(time.Millisecond), len(jobs))
	return jobs, nil
}

func (r *Runner) scrapeOnce(query string) func(context.Context, playwright.BrowserContext) ([]Job, error) {
	return func(ctx context.Context, bctx playwright.BrowserContext) ([]Job, error) {
		page, err := bctx.NewPage()
		if err != nil {
			return nil, fmt.Errorf("create page: %w", err)
		}
		defer page.Close()

		return r.scraper.Scrape(ctx, page, query)
	}
}

// Retry calls fn once plus up to attempts more times while it fails with a retryable
// error, waiting backoff*n before the n-th retry.
func Retry(ctx context.Context, attempts int, backoff time.Duration, fn func(context.Context) error) error {
	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil || attempt >= attempts || !Retryable(err) || ctx.Err() != nil {
			return err
		}

		wait := backoff * time.Duration(attempt+1)
		log.Printf("🔁 Attempt %d failed: %v. Retrying in %s...", attempt+1, err, wait)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(wait):
		}
	}
}

// Retryable reports whether a whole new pipeline run could plausibly succeed.
func Retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var connErr *browser.ConnectionError
	var timeoutErr *TimeoutError
	return errors.As(err, &connErr) || errors.As(err, &timeoutErr)
}
