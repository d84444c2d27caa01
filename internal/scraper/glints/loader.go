package glints

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

// BuildSearchURL returns the Glints explore URL for query, form-encoded the way the
// site does it (spaces become "+").
func BuildSearchURL(cfg config.GlintsConfig, query string) (string, error) {
	query = strings.Join(strings.Fields(query), " ")
	if query == "" {
		return "", scraper.ErrEmptyQuery
	}

	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u := base.JoinPath(cfg.SearchPath)

	q := url.Values{}
	q.Set("keyword", query)
	if cfg.Country != "" {
		q.Set("country", cfg.Country)
	}
	if cfg.LocationName != "" {
		q.Set("locationName", cfg.LocationName)
		q.Set("lowestLocationLevel", "1")
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// Loader brings a search results page to the point where job cards can be read.
type Loader struct {
	glints       config.GlintsConfig
	scroll       browser.ScrollOptions
	timeouts     config.TimeoutConfig
	stealth      bool
	cardSelector string
}

func NewLoader(cfg *config.Config, cardSelector string) *Loader {
	return &Loader{
		glints: cfg.Glints,
		scroll: browser.ScrollOptions{
			Step:        cfg.Scroll.StepPx,
			Interval:    cfg.Scroll.Interval,
			MaxSteps:    cfg.Scroll.MaxSteps,
			MaxDuration: cfg.Scroll.MaxDuration,
		},
		timeouts:     cfg.Timeouts,
		stealth:      cfg.Browser.Stealth,
		cardSelector: cardSelector,
	}
}

// LoadSearchResults navigates to the results for query, scrolls until lazy loading
// stops, then waits for the first job card.
func (l *Loader) LoadSearchResults(ctx context.Context, page playwright.Page, query string) error {
	target, err := BuildSearchURL(l.glints, query)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	log.Printf("  🔍 Searching: %s", target)
	if _, err := page.Goto(target, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
		Timeout:   browser.TimeoutMs(ctx, l.timeouts.Navigation),
	}); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return &scraper.TimeoutError{Step: scraper.StepNavigate, Timeout: l.timeouts.Navigation, Err: err}
		}
		return fmt.Errorf("navigate to %s: %w", target, err)
	}

	if l.stealth {
		if err := browser.MouseJiggle(ctx, page); err != nil {
			log.Printf("    ⚠️ Mouse jiggle failed: %v", err)
		}
	}

	res, err := browser.AutoScroll(ctx, page, l.scroll)
	if err != nil {
		return fmt.Errorf("auto-scroll: %w", err)
	}
	if res.Converged {
		log.Printf("    📜 Scrolled %dpx in %d steps", res.Distance, res.Steps)
	} else {
		log.Printf("    ⚠️ Page still growing at %dpx after %d steps, stopped scrolling", res.Height, res.Steps)
	}

	err = page.Locator(l.cardSelector).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: browser.TimeoutMs(ctx, l.timeouts.CardWait),
	})
	if err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			return &scraper.TimeoutError{Step: scraper.StepWaitCards, Timeout: l.timeouts.CardWait, Err: err}
		}
		return fmt.Errorf("wait for job cards: %w", err)
	}
	return nil
}
