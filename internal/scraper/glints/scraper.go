package glints

import (
	"context"
	"log"

	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"
	"go-jobpilot-scraper/utils"

	"github.com/playwright-community/playwright-go"
)

type GlintsScraper struct {
	loader      *Loader
	extractor   *Extractor
	screenshots *utils.ScreenShotDebugger
}

func NewGlintsScraper(cfg *config.Config) *GlintsScraper {
	sel := DefaultSelectors()
	s := &GlintsScraper{
		loader:    NewLoader(cfg, sel.Card),
		extractor: NewExtractor(cfg.Glints, sel),
	}
	if cfg.Screenshots {
		s.screenshots = utils.NewScreenShotDebugger(cfg.ScreenshotDir)
	}
	return s
}

func (s *GlintsScraper) Name() string {
	return "Glints"
}

// Extractor exposes the card parser for offline use on saved pages.
func (s *GlintsScraper) Extractor() *Extractor {
	return s.extractor
}

// Scrape loads the results for query and extracts them. A page where no job card
// ever shows up is an empty result, not an error.
func (s *GlintsScraper) Scrape(ctx context.Context, page playwright.Page, query string) ([]scraper.Job, error) {
	log.Println("📋 Searching Glints...")

	if err := s.loader.LoadSearchResults(ctx, page, query); err != nil {
		if !scraper.IsNoResults(err) {
			return nil, err
		}
		log.Printf("    ⚠️ No job cards for %q: %v", query, err)
		if s.screenshots != nil {
			_ = s.screenshots.CaptureAndLog(page, "glints-no-cards", "🚨 Glints: no job cards rendered")
		}
		return []scraper.Job{}, nil
	}

	return s.extractor.ExtractListings(page)
}
