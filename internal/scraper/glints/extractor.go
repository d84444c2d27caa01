package glints

import (
	"encoding/json"
	"fmt"
	"log"

	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"

	"github.com/playwright-community/playwright-go"
)

// Selectors holds every piece of Glints markup the extractor depends on.
type Selectors struct {
	Card    string
	Title   string
	Company string
	Tag     string
	Link    string
}

func DefaultSelectors() Selectors {
	return Selectors{
		Card:    "div[aria-label^='Job:']",
		Title:   "h2",
		Company: "span[data-cy='company_name_job_card']",
		Tag:     ".TagStyle__TagContentWrapper-sc-r1wv7a-1",
		Link:    "a",
	}
}

func (s Selectors) jsArg() map[string]interface{} {
	return map[string]interface{}{
		"title":   s.Title,
		"company": s.Company,
		"tag":     s.Tag,
		"link":    s.Link,
	}
}

// one round trip for all cards instead of a locator call per field
const cardSnapshotJS = `(cards, sel) => cards.map((card) => {
	const text = (el) => (el ? (el.innerText || el.textContent || "").trim() : "");
	const anchor = card.querySelector(sel.link) || card.closest("a");
	return {
		title: text(card.querySelector(sel.title)),
		company: text(card.querySelector(sel.company)),
		tags: Array.from(card.querySelectorAll(sel.tag)).map((el) => text(el)),
		href: anchor ? anchor.getAttribute("href") || "" : "",
		text: card.innerText || card.textContent || "",
	};
})`

// Extractor turns loaded job cards into at most max jobs, in DOM order.
type Extractor struct {
	sel    Selectors
	parser *Parser
	max    int
}

func NewExtractor(cfg config.GlintsConfig, sel Selectors) *Extractor {
	return &Extractor{
		sel:    sel,
		parser: NewParser(cfg),
		max:    cfg.MaxResults,
	}
}

func (e *Extractor) Selectors() Selectors {
	return e.sel
}

// ExtractListings snapshots every job card on the loaded page and parses them.
func (e *Extractor) ExtractListings(page playwright.Page) ([]scraper.Job, error) {
	v, err := page.Locator(e.sel.Card).EvaluateAll(cardSnapshotJS, e.sel.jsArg())
	if err != nil {
		return nil, fmt.Errorf("snapshot job cards: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode job cards: %w", err)
	}
	var cards []RawCard
	if err := json.Unmarshal(data, &cards); err != nil {
		return nil, fmt.Errorf("decode job cards: %w", err)
	}

	log.Printf("    📦 Found %d job cards", len(cards))
	return e.Extract(cards), nil
}

// Extract parses cards in order, silently skipping the unparsable ones, and stops at the cap.
func (e *Extractor) Extract(cards []RawCard) []scraper.Job {
	jobs := make([]scraper.Job, 0, e.max)
	skipped := 0
	for _, card := range cards {
		if len(jobs) >= e.max {
			break
		}
		job, ok := e.parser.ParseCard(card)
		if !ok {
			skipped++
			continue
		}
		jobs = append(jobs, job)
		log.Printf("      ✅ %s - %s", job.Title, job.Company)
	}
	if skipped > 0 {
		log.Printf("    ⏭️ Skipped %d cards without title or company", skipped)
	}
	return jobs
}
