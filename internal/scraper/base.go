// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// SalaryNotSpecified is used when a card shows no salary line.
const SalaryNotSpecified = "Not specified"

// Job is one scraped listing. Title and Company are always non-empty;
// every other field degrades to its zero value (or SalaryNotSpecified).
type Job struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	Salary   string   `json:"salary"`
	Tags     []string `json:"tags"`
	Link     string   `json:"link"`
}

//Scraper defines the interface that all platform scrapers must implement
type Scraper interface {
	//Scrape loads the search results for query into page and extracts them
	Scrape(ctx context.Context, page playwright.Page, query string) ([]Job, error)

	//Name is the platform name (Glints, ...)
	Name() string
}

// BuildQuery joins profile skills and the desired industry into one search phrase.
func BuildQuery(skills []string, industry string) string {
	var parts []string
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if industry = strings.TrimSpace(industry); industry != "" {
		parts = append(parts, industry)
	}
	return strings.Join(parts, " ")
}
