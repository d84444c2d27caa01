package glints

import (
	"net/url"
	"strings"

	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"
)

// RawCard is the text pulled out of one job card before any parsing.
type RawCard struct {
	Title       string   `json:"title"`
	CompanyText string   `json:"company"`
	Tags        []string `json:"tags"`
	Href        string   `json:"href"`
	Text        string   `json:"text"`
}

// Parser turns a RawCard into a Job.
type Parser struct {
	baseURL      string
	maxTags      int
	placeholders map[string]bool
	splitters    []Splitter
}

func NewParser(cfg config.GlintsConfig) *Parser {
	placeholders := make(map[string]bool, len(cfg.PlaceholderTags))
	for _, tag := range cfg.PlaceholderTags {
		placeholders[foldText(tag)] = true
	}
	return &Parser{
		baseURL:      cfg.BaseURL,
		maxTags:      cfg.MaxTags,
		placeholders: placeholders,
		splitters:    DefaultSplitters(cfg.KnownLocations),
	}
}

// ParseCard returns false when the card has no recoverable title or company;
// every other field falls back to a default instead.
func (p *Parser) ParseCard(card RawCard) (scraper.Job, bool) {
	title := cleanText(card.Title)
	company, location := SplitCompanyLocation(cleanLines(card.CompanyText), p.splitters)
	if title == "" || company == "" {
		return scraper.Job{}, false
	}

	return scraper.Job{
		Title:    title,
		Company:  company,
		Location: location,
		Salary:   ParseSalary(card.Text),
		Tags:     p.ParseTags(card.Tags),
		Link:     p.ResolveLink(card.Href),
	}, true
}

// ParseTags trims chips, drops empty and placeholder ones and keeps the first maxTags.
func (p *Parser) ParseTags(chips []string) []string {
	tags := make([]string, 0, p.maxTags)
	for _, chip := range chips {
		if len(tags) >= p.maxTags {
			break
		}
		chip = cleanText(chip)
		if chip == "" || p.placeholders[foldText(chip)] {
			continue
		}
		tags = append(tags, chip)
	}
	return tags
}

// ParseSalary returns the first line of the card text that starts with "Rp".
func ParseSalary(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = cleanText(line); strings.HasPrefix(line, "Rp") {
			return line
		}
	}
	return scraper.SalaryNotSpecified
}

// ResolveLink makes href absolute against the site origin. Absolute links pass through.
func (p *Parser) ResolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	ref, err := url.Parse(href)
	if err == nil && ref.IsAbs() {
		return href
	}
	base, baseErr := url.Parse(p.baseURL)
	if err != nil || baseErr != nil {
		return strings.TrimRight(p.baseURL, "/") + "/" + strings.TrimLeft(href, "/")
	}
	return base.ResolveReference(ref).String()
}
