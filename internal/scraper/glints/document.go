package glints

import (
	"fmt"
	"io"
	"strings"

	"go-jobpilot-scraper/internal/scraper"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ExtractHTML parses a saved search results page without a browser.
func (e *Extractor) ExtractHTML(r io.Reader) ([]scraper.Job, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return e.Extract(DocumentCards(doc, e.sel)), nil
}

// DocumentCards builds the same snapshot as the in-browser script, from static HTML.
func DocumentCards(doc *goquery.Document, sel Selectors) []RawCard {
	var cards []RawCard
	doc.Find(sel.Card).Each(func(_ int, card *goquery.Selection) {
		raw := RawCard{
			Title:       visibleText(card.Find(sel.Title).First()),
			CompanyText: visibleText(card.Find(sel.Company).First()),
			Text:        visibleText(card),
		}

		anchor := card.Find(sel.Link).First()
		if anchor.Length() == 0 {
			anchor = card.Closest("a")
		}
		raw.Href, _ = anchor.Attr("href")

		card.Find(sel.Tag).Each(func(_ int, tag *goquery.Selection) {
			raw.Tags = append(raw.Tags, visibleText(tag))
		})
		cards = append(cards, raw)
	})
	return cards
}

var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Li: true, atom.Main: true,
	atom.Nav: true, atom.Ol: true, atom.P: true, atom.Section: true, atom.Table: true,
	atom.Tr: true, atom.Ul: true,
}

// visibleText approximates innerText: block elements and <br> break lines,
// whitespace inside a line collapses, scripts and styles are dropped.
func visibleText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		writeVisibleText(&b, n)
	}
	return cleanLines(b.String())
}

func writeVisibleText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(whitespaceRun.ReplaceAllString(n.Data, " "))
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template:
			return
		case atom.Br:
			b.WriteByte('\n')
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte('\n')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeVisibleText(b, c)
	}
	if block {
		b.WriteByte('\n')
	}
}
