package telegram

import (
	"testing"

	"go-jobpilot-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
)

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `PT\. Maju \(Jaya\)\!`, EscapeMarkdown("PT. Maju (Jaya)!"))
	assert.Equal(t, `Rp 8\.000\.000 \- Rp 12\.000\.000`, EscapeMarkdown("Rp 8.000.000 - Rp 12.000.000"))
	assert.Equal(t, `a\\b`, EscapeMarkdown(`a\b`))
}

func TestFormatJob(t *testing.T) {
	msg := FormatJob(scraper.Job{
		Title:    "Frontend Developer",
		Company:  "Acme Inc (PT)",
		Location: "Jakarta, Indonesia",
		Salary:   "Rp 8.000.000",
		Tags:     []string{"Remote", "Full-time"},
		Link:     "https://glints.com/id/opportunities/jobs/123",
	})

	assert.Contains(t, msg, "🔥 *Frontend Developer*")
	assert.Contains(t, msg, `🏢 Acme Inc \(PT\)`)
	assert.Contains(t, msg, "📍 Jakarta, Indonesia")
	assert.Contains(t, msg, `💰 Rp 8\.000\.000`)
	assert.Contains(t, msg, `🛠 Remote · Full\-time`)
	assert.Contains(t, msg, "🔗 [View Job](https://glints.com/id/opportunities/jobs/123)")
}

func TestFormatJob_Defaults(t *testing.T) {
	msg := FormatJob(scraper.Job{Title: "Backend", Company: "Acme"})

	assert.Contains(t, msg, "📍 N/A")
	assert.Contains(t, msg, "💰 Not specified")
	assert.NotContains(t, msg, "🛠")
	assert.NotContains(t, msg, "View Job")
}
