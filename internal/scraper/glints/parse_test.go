package glints

import (
	"testing"

	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParser() *Parser {
	return NewParser(config.Default().Glints)
}

func TestParseTags(t *testing.T) {
	p := testParser()

	tags := p.ParseTags([]string{"Perusahaan Premium", "Remote", "Full-time", "Senior", "Contract"})
	assert.Equal(t, []string{"Remote", "Full-time", "Senior"}, tags)

	tags = p.ParseTags([]string{"  ", " premium company ", "\tRemote\n"})
	assert.Equal(t, []string{"Remote"}, tags)

	tags = p.ParseTags(nil)
	assert.NotNil(t, tags)
	assert.Empty(t, tags)
}

func TestParseSalary(t *testing.T) {
	text := "Frontend Developer\nPT Satu Digital\n  Rp 8.000.000 - Rp 12.000.000  \nRp 1"
	assert.Equal(t, "Rp 8.000.000 - Rp 12.000.000", ParseSalary(text))

	assert.Equal(t, scraper.SalaryNotSpecified, ParseSalary("Frontend Developer\nGaji dirahasiakan"))
	assert.Equal(t, scraper.SalaryNotSpecified, ParseSalary("IDR 8.000.000"))
	assert.Equal(t, scraper.SalaryNotSpecified, ParseSalary(""))
}

func TestResolveLink(t *testing.T) {
	p := testParser()

	tests := []struct {
		href string
		want string
	}{
		{"/opportunities/jobs/123", "https://glints.com/opportunities/jobs/123"},
		{"opportunities/jobs/123", "https://glints.com/opportunities/jobs/123"},
		{"https://glints.com/id/opportunities/jobs/abc", "https://glints.com/id/opportunities/jobs/abc"},
		{"http://example.com/job", "http://example.com/job"},
		{"/jobs/1?utm=x", "https://glints.com/jobs/1?utm=x"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.ResolveLink(tt.href), tt.href)
	}
}

func TestParseCard(t *testing.T) {
	p := testParser()

	job, ok := p.ParseCard(RawCard{
		Title:       " Frontend  Developer ",
		CompanyText: "Acme Inc (PT)Jakarta, Indonesia",
		Tags:        []string{"Perusahaan Premium", "Remote"},
		Href:        "/opportunities/jobs/123",
		Text:        "Frontend Developer\nRp 8.000.000 - Rp 12.000.000",
	})
	require.True(t, ok)
	assert.Equal(t, scraper.Job{
		Title:    "Frontend Developer",
		Company:  "Acme Inc (PT)",
		Location: "Jakarta, Indonesia",
		Salary:   "Rp 8.000.000 - Rp 12.000.000",
		Tags:     []string{"Remote"},
		Link:     "https://glints.com/opportunities/jobs/123",
	}, job)
}

func TestParseCard_Skips(t *testing.T) {
	p := testParser()

	_, ok := p.ParseCard(RawCard{CompanyText: "Acme"})
	assert.False(t, ok, "missing title")

	_, ok = p.ParseCard(RawCard{Title: "Backend Engineer", CompanyText: " \n "})
	assert.False(t, ok, "missing company")

	job, ok := p.ParseCard(RawCard{Title: "Backend Engineer", CompanyText: "Acme"})
	require.True(t, ok)
	assert.Equal(t, scraper.SalaryNotSpecified, job.Salary)
	assert.Empty(t, job.Location)
	assert.Empty(t, job.Link)
	assert.NotNil(t, job.Tags)
}

func TestExtract_CapAndOrder(t *testing.T) {
	cfg := config.Default().Glints
	cfg.MaxResults = 3
	e := NewExtractor(cfg, DefaultSelectors())

	cards := []RawCard{
		{Title: "A", CompanyText: "Acme"},
		{CompanyText: "No Title"},
		{Title: "B", CompanyText: "Acme"},
		{Title: "C", CompanyText: "Acme"},
		{Title: "D", CompanyText: "Acme"},
	}
	jobs := e.Extract(cards)
	require.Len(t, jobs, 3)
	assert.Equal(t, "A", jobs[0].Title)
	assert.Equal(t, "B", jobs[1].Title)
	assert.Equal(t, "C", jobs[2].Title)

	assert.NotNil(t, e.Extract(nil))
}
