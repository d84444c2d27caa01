package dedup

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-jobpilot-scraper/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSentCache_UnsentAndMark(t *testing.T) {
	dir := t.TempDir()
	c, err := NewSentCache(dir)
	require.NoError(t, err)

	jobs := []scraper.Job{
		{Title: "A", Link: "https://glints.com/jobs/a"},
		{Title: "B", Link: "https://glints.com/jobs/b"},
		{Title: "No link"},
	}
	assert.Len(t, c.Unsent(jobs), 3)

	require.NoError(t, c.MarkSent("https://glints.com/jobs/a", ""))
	unsent := c.Unsent(jobs)
	require.Len(t, unsent, 2)
	assert.Equal(t, "B", unsent[0].Title)
	assert.Equal(t, "No link", unsent[1].Title)

	reloaded, err := NewSentCache(dir)
	require.NoError(t, err)
	assert.Len(t, reloaded.Unsent(jobs), 2)
}

func TestSentCache_DropsExpired(t *testing.T) {
	dir := t.TempDir()
	old := time.Now().Add(-31 * 24 * time.Hour).UnixMilli()
	fresh := time.Now().Add(-time.Hour).UnixMilli()
	data, err := json.Marshal([]sentEntry{
		{Link: "old", Timestamp: old},
		{Link: "fresh", Timestamp: fresh},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), data, 0644))

	c, err := NewSentCache(dir)
	require.NoError(t, err)
	unsent := c.Unsent([]scraper.Job{{Link: "old"}, {Link: "fresh"}})
	require.Len(t, unsent, 1)
	assert.Equal(t, "old", unsent[0].Link)
}

func TestSentCache_CorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, cacheFile), []byte("{not json"), 0644))

	_, err := NewSentCache(dir)
	assert.Error(t, err)
}

func TestSentCache_MarkNothingNew(t *testing.T) {
	dir := t.TempDir()
	c, err := NewSentCache(dir)
	require.NoError(t, err)

	require.NoError(t, c.MarkSent())
	_, err = os.Stat(filepath.Join(dir, cacheFile))
	assert.True(t, os.IsNotExist(err), "no write without changes")
}
