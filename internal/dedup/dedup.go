package dedup

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go-jobpilot-scraper/internal/scraper"
)

const (
	cacheFile = "sent_jobs.json"
	retention = 30 * 24 * time.Hour
)

type sentEntry struct {
	Link      string `json:"link"`
	Timestamp int64  `json:"timestamp"`
}

// SentCache remembers which job links were already delivered so a repeated search
// does not push the same listing twice.
type SentCache struct {
	mu       sync.Mutex
	filePath string
	sent     map[string]int64
	now      func() time.Time
}

// NewSentCache loads the cache kept in dir. Entries older than 30 days are dropped.
func NewSentCache(dir string) (*SentCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	c := &SentCache{
		filePath: filepath.Join(dir, cacheFile),
		sent:     make(map[string]int64),
		now:      time.Now,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Unsent returns the jobs whose link has not been delivered yet. Jobs without a link
// cannot be tracked and always pass.
func (c *SentCache) Unsent(jobs []scraper.Job) []scraper.Job {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]scraper.Job, 0, len(jobs))
	for _, job := range jobs {
		if _, ok := c.sent[job.Link]; ok && job.Link != "" {
			continue
		}
		out = append(out, job)
	}
	return out
}

// MarkSent records links and persists the cache when anything changed.
func (c *SentCache) MarkSent(links ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now().UnixMilli()
	changed := false
	for _, link := range links {
		if link == "" {
			continue
		}
		if _, ok := c.sent[link]; !ok {
			c.sent[link] = now
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return c.save()
}

func (c *SentCache) load() error {
	data, err := os.ReadFile(c.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", c.filePath, err)
	}

	var entries []sentEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse %s: %w", c.filePath, err)
	}

	cutoff := c.now().Add(-retention).UnixMilli()
	for _, e := range entries {
		if e.Timestamp > cutoff {
			c.sent[e.Link] = e.Timestamp
		}
	}
	log.Printf("📋 Loaded %d previously sent jobs (%d expired and removed)", len(c.sent), len(entries)-len(c.sent))
	return nil
}

// caller holds mu
func (c *SentCache) save() error {
	entries := make([]sentEntry, 0, len(c.sent))
	for link, ts := range c.sent {
		entries = append(entries, sentEntry{Link: link, Timestamp: ts})
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sent jobs: %w", err)
	}
	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", c.filePath, err)
	}
	log.Printf("💾 Saved %d sent jobs to cache", len(entries))
	return nil
}
