package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// ScreenShotDebugger saves full-page screenshots when a page does not look the way a scraper expects
type ScreenShotDebugger struct {
	outputDir string
}

func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if dir == "" {
		dir = filepath.Join(".", "logs", "screenshots")
	}
	return &ScreenShotDebugger{
		outputDir: dir,
	}
}

// Path returns where a screenshot called name taken at t is written.
func (s *ScreenShotDebugger) Path(name string, t time.Time) string {
	name = unsafeFileChars.ReplaceAllString(name, "-")
	filename := fmt.Sprintf("%s_%s.png", name, t.Format("2006-01-02_15-04-05"))
	return filepath.Join(s.outputDir, filename)
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	log.Printf("📸 %s", message)
	if err := os.MkdirAll(s.outputDir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
		return err
	}

	path := s.Path(name, time.Now())
	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	}); err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", path)
	return nil
}
