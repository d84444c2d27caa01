package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"

	"github.com/playwright-community/playwright-go"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	target := flag.String("url", "https://glints.com/id", "page to open")
	shot := flag.String("screenshot", "", "save a screenshot to this path")
	flag.Parse()

	fmt.Println("🌐 Testing browser session...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	launcher := browser.NewLauncher(cfg.Browser)
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.Pipeline)
	defer cancel()

	title, err := browser.WithSession(ctx, launcher, func(ctx context.Context, bctx playwright.BrowserContext) (string, error) {
		page, err := bctx.NewPage()
		if err != nil {
			return "", err
		}
		defer page.Close()

		fmt.Printf("🔍 Navigating to %s...\n", *target)
		if _, err := page.Goto(*target, playwright.PageGotoOptions{
			Timeout: browser.TimeoutMs(ctx, cfg.Timeouts.Navigation),
		}); err != nil {
			return "", err
		}

		if *shot != "" {
			if _, err := page.Screenshot(playwright.PageScreenshotOptions{
				Path: playwright.String(*shot),
			}); err != nil {
				log.Printf("Failed to take screenshot: %v", err)
			} else {
				fmt.Printf("📸 Screenshot saved: %s\n", *shot)
			}
		}
		return page.Title()
	})
	if err != nil {
		log.Fatalf("Browser test failed: %v", err)
	}

	fmt.Printf("✅ Page title: %s\n", title)
	fmt.Println("✨ Test complete!")
}
