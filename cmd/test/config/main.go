package main

import (
	"flag"
	"fmt"
	"log"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"
)

func redact(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "****"
}

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")

	endpoint := browser.NewLauncher(cfg.Browser).Endpoint()
	fmt.Printf("   Browser: %s via %s, headless=%t\n", endpoint, cfg.Browser.Protocol, cfg.Browser.Headless)
	if cfg.Browser.Token != "" {
		fmt.Printf("   Browser Token: %s\n", redact(cfg.Browser.Token))
	}
	fmt.Printf("   Search: %s%s (max %d results, %d tags)\n", cfg.Glints.BaseURL, cfg.Glints.SearchPath, cfg.Glints.MaxResults, cfg.Glints.MaxTags)
	fmt.Printf("   Scroll: %dpx every %s, at most %d steps / %s\n", cfg.Scroll.StepPx, cfg.Scroll.Interval, cfg.Scroll.MaxSteps, cfg.Scroll.MaxDuration)
	fmt.Printf("   Timeouts: navigation %s, cards %s, pipeline %s\n", cfg.Timeouts.Navigation, cfg.Timeouts.CardWait, cfg.Timeouts.Pipeline)
	fmt.Printf("   Telegram: enabled=%t\n", cfg.TelegramEnabled())
}
