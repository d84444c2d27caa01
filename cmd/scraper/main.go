package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"
	"go-jobpilot-scraper/internal/dedup"
	"go-jobpilot-scraper/internal/scraper"
	"go-jobpilot-scraper/internal/scraper/glints"
	"go-jobpilot-scraper/internal/telegram"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml (default $SCRAPER_CONFIG or configs/config.yaml)")
	query := flag.String("q", "", "search keywords; remaining arguments are used when empty")
	htmlPath := flag.String("html", "", "extract from a saved search results page instead of a live browser")
	notify := flag.Bool("telegram", false, "send new jobs to the configured Telegram chat")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	q := strings.TrimSpace(*query)
	if q == "" {
		q = strings.Join(flag.Args(), " ")
	}

	s := glints.NewGlintsScraper(cfg)

	var jobs []scraper.Job
	if *htmlPath != "" {
		jobs, err = extractFile(s.Extractor(), *htmlPath)
	} else {
		runner := scraper.NewRunner(browser.NewLauncher(cfg.Browser), s, cfg.Timeouts, cfg.Retry)
		jobs, err = runner.Search(context.Background(), q)
	}
	if err != nil {
		log.Fatalf("❌ Search failed: %v", err)
	}

	out, err := json.MarshalIndent(jobs, "", "  ")
	if err != nil {
		log.Fatalf("❌ Failed to encode jobs: %v", err)
	}
	fmt.Println(string(out))

	saveJobs(cfg.OutputDir, jobs)

	if *notify {
		if !cfg.TelegramEnabled() {
			log.Fatal("❌ Telegram requested but TELEGRAM_BOT_TOKEN/TELEGRAM_CHAT_ID are not set")
		}
		if err := sendJobs(cfg, q, jobs); err != nil {
			log.Fatalf("❌ Telegram delivery failed: %v", err)
		}
	}

	log.Println("🏁 Execution finished.")
}

func extractFile(e *glints.Extractor, path string) ([]scraper.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	log.Printf("📄 Extracting jobs from %s", path)
	return e.ExtractHTML(f)
}

func sendJobs(cfg *config.Config, query string, jobs []scraper.Job) error {
	bot, err := telegram.NewBot(cfg.TelegramToken, cfg.TelegramChatID)
	if err != nil {
		return err
	}
	log.Println("🤖 Telegram Bot initialized.")

	cache, err := dedup.NewSentCache(cfg.OutputDir)
	if err != nil {
		return err
	}
	unsent := cache.Unsent(jobs)
	log.Printf("🔍 Deduplication: %d total -> %d unsent jobs", len(jobs), len(unsent))

	sent := 0
	for i, job := range unsent {
		log.Printf("  [%d/%d] %s @ %s", i+1, len(unsent), job.Title, job.Company)
		if err := bot.SendJob(job); err != nil {
			log.Printf("⚠️ Failed to send job to Telegram: %v", err)
			continue
		}
		if err := cache.MarkSent(job.Link); err != nil {
			log.Printf("⚠️ Failed to update sent cache: %v", err)
		}
		sent++
		//1 second delay to avoid 429
		time.Sleep(1 * time.Second)
	}

	status := fmt.Sprintf("✅ %q: found %d jobs, sent %d new.", query, len(jobs), sent)
	if len(jobs) == 0 {
		status = fmt.Sprintf("%q: no jobs found, try again.", query)
	}
	return bot.SendStatus(status)
}

func saveJobs(dir string, jobs []scraper.Job) {
	if len(jobs) == 0 {
		log.Println("ℹ️ No jobs to save.")
		return
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create output directory: %v", err)
		return
	}

	//gen filename: job-search-YYYY-MM-DD.json
	filename := fmt.Sprintf("job-search-%s.json", time.Now().Format("2006-01-02"))
	filePath := filepath.Join(dir, filename)

	data, err := json.MarshalIndent(jobs, "", " ")
	if err != nil {
		log.Printf("⚠️ Failed to marshal jobs to JSON: %v", err)
		return
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		log.Printf("⚠️ Failed to write output file: %v", err)
		return
	}

	log.Printf("📁 Results saved to %s", filePath)
}
