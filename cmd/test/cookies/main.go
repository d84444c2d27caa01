package main

import (
	"flag"
	"fmt"
	"log"

	"go-jobpilot-scraper/internal/browser"
	"go-jobpilot-scraper/internal/config"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	path := flag.String("file", "", "cookie export to load (default browser.cookies_path)")
	flag.Parse()

	fmt.Println("🍪 Testing cookie loading...")

	if *path == "" {
		cfg, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		*path = cfg.Browser.CookiesPath
	}
	if *path == "" {
		log.Fatal("No cookie file: pass -file or set browser.cookies_path")
	}

	cookies, err := browser.LoadCookies(*path)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		fmt.Printf("Domain: %s\n", *c.Domain)
		if c.Secure != nil {
			fmt.Printf("Secure: %t\n", *c.Secure)
		}
	}
}
