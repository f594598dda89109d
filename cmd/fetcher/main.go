// Package main provides the newsletter fetcher command-line tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/fetch"
	"llmdigest/internal/logger"
)

const defaultConfigPath = "configs/digest.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	year := flag.Int("year", time.Now().UTC().Year(), "Year of the start date")
	days := flag.Int("days", 0, "Number of days to download (default: config days)")
	delay := flag.Float64("delay", 0, "Delay between requests in seconds (default: config delay)")
	outputDir := flag.String("output-dir", "", "Custom output directory (default: {month}-{day})")
	force := flag.Bool("force", false, "Re-download days that already have a verified file")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if flag.NArg() < 2 {
		fmt.Println("❌ Error: month and starting day are required")
		fmt.Println()
		printUsage()
		os.Exit(1)
	}

	month, err := fetch.ParseMonth(flag.Arg(0))
	if err != nil {
		fmt.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	day, err := strconv.Atoi(flag.Arg(1))
	if err != nil {
		fmt.Printf("❌ Error: invalid day %q\n", flag.Arg(1))
		os.Exit(1)
	}

	cfg := loadConfig(*configFile)

	if *days > 0 {
		cfg.Digest.Fetch.Days = *days
	}

	if *delay > 0 {
		cfg.Digest.Fetch.DelayMs = int(*delay * 1000)
	}

	if *force {
		cfg.Features.SkipVerified = false
	}

	start := time.Date(*year, month, day, 0, 0, 0, 0, time.UTC)

	dir := *outputDir
	if dir == "" {
		dir = fetch.BatchDirName(start)
	}

	fmt.Printf("📁 Output directory: %s\n", dir)
	fmt.Printf("📅 Downloading %d days starting from %s\n", cfg.Digest.Fetch.Days, start.Format("2006-01-02"))
	fmt.Println(strings.Repeat("-", 50))

	lg := logger.NewLogger(cfg.Digest.Logging.Level, cfg.Digest.Logging.Format)
	fetcher := fetch.NewFetcher(cfg, lg)

	results, err := fetcher.FetchBatch(context.Background(), dir, start, cfg.Digest.Fetch.Days)
	if err != nil {
		fmt.Printf("❌ Download failed: %v\n", err)
		os.Exit(1)
	}

	var fetched, skipped, unavailable, failed int

	for _, res := range results {
		switch res.Status {
		case fetch.StatusFetched:
			fetched++
		case fetch.StatusSkipped:
			skipped++
		case fetch.StatusUnavailable:
			unavailable++
		case fetch.StatusFailed:
			failed++
		}
	}

	fmt.Println(strings.Repeat("-", 50))
	fmt.Printf("📊 Summary: %d/%d reports downloaded successfully\n", fetched+skipped, len(results))

	if skipped > 0 {
		fmt.Printf("   (%d already present and verified)\n", skipped)
	}

	if unavailable > 0 {
		fmt.Printf("   (%d not published yet or removed)\n", unavailable)
	}

	if failed > 0 {
		fmt.Printf("   (%d failed to download)\n", failed)
	}

	fmt.Printf("📂 Files saved to: %s\n", dir)

	if fetched+skipped > 0 {
		fmt.Println("\n💡 You can now merge the batch:")
		fmt.Printf("   ./bin/merger %s\n", dir)
	} else {
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		if _, err := os.Stat(defaultConfigPath); err == nil {
			path = defaultConfigPath
		}
	}

	if path == "" {
		return config.DefaultConfig()
	}

	fmt.Printf("⚙️  Loading configuration from: %s\n", path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (proceeding with defaults)\n", err)
		return config.DefaultConfig()
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: ./bin/fetcher [OPTIONS] <month> <day>")
	fmt.Println()
	fmt.Println("Downloads a window of LLM Daily newsletter issues as markdown.")
	fmt.Println()
	fmt.Println("Arguments:")
	fmt.Println("  month   Month name (e.g., july) or number (e.g., 7)")
	fmt.Println("  day     Starting day (e.g., 6)")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/fetcher july 6")
	fmt.Println("  ./bin/fetcher -days 3 -output-dir batch 7 6")
}
