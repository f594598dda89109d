// Package main provides the unified worker command that runs the whole
// digest pipeline: fetch, merge, polish, report and translate.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/fetch"
	"llmdigest/internal/logger"
	"llmdigest/internal/merge"
	"llmdigest/internal/models"
	"llmdigest/internal/report"
	"llmdigest/internal/transform"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "configs/digest.yaml"

func main() {
	_ = godotenv.Load()

	monthFlag := flag.String("month", "", "Month name (e.g., july) or number (e.g., 7)")
	dayFlag := flag.Int("day", 0, "Starting day of the fetch window")
	yearFlag := flag.Int("year", time.Now().UTC().Year(), "Year of the start date")
	daysFlag := flag.Int("days", 0, "Number of days to fetch (default: config days)")
	dirFlag := flag.String("dir", "", "Batch directory (default: {month}-{day})")
	configFile := flag.String("config", "", "Path to YAML configuration file")
	apiKey := flag.String("api-key", "", "Gemini API key (or set GEMINI_API_KEY env var)")
	skipFetch := flag.Bool("skip-fetch", false, "Skip fetching and merge an existing batch directory")
	skipPolish := flag.Bool("skip-polish", false, "Skip cleaning and top-item selection")
	skipTranslate := flag.Bool("skip-translate", false, "Skip the Chinese translation")
	skipReport := flag.Bool("skip-report", false, "Skip report generation")
	force := flag.Bool("force", false, "Re-download days that already have a verified file")

	flag.Parse()

	cfg := loadConfig(*configFile)

	if *daysFlag > 0 {
		cfg.Digest.Fetch.Days = *daysFlag
	}

	if *force {
		cfg.Features.SkipVerified = false
	}

	lg := logger.NewLogger(cfg.Digest.Logging.Level, cfg.Digest.Logging.Format)

	// Resolve the fetch window and batch directory.
	var start time.Time

	dir := *dirFlag

	if !*skipFetch || dir == "" {
		if *monthFlag == "" || *dayFlag == 0 {
			lg.Error("Please provide -month and -day (or -skip-fetch with -dir)")
			flag.PrintDefaults()
			os.Exit(1)
		}

		month, err := fetch.ParseMonth(*monthFlag)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ %v", err))
			os.Exit(1)
		}

		start = time.Date(*yearFlag, month, *dayFlag, 0, 0, 0, 0, time.UTC)

		if dir == "" {
			dir = fetch.BatchDirName(start)
		}
	}

	lg.Info("🚀 Starting LLM Digest Pipeline")
	lg.Info(fmt.Sprintf("📍 Batch: %s", dir))
	lg.Info(fmt.Sprintf("🎯 Output: %s", cfg.Digest.Output.Dir))

	ctx := context.Background()
	pipelineStart := time.Now()

	// 1. Ingestion (Fetcher)
	// ----------------------
	var fetched, skipped int

	if *skipFetch {
		lg.Info("Phase 1: Ingestion skipped (-skip-fetch)")
	} else {
		lg.Info("Phase 1: Ingestion (Fetching)...")

		fetchStart := time.Now()
		fetcher := fetch.NewFetcher(cfg, lg)

		results, err := fetcher.FetchBatch(ctx, dir, start, cfg.Digest.Fetch.Days)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ Fetch failed: %v", err))
			os.Exit(1)
		}

		for _, res := range results {
			switch res.Status {
			case fetch.StatusFetched:
				fetched++
			case fetch.StatusSkipped:
				skipped++
			}
		}

		if fetched+skipped == 0 {
			lg.Error("❌ No issues could be downloaded for the requested window")
			os.Exit(1)
		}

		lg.Info(fmt.Sprintf("✅ Fetched %d days (%d already present) in %v", fetched, skipped, time.Since(fetchStart)))
	}

	// 2. Processing (Merger)
	// ----------------------
	lg.Info("Phase 2: Processing (Merging)...")

	mergeStart := time.Now()

	docs, err := merge.LoadDocuments(dir)
	if err != nil {
		lg.Error(fmt.Sprintf("❌ Merge failed: %v", err))
		os.Exit(1)
	}

	engine := merge.NewEngine()
	ex := engine.MergeAt(filepath.Base(dir), *yearFlag, docs)

	if len(ex.Warnings) > 0 {
		lg.Warn(fmt.Sprintf("⚠️  %d parser warnings (run the merger alone for details)", len(ex.Warnings)))
	}

	d := ex.Digest
	mergedItems := d.TotalItems()

	mergedPath := filepath.Join(cfg.Digest.Output.Dir, "merged_data.json")
	if err := writeDigest(cfg, mergedPath, d); err != nil {
		lg.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	lg.Info(fmt.Sprintf("✅ Merged %d files, %d items in %v", len(ex.Documents), mergedItems, time.Since(mergeStart)))

	// Gemini client, shared by the polish and translate phases.
	var svc *transform.Service

	var totalUsage transform.Usage

	if !*skipPolish || !*skipTranslate {
		svc, err = transform.NewService(ctx, *apiKey, cfg, lg)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ %v (use -skip-polish -skip-translate to run without Gemini)", err))
			os.Exit(1)
		}
		defer svc.Close()
	}

	// 3. Transformation (Polisher)
	// ----------------------------
	finalPath := mergedPath

	if *skipPolish {
		lg.Info("Phase 3: Transformation skipped (-skip-polish)")
	} else {
		lg.Info("Phase 3: Transformation (Cleaning & Selection)...")

		polishStart := time.Now()

		cleanUsage, err := svc.CleanDigest(ctx, d)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ Cleaning failed: %v", err))
			os.Exit(1)
		}

		totalUsage.Add(cleanUsage)

		selectUsage, err := svc.SelectDigest(ctx, d)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ Selection failed: %v", err))
			os.Exit(1)
		}

		totalUsage.Add(selectUsage)

		finalPath = filepath.Join(cfg.Digest.Output.Dir, "merged_data_top_items.json")
		if err := writeDigest(cfg, finalPath, d); err != nil {
			lg.Error(fmt.Sprintf("❌ %v", err))
			os.Exit(1)
		}

		lg.Info(fmt.Sprintf("✅ Polished down to %d items in %v", d.TotalItems(), time.Since(polishStart)))
	}

	// 4. Reporting (English)
	// ----------------------
	var reports []string

	if *skipReport {
		lg.Info("Phase 4: Reporting skipped (-skip-report)")
	} else {
		lg.Info("Phase 4: Reporting...")

		reportPath := filepath.Join(cfg.Digest.Output.Dir, "report.html")
		if err := report.WriteHTML(reportPath, d, time.Now()); err != nil {
			lg.Error(fmt.Sprintf("❌ %v", err))
			os.Exit(1)
		}

		reports = append(reports, reportPath)

		lg.Info(fmt.Sprintf("✅ Report written: %s", reportPath))
	}

	// 5. Translation (+ Chinese report)
	// ---------------------------------
	translatedPath := ""

	if *skipTranslate {
		lg.Info("Phase 5: Translation skipped (-skip-translate)")
	} else {
		lg.Info("Phase 5: Translation...")

		translateStart := time.Now()

		usage, err := svc.TranslateDigest(ctx, d)
		if err != nil {
			lg.Error(fmt.Sprintf("❌ Translation failed: %v", err))
			os.Exit(1)
		}

		totalUsage.Add(usage)

		translatedPath = filepath.Join(cfg.Digest.Output.Dir, "merged_data_chinese.json")
		if err := writeDigest(cfg, translatedPath, d); err != nil {
			lg.Error(fmt.Sprintf("❌ %v", err))
			os.Exit(1)
		}

		if !*skipReport {
			zhReport := filepath.Join(cfg.Digest.Output.Dir, "report_chinese.html")
			if err := report.WriteHTML(zhReport, d, time.Now()); err != nil {
				lg.Error(fmt.Sprintf("❌ %v", err))
				os.Exit(1)
			}

			reports = append(reports, zhReport)
		}

		lg.Info(fmt.Sprintf("✅ Translated %d items in %v", d.TotalItems(), time.Since(translateStart)))
	}

	// 6. Final Report
	// ---------------
	lg.Info("✨ Pipeline Complete!")
	fmt.Println("\n------------------------------------------------")
	fmt.Printf("📊 Pipeline Summary\n")
	fmt.Println("------------------------------------------------")
	fmt.Printf("Batch: %s (%d days)\n", dir, cfg.Digest.Fetch.Days)

	if !*skipFetch {
		fmt.Printf("Fetched: %d new, %d already present\n", fetched, skipped)
	}

	fmt.Printf("Merged: %d files, %d items\n", len(ex.Documents), mergedItems)
	fmt.Printf("Final digest: %s (%d items)\n", finalPath, d.TotalItems())

	if translatedPath != "" {
		fmt.Printf("Translated: %s\n", translatedPath)
	}

	if len(reports) > 0 {
		fmt.Printf("Reports: %s\n", strings.Join(reports, ", "))
	}

	if totalUsage.Total() > 0 {
		fmt.Printf("Tokens: %d input + %d output\n", totalUsage.InputTokens, totalUsage.OutputTokens)
	}

	fmt.Printf("Total Duration: %v\n", time.Since(pipelineStart))
	fmt.Println("------------------------------------------------")
}

func writeDigest(cfg *config.Config, path string, d *models.Digest) error {
	if cfg.Digest.Output.PrettyPrint {
		return models.WriteDigestFile(path, d)
	}

	return models.WriteDigestFileCompact(path, d)
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
