// Package main provides the digest polisher command-line tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/logger"
	"llmdigest/internal/models"
	"llmdigest/internal/transform"

	"github.com/joho/godotenv"
)

const defaultConfigPath = "configs/digest.yaml"

func main() {
	_ = godotenv.Load()

	configFile := flag.String("config", "", "Path to YAML configuration file")
	cleaned := flag.String("cleaned", "", "Cleaned output file (default: input_cleaned.json)")
	final := flag.String("final", "", "Final output file (default: input_top_items.json)")
	batchSize := flag.Int("batch-size", 0, "Concurrent requests (default: config batch_size)")
	selectionOnly := flag.Bool("selection-only", false, "Skip cleaning and go directly to top item selection")
	apiKey := flag.String("api-key", "", "Gemini API key (or set GEMINI_API_KEY env var)")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	if flag.NArg() < 1 {
		fmt.Println("❌ Error: input file is required")
		fmt.Println()
		printUsage()
		os.Exit(1)
	}

	input := flag.Arg(0)

	cfg := loadConfig(*configFile)

	if *batchSize > 0 {
		cfg.Digest.Transform.BatchSize = *batchSize
	}

	ext := filepath.Ext(input)
	stem := strings.TrimSuffix(input, ext)

	cleanedFile := *cleaned
	finalFile := *final

	if *selectionOnly {
		if finalFile == "" {
			finalFile = stem + "_selected" + ext
		}
	} else {
		if cleanedFile == "" {
			cleanedFile = stem + "_cleaned" + ext
		}

		if finalFile == "" {
			finalFile = stem + "_top_items" + ext
		}
	}

	d, err := models.ReadDigestFile(input)
	if err != nil {
		fmt.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	lg := logger.NewLogger(cfg.Digest.Logging.Level, cfg.Digest.Logging.Format)
	ctx := context.Background()

	svc, err := transform.NewService(ctx, *apiKey, cfg, lg)
	if err != nil {
		if errors.Is(err, transform.ErrMissingAPIKey) {
			fmt.Println("❌ Error: Gemini API key not provided")
			fmt.Println("   Please set GEMINI_API_KEY environment variable or use -api-key argument")
		} else {
			fmt.Printf("❌ Error: %v\n", err)
		}

		os.Exit(1)
	}
	defer svc.Close()

	start := time.Now()

	if *selectionOnly {
		fmt.Println("🎯 Starting selection-only process...")
		fmt.Printf("📥 Input file: %s\n", input)
		fmt.Printf("📤 Output file: %s\n", finalFile)
		fmt.Println("⚡ Skipping cleaning step, going directly to selection...")
		fmt.Println(strings.Repeat("-", 80))
		printLimits(cfg.Digest.Selection)

		selectUsage, err := svc.SelectDigest(ctx, d)
		if err != nil {
			fmt.Printf("❌ Selection failed: %v\n", err)
			os.Exit(1)
		}

		if err := writeDigest(cfg, finalFile, d); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Println("\n🎉 Selection process completed successfully!")
		fmt.Printf("⏱️ Total time: %.1f seconds\n", time.Since(start).Seconds())
		fmt.Printf("📊 Token usage: %d input + %d output\n", selectUsage.InputTokens, selectUsage.OutputTokens)
		fmt.Printf("   Total: %d tokens\n", selectUsage.Total())
		fmt.Println("\n📁 Generated file:")
		fmt.Printf("   🎯 Selected items: %s\n", finalFile)

		return
	}

	fmt.Println("🚀 Starting JSON content polishing process...")
	fmt.Printf("📥 Input file: %s\n", input)
	fmt.Printf("🧹 Cleaned file: %s\n", cleanedFile)
	fmt.Printf("🎯 Final file: %s\n", finalFile)
	fmt.Printf("🔢 Batch size: %d\n", cfg.Digest.Transform.BatchSize)
	fmt.Println(strings.Repeat("-", 80))

	fmt.Printf("\n🧹 STAGE 1: Cleaning content with %s\n", cfg.Digest.Transform.CleanModel)

	cleanUsage, err := svc.CleanDigest(ctx, d)
	if err != nil {
		fmt.Printf("❌ Stage 1 failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeDigest(cfg, cleanedFile, d); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Stage 1 completed!")
	fmt.Printf("📊 Cleaning tokens - Input: %d, Output: %d\n", cleanUsage.InputTokens, cleanUsage.OutputTokens)
	fmt.Printf("📁 Cleaned file: %s\n", cleanedFile)

	fmt.Printf("\n🎯 STAGE 2: Selecting top impactful items with %s\n", cfg.Digest.Transform.SelectModel)
	printLimits(cfg.Digest.Selection)

	selectUsage, err := svc.SelectDigest(ctx, d)
	if err != nil {
		fmt.Printf("❌ Stage 2 failed: %v\n", err)
		os.Exit(1)
	}

	if err := writeDigest(cfg, finalFile, d); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Stage 2 completed!")
	fmt.Printf("📊 Selection tokens - Input: %d, Output: %d\n", selectUsage.InputTokens, selectUsage.OutputTokens)
	fmt.Printf("📁 Selected file: %s\n", finalFile)

	total := cleanUsage
	total.Add(selectUsage)

	fmt.Println("\n🎉 Polish process completed successfully!")
	fmt.Printf("⏱️ Total time: %.1f seconds\n", time.Since(start).Seconds())
	fmt.Println("📊 Total token usage:")
	fmt.Printf("   Stage 1 (Cleaning): %d input + %d output\n", cleanUsage.InputTokens, cleanUsage.OutputTokens)
	fmt.Printf("   Stage 2 (Selection): %d input + %d output\n", selectUsage.InputTokens, selectUsage.OutputTokens)
	fmt.Printf("   Total: %d tokens\n", total.Total())
	fmt.Println("\n📁 Generated files:")
	fmt.Printf("   🧹 Cleaned content: %s\n", cleanedFile)
	fmt.Printf("   🎯 Selected items: %s\n", finalFile)
}

// printLimits echoes the selection limits so a run documents the
// configuration it used.
func printLimits(sel config.SelectionConfig) {
	fmt.Println("📋 Selection limits from config:")

	sections := make([]string, 0, len(sel.Limits))
	for name := range sel.Limits {
		sections = append(sections, name)
	}

	sort.Strings(sections)

	for _, name := range sections {
		limit := sel.Limits[name]

		if len(limit.Subcategories) == 0 {
			fmt.Printf("   %s: %d\n", name, limit.Count)
			continue
		}

		fmt.Printf("   %s:\n", name)

		subs := make([]string, 0, len(limit.Subcategories))
		for sub := range limit.Subcategories {
			subs = append(subs, sub)
		}

		sort.Strings(subs)

		for _, sub := range subs {
			fmt.Printf("     %s: %d\n", sub, limit.Subcategories[sub])
		}
	}

	fmt.Printf("   Default limit: %d\n", sel.DefaultLimit)
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

	fmt.Printf("📋 Using configuration from: %s\n", path)

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (proceeding with defaults)\n", err)
		return config.DefaultConfig()
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: ./bin/polisher [OPTIONS] <input.json>")
	fmt.Println()
	fmt.Println("Polishes digest JSON by cleaning markdown noise and selecting top impactful items.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/polisher merged_data.json")
	fmt.Println("  ./bin/polisher -cleaned cleaned.json -final top_items.json merged_data.json")
	fmt.Println("  ./bin/polisher -selection-only -final selected.json merged_data.json")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY    Your Gemini API key (required)")
}
