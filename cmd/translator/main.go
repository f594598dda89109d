// Package main provides the digest translator command-line tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
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
	output := flag.String("o", "", "Output file path (default: adds _chinese suffix)")
	batchSize := flag.Int("batch-size", 10, "Number of items to process concurrently")
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

	outputFile := *output
	if outputFile == "" {
		ext := filepath.Ext(input)
		outputFile = strings.TrimSuffix(input, ext) + "_chinese" + ext
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

	fmt.Println("🚀 Starting translation process...")
	fmt.Printf("📥 Input file: %s\n", input)
	fmt.Printf("📤 Output file: %s\n", outputFile)
	fmt.Printf("🔢 Batch size: %d concurrent requests\n", cfg.Digest.Transform.BatchSize)
	fmt.Println("🔑 API key: ✓ Provided")
	fmt.Println(strings.Repeat("-", 60))

	var progressFiles []string

	var totalUsage transform.Usage

	for idx, section := range models.SectionNames {
		fmt.Printf("\n📝 Processing section %d/%d: %s\n", idx+1, len(models.SectionNames), section)

		sectionStart := time.Now()

		sectionUsage, err := svc.TranslateSection(ctx, d, section)
		totalUsage.Add(sectionUsage)

		if err != nil {
			fmt.Printf("   ❌ Error processing section %s: %v\n", section, err)
			fmt.Println("   📎 Keeping original section")

			break
		}

		fmt.Printf("   ⏱️  Section completed in %.1f seconds\n", time.Since(sectionStart).Seconds())
		fmt.Printf("   📊 Section tokens - Input: %d, Output: %d\n", sectionUsage.InputTokens, sectionUsage.OutputTokens)

		// Snapshot after every section so an interrupted run can be salvaged.
		progressFile := progressFileName(outputFile, section)
		progressFiles = append(progressFiles, progressFile)

		if err := models.WriteDigestFile(progressFile, d); err != nil {
			fmt.Printf("   ⚠️  Could not save progress: %v\n", err)
		} else {
			fmt.Printf("   💾 Progress saved to: %s\n", progressFile)
		}
	}

	fmt.Printf("\n💾 Saving final translated file: %s\n", outputFile)

	if err := writeDigest(cfg, outputFile, d); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	if !cfg.Features.KeepProgress {
		fmt.Println("\n🧹 Cleaning up progress files...")

		removed := 0

		for _, pf := range progressFiles {
			if err := os.Remove(pf); err != nil {
				if !os.IsNotExist(err) {
					fmt.Printf("   ⚠️  Could not remove %s: %v\n", pf, err)
				}

				continue
			}

			removed++

			fmt.Printf("   ✅ Removed: %s\n", pf)
		}

		fmt.Printf("   🧹 Cleaned up %d/%d progress files\n", removed, len(progressFiles))
	}

	fmt.Println("\n📊 Translation Summary:")
	fmt.Printf("   📂 Sections processed: %d\n", len(models.SectionNames))
	fmt.Printf("   📄 Total items processed: %d\n", d.TotalItems())
	fmt.Println("   🪙 Total tokens used:")
	fmt.Printf("      📥 Input tokens: %d\n", totalUsage.InputTokens)
	fmt.Printf("      📤 Output tokens: %d\n", totalUsage.OutputTokens)
	fmt.Printf("      🔢 Total tokens: %d\n", totalUsage.Total())

	if totalUsage.Total() > 0 {
		cost := float64(totalUsage.Total()) * 0.000001
		fmt.Printf("      💰 Estimated cost: ~$%.4f (rough estimate)\n", cost)
	}

	fmt.Printf("   📁 Output file: %s\n", outputFile)

	fmt.Println("\n🎉 Translation completed successfully!")
	fmt.Printf("📁 Translated file saved as: %s\n", outputFile)
}

func progressFileName(output, section string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_progress_" + strings.ToLower(section) + ".json"
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
	fmt.Println("Usage: ./bin/translator [OPTIONS] <input.json>")
	fmt.Println()
	fmt.Println("Translates digest JSON from English to Chinese, preserving technical terms.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/translator merged_data.json")
	fmt.Println("  ./bin/translator -o translated_chinese.json -batch-size 15 input.json")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  GEMINI_API_KEY    Your Gemini API key (required)")
}
