// Package main provides the batch merger command-line tool.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"llmdigest/internal/config"
	"llmdigest/internal/merge"
	"llmdigest/internal/models"
	"llmdigest/internal/report"
)

const defaultConfigPath = "configs/digest.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	output := flag.String("o", "merged_data.json", "Output JSON file path")
	year := flag.Int("year", 0, "Reference year for date inference (default: current year)")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	// The default batch mirrors the first week the newsletter shipped.
	folder := "7.6-7.12"
	if flag.NArg() > 0 {
		folder = flag.Arg(0)
	}

	cfg := loadConfig(*configFile)

	docs, err := merge.LoadDocuments(folder)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Printf("❌ Error: Folder '%s' not found!\n", folder)
		} else {
			fmt.Printf("❌ %v\n", err)
		}

		os.Exit(1)
	}

	batchID := filepath.Base(folder)
	engine := merge.NewEngine()

	var ex *merge.Extraction
	if *year > 0 {
		ex = engine.MergeAt(batchID, *year, docs)
	} else {
		ex = engine.Merge(batchID, docs)
	}

	if warnings := report.Warnings(ex); warnings != "" {
		fmt.Println()
		fmt.Print(warnings)
		fmt.Println()
	}

	if err := writeDigest(cfg, *output, ex.Digest); err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully merged %d files into %s\n", len(ex.Documents), *output)
	fmt.Printf("Sections merged: %s\n", strings.Join(models.SectionNames, ", "))
	fmt.Println()
	fmt.Print(report.Summary(batchID, ex))
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

func printUsage() {
	fmt.Println("Usage: ./bin/merger [OPTIONS] [folder]")
	fmt.Println()
	fmt.Println("Merges a batch directory of daily markdown reports into one digest JSON.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/merger july-06")
	fmt.Println("  ./bin/merger -o digest.json -year 2025 7.6-7.12")
}
