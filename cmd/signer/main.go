// Package main provides the signer command-line tool for stamping
// newsletter files with provenance metadata and auditing existing stamps.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"llmdigest/internal/config"
	"llmdigest/internal/fetch"
	"llmdigest/pkg/docmeta"
)

const defaultConfigPath = "configs/digest.yaml"

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	check := flag.Bool("check", false, "Verify stamps only, never rewrite files")
	year := flag.Int("year", time.Now().UTC().Year(), "Year used to derive source URLs for unstamped files")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help || flag.NArg() == 0 {
		printUsage()
		if *help {
			return
		}
		os.Exit(1)
	}

	dir := flag.Arg(0)
	cfg := loadConfig(*configFile)

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Fatalf("❌ Error reading directory: %v\n", err)
	}

	fmt.Printf("📂 Auditing batch: %s\n", dir)

	var verified, signed, resigned, problems int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("❌ Error reading file: %v\n", err)
		}

		content := string(data)
		meta, clean := docmeta.Extract(content)

		// A file that fails issue validation is not worth stamping.
		if err := fetch.ValidateIssue(clean, cfg.Digest.Fetch.MinContentLen); err != nil {
			fmt.Printf("⚠️  %s: %v (skipping)\n", entry.Name(), err)
			problems++

			continue
		}

		if meta == nil {
			if *check {
				fmt.Printf("⚠️  %s: unstamped\n", entry.Name())
				problems++

				continue
			}

			day, ok := dayFromName(entry.Name(), *year)
			if !ok {
				fmt.Printf("⚠️  %s: cannot derive a source URL from the name (skipping)\n", entry.Name())
				problems++

				continue
			}

			url := fetch.ArchiveURL(cfg.Digest.Fetch.ArchiveBase, day)
			stamped := docmeta.Sign(clean, url, time.Now().UTC())

			if err := os.WriteFile(path, []byte(stamped), 0644); err != nil {
				log.Fatalf("❌ Error writing file: %v\n", err)
			}

			fmt.Printf("✍️  %s: signed\n", entry.Name())
			signed++

			continue
		}

		if ok, err := docmeta.Verify(content); ok {
			fmt.Printf("✅ %s: verified\n", entry.Name())
			verified++

			continue
		} else if !errors.Is(err, docmeta.ErrHashChanged) {
			fmt.Printf("⚠️  %s: %v\n", entry.Name(), err)
			problems++

			continue
		}

		if *check {
			fmt.Printf("❌ %s: content changed since signing\n", entry.Name())
			problems++

			continue
		}

		// Refresh the hash, keeping the recorded source and fetch time.
		stamped := docmeta.Sign(clean, meta.SourceURL, meta.FetchedAt)

		if err := os.WriteFile(path, []byte(stamped), 0644); err != nil {
			log.Fatalf("❌ Error writing file: %v\n", err)
		}

		fmt.Printf("✍️  %s: re-signed\n", entry.Name())
		resigned++
	}

	fmt.Printf("\n📊 Summary: %d verified, %d signed, %d re-signed, %d problems\n",
		verified, signed, resigned, problems)

	if *check && problems > 0 {
		os.Exit(1)
	}
}

// dayFromName parses "M-D.md" batch file names into a date.
func dayFromName(name string, year int) (time.Time, bool) {
	parts := strings.SplitN(strings.TrimSuffix(name, ".md"), "-", 2)
	if len(parts) != 2 {
		return time.Time{}, false
	}

	month, merr := strconv.Atoi(parts[0])
	day, derr := strconv.Atoi(parts[1])

	if merr != nil || derr != nil || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
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

	cfg, err := config.LoadConfig(path)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (proceeding with defaults)\n", err)
		return config.DefaultConfig()
	}

	return cfg
}

func printUsage() {
	fmt.Println("Usage: signer [options] <batch-directory>")
	fmt.Println()
	fmt.Println("Stamps every markdown file in a batch directory with a provenance")
	fmt.Println("block, refreshes stamps whose content changed, and verifies the")
	fmt.Println("rest. With -check nothing is rewritten.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/signer 7.6-7.12")
	fmt.Println("  ./bin/signer -check 7.6-7.12")
	fmt.Println("  ./bin/signer -year 2024 december-29")
}
