// Package main provides the report generator command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"llmdigest/internal/models"
	"llmdigest/internal/report"
)

func main() {
	output := flag.String("o", "report.html", "Output file path")
	format := flag.String("format", "html", "Report format: html or markdown")
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

	d, err := models.ReadDigestFile(input)
	if err != nil {
		fmt.Printf("❌ Error: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()

	switch *format {
	case "html":
		if err := report.WriteHTML(*output, d, now); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("HTML report generated successfully: %s\n", *output)
	case "markdown":
		if err := report.WriteMarkdown(*output, d, now); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Markdown report generated successfully: %s\n", *output)
	default:
		fmt.Printf("❌ Error: unknown format %q (use html or markdown)\n", *format)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: ./bin/reporter [OPTIONS] <input.json>")
	fmt.Println()
	fmt.Println("Generates a readable report from digest JSON.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/reporter merged_data_top_items.json")
	fmt.Println("  ./bin/reporter -format markdown -o report.md merged_data_chinese.json")
}
