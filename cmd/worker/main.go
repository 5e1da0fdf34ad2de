// Package main provides the import worker: one batch run that reads the
// source workbook, normalizes every constituent, and writes the two CSV
// exports. The run either produces both complete files or fails outright.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"cueimport/internal/config"
	"cueimport/internal/export"
	"cueimport/internal/logger"
	"cueimport/internal/normalizer"
	"cueimport/internal/report"
	"cueimport/internal/source"
	"cueimport/internal/tags"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to YAML configuration file")
	inputFile := flag.String("input", "", "Source workbook path (overrides input.file)")
	offline := flag.Bool("offline", false, "Skip the remote tag-mapping fetch and use the fallback table")

	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Configuration error: %v\n", err)
		os.Exit(1)
	}

	if *inputFile != "" {
		cfg.Input.File = *inputFile
	}

	log := logger.NewLogger(cfg.Logging.Level).With("run_id", uuid.NewString())

	log.Info("🚀 Starting constituent import pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Input.File))
	log.Info(fmt.Sprintf("🎯 Outputs: %s, %s", cfg.Output.ConstituentsPath, cfg.Output.TagsPath))

	startTime := time.Now()

	// Phase 1: Ingestion. Structural failures are fatal before any
	// output file exists.
	log.Info("Phase 1: Ingestion (reading workbook)...")

	dataset, err := source.NewReader(cfg.Input, log).Read()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Ingestion failed: %v", err))
		os.Exit(1)
	}

	// Phase 2: Tag mapping lookup. Never fatal; any failure degrades to
	// the embedded fallback table.
	log.Info("Phase 2: Tag mapping lookup...")

	var resolver tags.Resolver
	if *offline {
		log.Info("offline mode, using fallback tag table", "mappings", len(cfg.Tags.Fallback))

		resolver = tags.NewTableResolver(cfg.Tags.Fallback)
	} else {
		resolver = tags.LoadResolver(context.Background(), cfg.Tags.ServiceURL, cfg.FetchTimeout(), cfg.Tags.Fallback, log)
	}

	// Phase 3: Normalization.
	log.Info("Phase 3: Normalization...")

	processStart := time.Now()
	result := normalizer.NewProcessor(cfg, resolver, log).Process(dataset)

	log.Info(fmt.Sprintf("✅ Normalized %d constituents in %v", len(result.Constituents), time.Since(processStart)))

	// Phase 4: Export.
	log.Info("Phase 4: Export...")

	if err := export.WriteConstituents(cfg.Output.ConstituentsPath, result.Constituents); err != nil {
		log.Error(fmt.Sprintf("❌ Constituents export failed: %v", err))
		os.Exit(1)
	}

	if err := export.WriteTagCounts(cfg.Output.TagsPath, result.TagCounts); err != nil {
		log.Error(fmt.Sprintf("❌ Tag summary export failed: %v", err))
		os.Exit(1)
	}

	log.Info("✨ Pipeline complete!")
	fmt.Println()
	fmt.Println(buildSummary(result, time.Since(startTime)).Render())
}

func buildSummary(result *normalizer.Result, elapsed time.Duration) *report.Summary {
	withEmail1, withEmail2, withDonations := 0, 0, 0

	for _, rec := range result.Constituents {
		if rec.Email1 != "" {
			withEmail1++
		}

		if rec.Email2 != "" {
			withEmail2++
		}

		if rec.Donations.HasGifts() {
			withDonations++
		}
	}

	s := report.NewSummary("📊 Import Summary")
	s.Add("Total constituents", strconv.Itoa(len(result.Constituents)))
	s.Add("  Persons", strconv.Itoa(result.Persons))
	s.Add("  Companies", strconv.Itoa(result.Companies))
	s.Add("With valid Email 1", strconv.Itoa(withEmail1))
	s.Add("With valid Email 2", strconv.Itoa(withEmail2))
	s.Add("With donations", strconv.Itoa(withDonations))
	s.Add("Distinct canonical tags", strconv.Itoa(len(result.TagCounts)))
	s.Add("No-name records", strconv.Itoa(result.Nameless))

	if result.Excluded > 0 {
		s.Add("Excluded by policy", strconv.Itoa(result.Excluded))
	}

	s.Add("Data-quality warnings", strconv.Itoa(result.Warnings))
	s.Add("Total duration", elapsed.Round(time.Millisecond).String())

	return s
}
