// Command conversight analyzes a single chat export from the command line
// and optionally writes the CSV and XLSX exports.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/conversight/conversight/internal/analysis"
	"github.com/conversight/conversight/internal/ingest"
	"github.com/conversight/conversight/internal/nlp"
	"github.com/conversight/conversight/internal/platform/config"
	"github.com/conversight/conversight/internal/record"
	"github.com/conversight/conversight/internal/report"
)

func main() {
	file := flag.String("file", "", "Path to the exported chat file")
	platform := flag.String("platform", "", "Export platform (whatsapp, telegram, facebook)")
	user := flag.String("user", "", "Restrict the analysis to one user")
	csvOut := flag.String("csv", "", "Write the canonical table as CSV to this path")
	reportOut := flag.String("report", "", "Write the full XLSX report to this path")
	topics := flag.Int("topics", 0, "Topic count for the LDA analysis (default from config)")

	flag.Parse()

	if *file == "" || *platform == "" {
		log.Fatalf("Usage: %s --file=export.txt --platform=[whatsapp|telegram|facebook]", os.Args[0])
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := newLogger(cfg.AppEnv)

	raw, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal().Err(err).Str("file", *file).Msg("failed to read export file")
	}

	table, err := ingest.Parse(raw, *platform)
	if err != nil {
		if errors.Is(err, ingest.ErrSignatureMismatch) {
			logger.Warn().Str("platform", *platform).Msg("this does not look like an export from the selected platform")
			os.Exit(1)
		}

		logger.Fatal().Err(err).Msg("failed to parse export")
	}

	if len(table) == 0 {
		logger.Warn().Msg("the export parsed to zero messages")
		return
	}

	topicCount := cfg.TopicCount
	if *topics > 0 {
		topicCount = *topics
	}

	printSummary(table, *user, *platform, topicCount, cfg.TopTermCount)

	if *csvOut != "" {
		writeCSV(logger, *csvOut, table.ForUser(*user))
	}

	if *reportOut != "" {
		writeReport(logger, *reportOut, table, *user, *platform, topicCount, cfg.TopTermCount)
	}
}

func printSummary(table record.Table, user, platform string, topicCount, termCount int) {
	profile, _ := record.ProfileFor(platform)
	stats := analysis.Fetch(user, table, profile)

	fmt.Printf("Messages:  %d\n", stats.Messages)
	fmt.Printf("Words:     %d\n", stats.Words)
	fmt.Printf("Media:     %d\n", stats.Media)
	fmt.Printf("Links:     %d\n", stats.Links)
	fmt.Printf("Emojis:    %d\n", stats.Emojis)
	fmt.Printf("Deleted:   %d\n", stats.Deleted)
	fmt.Printf("Edited:    %d\n", stats.Edited)
	fmt.Printf("Contacts:  %d\n", stats.Contacts)
	fmt.Printf("Locations: %d\n", stats.Locations)
	fmt.Printf("Personality: %s\n", analysis.Personality(stats))
	fmt.Printf("Longest streak: %d message(s)\n", analysis.LongestStreak(table, user))

	if date, username, message, err := analysis.Throwback(table.ForUser(user)); err == nil {
		fmt.Printf("First message: %q by %s on %s\n", message, username, date)
	}

	rows := table.ForUser(user)

	if terms, err := nlp.TopTerms(rows.Messages(), profile, nil, termCount); err == nil {
		fmt.Println("Top terms:")

		for _, t := range terms {
			fmt.Printf("  %-20s %.4f\n", t.Term, t.Score)
		}
	}

	if topics, err := nlp.Topics(rows.Messages(), topicCount, profile, nil); err == nil {
		for _, t := range topics {
			fmt.Println(t)
		}
	}

	if top, ok := nlp.GuessTopEmoji(nlp.EmojiFrequency(user, table)); ok {
		fmt.Printf("Top emoji: %s (%d uses)\n", top.Emoji, top.Count)
	}
}

func writeCSV(logger zerolog.Logger, path string, table record.Table) {
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("failed to create csv file")
	}
	defer f.Close() //nolint:errcheck // write error is surfaced by WriteCSV

	if err := report.WriteCSV(f, table); err != nil {
		logger.Fatal().Err(err).Msg("failed to write csv export")
	}

	logger.Info().Str("path", path).Msg("csv export written")
}

func writeReport(logger zerolog.Logger, path string, table record.Table, user, platform string, topicCount, termCount int) {
	profile, _ := record.ProfileFor(platform)
	rows := table.ForUser(user)

	terms, err := nlp.TopTerms(rows.Messages(), profile, nil, termCount)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		logger.Fatal().Err(err).Msg("tf-idf analysis failed")
	}

	topics, err := nlp.Topics(rows.Messages(), topicCount, profile, nil)
	if err != nil && !errors.Is(err, nlp.ErrEmptyCorpus) {
		logger.Fatal().Err(err).Msg("topic analysis failed")
	}

	f, err := os.Create(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("failed to create report file")
	}
	defer f.Close() //nolint:errcheck // write error is surfaced by WriteWorkbook

	wb := report.Workbook{
		Table:  rows,
		Emojis: nlp.EmojiFrequency(user, table),
		Terms:  terms,
		Topics: topics,
	}

	if err := report.WriteWorkbook(f, wb); err != nil {
		logger.Fatal().Err(err).Msg("failed to write report workbook")
	}

	logger.Info().Str("path", path).Msg("report written")
}

func newLogger(appEnv string) zerolog.Logger {
	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).With().Timestamp().Logger()
}
