// Package report emits the canonical table and analysis results in
// consumer-facing formats: row-level CSV and a multi-sheet XLSX workbook.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/conversight/conversight/internal/nlp"
	"github.com/conversight/conversight/internal/record"
)

var csvHeader = []string{
	"username", "message", "date", "year", "month", "day", "hour", "minute",
	"time", "period", "total_word", "emoji_count", "url_count",
}

// WriteCSV writes the table as CSV, one row per message, in table order.
func WriteCSV(w io.Writer, table record.Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, r := range table {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func csvRow(r record.Record) []string {
	date, year, hour, minute := "", "", "", ""
	if r.HasDate() {
		date = r.Date.Format(time.RFC3339)
		year = strconv.Itoa(r.Year)
		hour = strconv.Itoa(r.Hour)
		minute = strconv.Itoa(r.Minute)
	}

	return []string{
		r.Username, r.Message, date, year, r.Month, r.Day, hour, minute,
		r.Clock, string(r.Period), strconv.Itoa(r.WordCount),
		strconv.Itoa(r.EmojiCount), strconv.Itoa(r.URLCount),
	}
}

// Workbook bundles the datasets of the full report.
type Workbook struct {
	Table  record.Table
	Emojis []nlp.EmojiCount
	Terms  []nlp.TermScore
	Topics []string
}

// WriteWorkbook writes the four-sheet XLSX report: Messages, Emoji Summary,
// TF-IDF, and Topics.
func WriteWorkbook(w io.Writer, wb Workbook) error {
	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck // in-memory workbook

	if err := f.SetSheetName("Sheet1", "Messages"); err != nil {
		return fmt.Errorf("renaming messages sheet: %w", err)
	}

	if err := writeMessagesSheet(f, wb.Table); err != nil {
		return err
	}

	if err := writeEmojiSheet(f, wb.Emojis); err != nil {
		return err
	}

	if err := writeTermSheet(f, wb.Terms); err != nil {
		return err
	}

	if err := writeTopicSheet(f, wb.Topics); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}

	return nil
}

func writeMessagesSheet(f *excelize.File, table record.Table) error {
	if err := writeRow(f, "Messages", 1, csvHeader); err != nil {
		return err
	}

	for i, r := range table {
		if err := writeRow(f, "Messages", i+2, csvRow(r)); err != nil {
			return err
		}
	}

	return nil
}

func writeEmojiSheet(f *excelize.File, emojis []nlp.EmojiCount) error {
	if _, err := f.NewSheet("Emoji Summary"); err != nil {
		return fmt.Errorf("creating emoji sheet: %w", err)
	}

	if err := writeRow(f, "Emoji Summary", 1, []string{"Emoji", "Frequency"}); err != nil {
		return err
	}

	for i, e := range emojis {
		if err := writeRow(f, "Emoji Summary", i+2, []string{e.Emoji, strconv.Itoa(e.Count)}); err != nil {
			return err
		}
	}

	return nil
}

func writeTermSheet(f *excelize.File, terms []nlp.TermScore) error {
	if _, err := f.NewSheet("TF-IDF"); err != nil {
		return fmt.Errorf("creating tf-idf sheet: %w", err)
	}

	if err := writeRow(f, "TF-IDF", 1, []string{"Word", "TF-IDF Score"}); err != nil {
		return err
	}

	for i, t := range terms {
		row := []string{t.Term, strconv.FormatFloat(t.Score, 'f', 6, 64)}
		if err := writeRow(f, "TF-IDF", i+2, row); err != nil {
			return err
		}
	}

	return nil
}

func writeTopicSheet(f *excelize.File, topics []string) error {
	if _, err := f.NewSheet("Topics"); err != nil {
		return fmt.Errorf("creating topics sheet: %w", err)
	}

	if err := writeRow(f, "Topics", 1, []string{"LDA Topics"}); err != nil {
		return err
	}

	for i, t := range topics {
		if err := writeRow(f, "Topics", i+2, []string{t}); err != nil {
			return err
		}
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("resolving cell name: %w", err)
		}

		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("setting cell %s!%s: %w", sheet, cell, err)
		}
	}

	return nil
}
