// Package export writes the catalog and progress to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/p-n-ai/dsa-sheet/internal/catalog"
	"github.com/p-n-ai/dsa-sheet/internal/difficulty"
	"github.com/p-n-ai/dsa-sheet/internal/progress"
)

// Sheet names in the exported workbook.
const (
	QuestionsSheet = "Questions"
	SummarySheet   = "Summary"
)

var questionHeader = []any{
	"Topic", "Category", "Difficulty", "ID", "Question",
	"Completed", "Bookmarked", "Note",
	"LeetCode", "GFG", "Article", "YouTube",
}

var summaryHeader = []any{"Topic", "Path", "Questions", "Completed", "Bookmarked", "Percent"}

// Workbook builds a workbook with one row per question and one row per topic.
// The caller must Close the result.
func Workbook(c *catalog.Catalog, r progress.Reader) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", QuestionsSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("create summary sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeQuestions(f, c, r, bold); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeSummary(f, c, r, bold); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

// Write encodes the workbook as xlsx to w.
func Write(w io.Writer, c *catalog.Catalog, r progress.Reader) error {
	f, err := Workbook(c, r)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteFile saves the workbook to path.
func WriteFile(path string, c *catalog.Catalog, r progress.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(out, c, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeQuestions(f *excelize.File, c *catalog.Catalog, r progress.Reader, header int) error {
	if err := writeHeader(f, QuestionsSheet, questionHeader, header); err != nil {
		return err
	}

	row := 2
	for _, t := range c.Topics {
		for _, cat := range t.Categories {
			level := difficulty.Classify(cat.ID)
			for _, q := range cat.Questions {
				values := []any{
					t.Heading, cat.Name, level.String(), q.ID, q.Heading,
					r.IsCompleted(q.ID), r.IsBookmarked(q.ID), r.Note(q.ID),
					q.Links.LeetCode, q.Links.GFG, q.Links.Article, q.Links.YouTube,
				}
				if err := setRow(f, QuestionsSheet, row, values); err != nil {
					return err
				}
				row++
			}
		}
	}
	return nil
}

func writeSummary(f *excelize.File, c *catalog.Catalog, r progress.Reader, header int) error {
	if err := writeHeader(f, SummarySheet, summaryHeader, header); err != nil {
		return err
	}

	sum := progress.Stats(c, r)
	row := 2
	for _, t := range sum.Topics {
		values := []any{t.Heading, t.Path, t.Total, t.Completed, t.Bookmarked, t.Percent}
		if err := setRow(f, SummarySheet, row, values); err != nil {
			return err
		}
		row++
	}
	return setRow(f, SummarySheet, row, []any{"Total", "", sum.Total, sum.Completed, sum.Bookmarked, sum.Percent})
}

func writeHeader(f *excelize.File, sheet string, values []any, style int) error {
	if err := setRow(f, sheet, 1, values); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		return fmt.Errorf("header range: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, style); err != nil {
		return fmt.Errorf("style %s header: %w", sheet, err)
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell for row %d: %w", row, err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}
