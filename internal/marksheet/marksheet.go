// Package marksheet turns a marks PDF into validated mark records.
//
// Every page is scanned for text-layout tables. Each candidate's header is
// matched against a fixed alias vocabulary, the best match is selected, and
// its rows are validated into records. Problems never fail an extraction;
// they are reported as advisory warnings alongside whatever rows survived.
package marksheet

import (
	"fmt"
	"log/slog"

	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/pkg/pdftable"
)

// Advisory warnings. Each names a distinct situation.
const (
	WarnNoTableOnFirstPage = "No table detected on page 1. Ensure the PDF contains a clear table with headers."
	WarnNoTables           = "No readable tables found in the PDF."
	WarnLowConfidence      = "Could not confidently match PDF headers to required columns. Expected columns similar to: student_id, subject, mark."
	WarnNoValidRows        = "Parsed 0 valid rows. Check that student_id/subject/mark values are filled."
)

// Outcome is the result of one extraction. Mapping describes the selected
// table's columns and is nil when no table was found.
type Outcome struct {
	Rows     []marks.Record `json:"rows"`
	Warnings []string       `json:"warnings"`
	Mapping  HeaderMapping  `json:"mapping,omitempty"`
}

// Document yields candidate tables page by page. Pages are 1-based.
type Document interface {
	NumPages() int
	Tables(page int) ([]pdftable.Table, error)
}

// Opener parses raw bytes into a Document.
type Opener func(data []byte) (Document, error)

// OpenPDF opens data with pdftable.
func OpenPDF(data []byte) (Document, error) {
	doc, err := pdftable.Open(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// Extractor runs the extraction pipeline. It holds no per-call state and is
// safe for concurrent use.
type Extractor struct {
	open   Opener
	logger *slog.Logger
}

// New creates an Extractor that reads PDFs. A nil opener defaults to OpenPDF.
func New(open Opener, logger *slog.Logger) *Extractor {
	if open == nil {
		open = OpenPDF
	}
	return &Extractor{
		open:   open,
		logger: logger.With("system", "marksheet"),
	}
}

// Extract reads data and returns the rows of its best-matching table.
// source labels every record, usually the uploaded filename.
func (e *Extractor) Extract(data []byte, source string) Outcome {
	out := Outcome{
		Rows:     make([]marks.Record, 0),
		Warnings: make([]string, 0),
	}

	doc, err := e.open(data)
	if err != nil {
		e.logger.Warn("pdf unreadable", "source", source, "error", err)
		out.Warnings = append(out.Warnings, fmt.Sprintf("Could not read the PDF: %v.", err), WarnNoTables)
		return out
	}

	tables := e.collect(doc, source, &out)
	if len(tables) == 0 {
		out.Warnings = append(out.Warnings, WarnNoTables)
		return out
	}

	best, _ := Select(tables)
	out.Mapping = best.Mapping

	e.logger.Debug(
		"table selected",
		"source", source,
		"page", best.Table.Page,
		"score", best.Score(),
		"candidates", len(tables),
	)

	if best.Score() < len(Required) {
		out.Warnings = append(out.Warnings, WarnLowConfidence)
	}

	if !best.Mapping.Complete() {
		return out
	}

	out.Rows = Records(best, source)
	if len(out.Rows) == 0 {
		out.Warnings = append(out.Warnings, WarnNoValidRows)
	}

	return out
}

func (e *Extractor) collect(doc Document, source string, out *Outcome) []pdftable.Table {
	var tables []pdftable.Table

	for page := 1; page <= doc.NumPages(); page++ {
		found, err := doc.Tables(page)
		if err != nil {
			e.logger.Debug("page skipped", "source", source, "page", page, "error", err)
		}

		for _, t := range found {
			if t = dropBlankRows(t); len(t.Rows) > 0 {
				tables = append(tables, t)
			}
		}

		if page == 1 && len(tables) == 0 {
			out.Warnings = append(out.Warnings, WarnNoTableOnFirstPage)
		}
	}

	return tables
}
