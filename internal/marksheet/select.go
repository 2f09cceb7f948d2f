package marksheet

import (
	"strings"

	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/pkg/pdftable"
)

// Candidate is a table paired with its header mapping.
type Candidate struct {
	Table   pdftable.Table
	Mapping HeaderMapping
}

// Score is the candidate's header score.
func (c Candidate) Score() int {
	return c.Mapping.Score()
}

// Select returns the highest-scoring table. Ties go to the earlier table.
// It reports false when tables is empty.
func Select(tables []pdftable.Table) (Candidate, bool) {
	if len(tables) == 0 {
		return Candidate{}, false
	}

	best := Candidate{Table: tables[0], Mapping: MapHeader(tables[0].Header)}
	for _, t := range tables[1:] {
		c := Candidate{Table: t, Mapping: MapHeader(t.Header)}
		if c.Score() > best.Score() {
			best = c
		}
	}
	return best, true
}

// Records converts the rows of a fully mapped table into mark records. Rows
// with a blank student id, a blank subject or an unparseable mark are skipped.
func Records(c Candidate, source string) []marks.Record {
	records := make([]marks.Record, 0, len(c.Table.Rows))
	if !c.Mapping.Complete() {
		return records
	}

	for _, row := range c.Table.Rows {
		id := cell(row, c.Mapping[StudentID].Index)
		subject := cell(row, c.Mapping[Subject].Index)
		mark, ok := ParseMark(cell(row, c.Mapping[Mark].Index))
		if id == "" || subject == "" || !ok {
			continue
		}

		var name *string
		if col, found := c.Mapping[StudentName]; found {
			if v := cell(row, col.Index); v != "" {
				name = &v
			}
		}

		records = append(records, marks.Record{
			StudentID:   id,
			StudentName: name,
			Subject:     subject,
			Mark:        mark,
			SourceFile:  source,
		})
	}

	return records
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func dropBlankRows(t pdftable.Table) pdftable.Table {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		for _, c := range row {
			if strings.TrimSpace(c) != "" {
				rows = append(rows, row)
				break
			}
		}
	}
	t.Rows = rows
	return t
}
