package pdftable

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

const (
	// CharWidth approximates the horizontal advance of one glyph in points.
	// Fragments carry no width, so a fragment's extent is estimated from its length.
	CharWidth = 5.0
	// CellGap is the smallest estimated gap, in points, that separates two cells.
	CellGap = 2 * CharWidth
	// LineTolerance is the largest baseline difference, in points, between
	// fragments that belong to the same line.
	LineTolerance = 2.0
)

// Fragment is a run of text drawn at a position on the page.
// Y grows upwards, as in PDF user space.
type Fragment struct {
	X    float64
	Y    float64
	Text string
}

// Line is a set of fragments sharing a baseline, ordered left to right.
type Line struct {
	Y         float64
	Fragments []Fragment
}

// Cell is the merged text of adjacent fragments on a line.
type Cell struct {
	X    float64
	Text string
}

// Table is a header row followed by zero or more data rows.
// Every data row has exactly len(Header) cells; missing cells are empty.
type Table struct {
	Page   int        `json:"page"`
	Header []string   `json:"header"`
	Rows   [][]string `json:"rows"`
}

// Lines groups fragments into lines ordered top to bottom.
// Fragments whose baselines differ by at most LineTolerance share a line.
func Lines(fragments []Fragment) []Line {
	sorted := slices.Clone(fragments)
	slices.SortStableFunc(sorted, func(a, b Fragment) int {
		if c := cmp.Compare(b.Y, a.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X, b.X)
	})

	var lines []Line
	for _, f := range sorted {
		if n := len(lines); n > 0 && lines[n-1].Y-f.Y <= LineTolerance {
			lines[n-1].Fragments = append(lines[n-1].Fragments, f)
			continue
		}
		lines = append(lines, Line{Y: f.Y, Fragments: []Fragment{f}})
	}

	for i := range lines {
		slices.SortStableFunc(lines[i].Fragments, func(a, b Fragment) int {
			return cmp.Compare(a.X, b.X)
		})
	}

	return lines
}

// Cells merges the fragments of a line into cells. Two neighbouring fragments
// belong to the same cell when the estimated gap between them is below CellGap.
// Whitespace-only fragments never start a cell.
func Cells(line Line) []Cell {
	var (
		cells []Cell
		b     strings.Builder
		start float64
		end   float64
		open  bool
	)

	flush := func() {
		if open {
			if text := strings.TrimSpace(b.String()); text != "" {
				cells = append(cells, Cell{X: start, Text: text})
			}
		}
		b.Reset()
		open = false
	}

	for _, f := range line.Fragments {
		text := strings.TrimSpace(f.Text)
		if text == "" {
			continue
		}

		if open {
			gap := f.X - end
			if gap >= CellGap {
				flush()
			} else if gap >= 0.3*CharWidth {
				b.WriteByte(' ')
			}
		}

		if !open {
			start = f.X
			end = f.X
			open = true
		}

		b.WriteString(text)
		end = max(end, f.X+width(text))
	}
	flush()

	return cells
}

// Build locates tables in lines ordered top to bottom. A run is a maximal
// sequence of consecutive lines with at least two cells. Every run yields a
// table headed by its first line, plus one more table headed by each line that
// has more cells than the line above it, so a narrow caption above the real
// header still leaves a candidate headed by the header.
// Data cells are assigned to the header column whose band contains their start,
// bands being split at the midpoints between header cell starts.
func Build(lines []Line) []Table {
	var (
		tables []Table
		block  [][]Cell
	)

	flush := func() {
		for i := range block {
			if i == 0 || len(block[i]) > len(block[i-1]) {
				tables = append(tables, assemble(block[i:]))
			}
		}
		block = nil
	}

	for _, line := range lines {
		cells := Cells(line)
		if len(cells) < 2 {
			flush()
			continue
		}
		block = append(block, cells)
	}
	flush()

	return tables
}

func assemble(block [][]Cell) Table {
	header := block[0]

	bounds := make([]float64, len(header)-1)
	for i := range bounds {
		bounds[i] = (header[i].X + header[i+1].X) / 2
	}

	t := Table{
		Header: make([]string, len(header)),
		Rows:   make([][]string, 0, len(block)-1),
	}
	for i, c := range header {
		t.Header[i] = c.Text
	}

	for _, cells := range block[1:] {
		row := make([]string, len(header))
		for _, c := range cells {
			col := column(bounds, c.X)
			if row[col] != "" {
				row[col] += " " + c.Text
			} else {
				row[col] = c.Text
			}
		}
		t.Rows = append(t.Rows, row)
	}

	return t
}

func column(bounds []float64, x float64) int {
	for i, b := range bounds {
		if x < b {
			return i
		}
	}
	return len(bounds)
}

func width(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * CharWidth
}
