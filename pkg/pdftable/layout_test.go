package pdftable_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/JaimeStill/gradebook/pkg/pdftable"
	"github.com/JaimeStill/gradebook/pkg/pdftable/pdftabletest"
)

func TestLines(t *testing.T) {
	fragments := []pdftable.Fragment{
		{X: 150, Y: 680, Text: "b"},
		{X: 50, Y: 700, Text: "first"},
		{X: 150, Y: 699, Text: "second"},
		{X: 50, Y: 680, Text: "a"},
	}

	lines := pdftable.Lines(fragments)
	if len(lines) != 2 {
		t.Fatalf("len(lines) = %d, want 2", len(lines))
	}

	if lines[0].Y != 700 {
		t.Errorf("lines[0].Y = %v, want 700", lines[0].Y)
	}

	got := texts(lines[0])
	if !slices.Equal(got, []string{"first", "second"}) {
		t.Errorf("lines[0] = %v, want [first second]", got)
	}

	got = texts(lines[1])
	if !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("lines[1] = %v, want [a b]", got)
	}
}

func TestCells(t *testing.T) {
	tests := []struct {
		name      string
		fragments []pdftable.Fragment
		want      []string
	}{
		{
			name: "separate columns",
			fragments: []pdftable.Fragment{
				{X: 50, Text: "Roll No"},
				{X: 150, Text: "Subject"},
			},
			want: []string{"Roll No", "Subject"},
		},
		{
			name: "per glyph fragments join",
			fragments: []pdftable.Fragment{
				{X: 0, Text: "M"},
				{X: 5, Text: "a"},
				{X: 10, Text: "r"},
				{X: 15, Text: "k"},
			},
			want: []string{"Mark"},
		},
		{
			name: "nearby words join with a space",
			fragments: []pdftable.Fragment{
				{X: 250, Text: "Data"},
				{X: 275, Text: "Structures"},
			},
			want: []string{"Data Structures"},
		},
		{
			name: "whitespace fragments ignored",
			fragments: []pdftable.Fragment{
				{X: 0, Text: "  "},
				{X: 10, Text: "id"},
				{X: 100, Text: " "},
				{X: 200, Text: "mark"},
			},
			want: []string{"id", "mark"},
		},
		{
			name:      "empty line",
			fragments: nil,
			want:      nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cells := pdftable.Cells(pdftable.Line{Fragments: tt.fragments})

			var got []string
			for _, c := range cells {
				got = append(got, c.Text)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Cells() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuild(t *testing.T) {
	fragments := []pdftable.Fragment{
		{X: 50, Y: 760, Text: "Semester Results"},

		{X: 50, Y: 700, Text: "Roll No"},
		{X: 150, Y: 700, Text: "Name"},
		{X: 250, Y: 700, Text: "Subject"},
		{X: 400, Y: 700, Text: "Marks"},

		{X: 50, Y: 680, Text: "101"},
		{X: 150, Y: 680, Text: "Asha"},
		{X: 250, Y: 680, Text: "Data Structures"},
		{X: 405, Y: 680, Text: "87"},

		{X: 52, Y: 660, Text: "102"},
		{X: 250, Y: 660, Text: "Data"},
		{X: 275, Y: 660, Text: "Structures"},
		{X: 400, Y: 660, Text: "91.5"},

		{X: 50, Y: 600, Text: "Signature"},

		{X: 50, Y: 500, Text: "a"},
		{X: 100, Y: 500, Text: "b"},
	}

	tables := pdftable.Build(pdftable.Lines(fragments))
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}

	first := tables[0]
	if !slices.Equal(first.Header, []string{"Roll No", "Name", "Subject", "Marks"}) {
		t.Errorf("Header = %q", first.Header)
	}

	want := [][]string{
		{"101", "Asha", "Data Structures", "87"},
		{"102", "", "Data Structures", "91.5"},
	}

	if len(first.Rows) != len(want) {
		t.Fatalf("len(Rows) = %d, want %d", len(first.Rows), len(want))
	}

	for i, row := range first.Rows {
		if !slices.Equal(row, want[i]) {
			t.Errorf("Rows[%d] = %q, want %q", i, row, want[i])
		}
	}

	second := tables[1]
	if !slices.Equal(second.Header, []string{"a", "b"}) {
		t.Errorf("second Header = %q, want [a b]", second.Header)
	}

	if len(second.Rows) != 0 {
		t.Errorf("second Rows = %q, want none", second.Rows)
	}
}

func TestBuildCaptionAboveHeader(t *testing.T) {
	fragments := []pdftable.Fragment{
		{X: 50, Y: 720, Text: "Semester: 1"},
		{X: 300, Y: 720, Text: "Date: 2024-05-01"},

		{X: 50, Y: 700, Text: "Roll No"},
		{X: 150, Y: 700, Text: "Subject"},
		{X: 300, Y: 700, Text: "Marks"},

		{X: 50, Y: 680, Text: "101"},
		{X: 150, Y: 680, Text: "Algorithms"},
		{X: 300, Y: 680, Text: "88"},
	}

	tables := pdftable.Build(pdftable.Lines(fragments))
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}

	if !slices.Equal(tables[0].Header, []string{"Semester: 1", "Date: 2024-05-01"}) {
		t.Errorf("tables[0].Header = %q", tables[0].Header)
	}
	if len(tables[0].Rows) != 2 {
		t.Errorf("tables[0] rows = %d, want 2", len(tables[0].Rows))
	}

	header := tables[1]
	if !slices.Equal(header.Header, []string{"Roll No", "Subject", "Marks"}) {
		t.Errorf("tables[1].Header = %q", header.Header)
	}
	if len(header.Rows) != 1 || !slices.Equal(header.Rows[0], []string{"101", "Algorithms", "88"}) {
		t.Errorf("tables[1].Rows = %q", header.Rows)
	}
}

func TestBuildNarrowRowDoesNotSplit(t *testing.T) {
	fragments := []pdftable.Fragment{
		{X: 50, Y: 700, Text: "Roll No"},
		{X: 150, Y: 700, Text: "Name"},
		{X: 300, Y: 700, Text: "Marks"},

		{X: 50, Y: 680, Text: "101"},
		{X: 300, Y: 680, Text: "70"},

		{X: 50, Y: 660, Text: "102"},
		{X: 150, Y: 660, Text: "Ravi"},
		{X: 300, Y: 660, Text: "64"},
	}

	tables := pdftable.Build(pdftable.Lines(fragments))
	if len(tables) != 2 {
		t.Fatalf("len(tables) = %d, want 2", len(tables))
	}

	if got := len(tables[0].Rows); got != 2 {
		t.Errorf("tables[0] rows = %d, want 2", got)
	}
	if !slices.Equal(tables[0].Rows[0], []string{"101", "", "70"}) {
		t.Errorf("tables[0].Rows[0] = %q", tables[0].Rows[0])
	}
	if !slices.Equal(tables[1].Header, []string{"102", "Ravi", "64"}) {
		t.Errorf("tables[1].Header = %q", tables[1].Header)
	}
}

func TestBuildNoTables(t *testing.T) {
	lines := pdftable.Lines([]pdftable.Fragment{
		{X: 50, Y: 700, Text: "Just a paragraph of prose."},
		{X: 50, Y: 680, Text: "Nothing tabular here."},
	})

	if tables := pdftable.Build(lines); len(tables) != 0 {
		t.Errorf("Build() = %v, want no tables", tables)
	}
}

func TestDocumentTables(t *testing.T) {
	data := pdftabletest.Document(
		[]pdftabletest.Text{
			{X: 50, Y: 740, S: "End of semester notice"},
			{X: 50, Y: 720, S: "Results (provisional) follow."},
		},
		[]pdftabletest.Text{
			{X: 50, Y: 700, S: "Roll No"},
			{X: 150, Y: 700, S: "Subject"},
			{X: 300, Y: 700, S: "Marks"},
			{X: 50, Y: 680, S: "101"},
			{X: 150, Y: 680, S: "Data Structures"},
			{X: 300, Y: 680, S: "87"},
			{X: 50, Y: 660, S: "102"},
			{X: 150, Y: 660, S: "Algorithms"},
			{X: 300, Y: 660, S: "91.5"},
		},
	)

	doc, err := pdftable.Open(data)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if n := doc.NumPages(); n != 2 {
		t.Fatalf("NumPages() = %d, want 2", n)
	}

	first, err := doc.Tables(1)
	if err != nil {
		t.Fatalf("Tables(1) error = %v", err)
	}
	if len(first) != 0 {
		t.Errorf("Tables(1) = %v, want none", first)
	}

	second, err := doc.Tables(2)
	if err != nil {
		t.Fatalf("Tables(2) error = %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("len(Tables(2)) = %d, want 1", len(second))
	}

	table := second[0]
	if table.Page != 2 {
		t.Errorf("Page = %d, want 2", table.Page)
	}
	if !slices.Equal(table.Header, []string{"Roll No", "Subject", "Marks"}) {
		t.Errorf("Header = %q", table.Header)
	}

	want := [][]string{
		{"101", "Data Structures", "87"},
		{"102", "Algorithms", "91.5"},
	}
	if len(table.Rows) != len(want) {
		t.Fatalf("Rows = %q, want %q", table.Rows, want)
	}
	for i := range want {
		if !slices.Equal(table.Rows[i], want[i]) {
			t.Errorf("Rows[%d] = %q, want %q", i, table.Rows[i], want[i])
		}
	}

	if _, err := doc.Tables(3); !errors.Is(err, pdftable.ErrPageRange) {
		t.Errorf("Tables(3) error = %v, want ErrPageRange", err)
	}
}

func TestOpenRejectsNonPDF(t *testing.T) {
	if _, err := pdftable.Open([]byte("plain text, not a pdf")); err == nil {
		t.Error("Open() error = nil, want error")
	}
}

func TestPageCountRejectsNonPDF(t *testing.T) {
	if _, err := pdftable.PageCount([]byte("plain text, not a pdf")); err == nil {
		t.Error("PageCount() error = nil, want error")
	}
}

func texts(line pdftable.Line) []string {
	out := make([]string, len(line.Fragments))
	for i, f := range line.Fragments {
		out[i] = f.Text
	}
	return out
}
