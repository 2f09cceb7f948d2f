// Package pdftabletest writes minimal PDFs for tests. Every text run is drawn
// in 10pt Helvetica with its own text matrix, one Tm/Tj pair per run.
package pdftabletest

import (
	"bytes"
	"fmt"
	"strings"
)

// Text is a run of text drawn at X, Y in PDF user space.
type Text struct {
	X float64
	Y float64
	S string
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Document returns a PDF with one page per element of pages.
func Document(pages ...[]Text) []byte {
	var objects []string

	// 1: catalog, 2: page tree, 3: font; each page adds a page and a content stream.
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}

	objects = append(objects,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)

	for i, texts := range pages {
		objects = append(objects,
			fmt.Sprintf(
				"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>",
				5+2*i,
			),
			stream(content(texts)),
		)
	}

	var b bytes.Buffer
	b.WriteString("%PDF-1.4\n")

	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = b.Len()
		fmt.Fprintf(&b, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := b.Len()
	fmt.Fprintf(&b, "xref\n0 %d\n", len(objects)+1)
	b.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&b, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&b, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)

	return b.Bytes()
}

func content(texts []Text) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 10 Tf\n")
	for _, t := range texts {
		fmt.Fprintf(&b, "1 0 0 1 %g %g Tm\n(%s) Tj\n", t.X, t.Y, escaper.Replace(t.S))
	}
	b.WriteString("ET")
	return b.String()
}

func stream(data string) string {
	return fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(data), data)
}
