// Package pdftable reads positioned text from PDF pages and locates the
// text-layout tables on them.
package pdftable

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

var (
	ErrEmptyPage = errors.New("page has no content")
	ErrPageRange = errors.New("page out of range")
)

// Document is an opened PDF.
type Document struct {
	reader *pdf.Reader
}

// Open parses data as a PDF. Reader panics on malformed input are returned as errors.
func Open(data []byte) (doc *Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			doc = nil
			err = fmt.Errorf("open pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}

	return &Document{reader: reader}, nil
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() (n int) {
	defer func() {
		if recover() != nil {
			n = 0
		}
	}()
	return d.reader.NumPage()
}

// Tables returns the candidate tables on page n (1-based) in top-to-bottom order.
func (d *Document) Tables(n int) (tables []Table, err error) {
	if n < 1 || n > d.NumPages() {
		return nil, fmt.Errorf("%w: %d", ErrPageRange, n)
	}

	defer func() {
		if r := recover(); r != nil {
			tables = nil
			err = fmt.Errorf("read page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return nil, fmt.Errorf("%w: %d", ErrEmptyPage, n)
	}

	rows, err := page.GetTextByRow()
	if err != nil {
		return nil, fmt.Errorf("read page %d: %w", n, err)
	}

	var fragments []Fragment
	for _, row := range rows {
		for _, text := range row.Content {
			fragments = append(fragments, Fragment{X: text.X, Y: text.Y, Text: text.S})
		}
	}

	tables = Build(Lines(fragments))
	for i := range tables {
		tables[i].Page = n
	}

	return tables, nil
}

// PageCount returns the number of pages in data using a full structural parse.
func PageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return 0, fmt.Errorf("count pages: %w", err)
	}
	return count, nil
}
