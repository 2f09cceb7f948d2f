package uploads

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/JaimeStill/gradebook/pkg/query"
	"github.com/JaimeStill/gradebook/pkg/repository"
)

var projection = query.
	NewProjectionMap("uploads", "u").
	Project("id", "ID").
	Project("filename", "Filename").
	Project("content_type", "ContentType").
	Project("size_bytes", "SizeBytes").
	Project("page_count", "PageCount").
	Project("storage_key", "StorageKey").
	Project("status", "Status").
	Project("row_count", "RowCount").
	Project("warnings", "Warnings").
	Project("saved_count", "SavedCount").
	Project("uploaded_at", "UploadedAt").
	Project("confirmed_at", "ConfirmedAt")

var defaultSort = query.SortField{
	Field:      "UploadedAt",
	Descending: true,
}

const insertSQL = `
	INSERT INTO uploads(id, filename, content_type, size_bytes, page_count, storage_key, status, row_count, warnings, uploaded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

const confirmSQL = `
	UPDATE uploads
	SET status = $2, saved_count = $3, confirmed_at = $4
	WHERE id = $1 AND status = $5`

const deleteSQL = `DELETE FROM uploads WHERE id = $1`

// Filters contains optional filtering criteria for upload queries.
// Nil fields are ignored. Status uses exact matching; Filename uses
// case-insensitive contains matching.
type Filters struct {
	Status   *string `json:"status,omitempty"`
	Filename *string `json:"filename,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Filename", f.Filename)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if fn := values.Get("filename"); fn != "" {
		f.Filename = &fn
	}

	return f
}

func scanUpload(s repository.Scanner) (Upload, error) {
	var (
		u        Upload
		warnings string
	)

	err := s.Scan(
		&u.ID,
		&u.Filename,
		&u.ContentType,
		&u.SizeBytes,
		&u.PageCount,
		&u.StorageKey,
		&u.Status,
		&u.RowCount,
		&warnings,
		&u.SavedCount,
		&u.UploadedAt,
		&u.ConfirmedAt,
	)
	if err != nil {
		return u, err
	}

	u.Warnings = make([]string, 0)
	if err := json.Unmarshal([]byte(warnings), &u.Warnings); err != nil {
		return u, fmt.Errorf("decode warnings: %w", err)
	}

	return u, nil
}

func encodeWarnings(warnings []string) (string, error) {
	if warnings == nil {
		warnings = []string{}
	}
	data, err := json.Marshal(warnings)
	if err != nil {
		return "", fmt.Errorf("encode warnings: %w", err)
	}
	return string(data), nil
}
