// Package uploads implements the staff upload domain: a marks PDF is stored,
// previewed through the extractor, and only persisted as marks once confirmed.
package uploads

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/internal/marksheet"
)

// Upload statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
)

// Upload records one staff submission and its stored PDF.
// SavedCount and ConfirmedAt are set once the upload is confirmed.
type Upload struct {
	ID          uuid.UUID  `json:"id"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	SizeBytes   int64      `json:"size_bytes"`
	PageCount   *int       `json:"page_count"`
	StorageKey  string     `json:"storage_key"`
	Status      string     `json:"status"`
	RowCount    int        `json:"row_count"`
	Warnings    []string   `json:"warnings"`
	SavedCount  *int       `json:"saved_count"`
	UploadedAt  time.Time  `json:"uploaded_at"`
	ConfirmedAt *time.Time `json:"confirmed_at"`
}

// CreateCommand carries an uploaded file. PageCount is optional and is
// stored as NULL when nil.
type CreateCommand struct {
	Data        []byte
	Filename    string
	ContentType string
	PageCount   *int
}

// Preview is the extraction result for an upload. Nothing in a preview is
// persisted as marks until the upload is confirmed.
type Preview struct {
	Upload   Upload                  `json:"upload"`
	Rows     []marks.Record          `json:"rows"`
	Warnings []string                `json:"warnings"`
	Mapping  marksheet.HeaderMapping `json:"mapping,omitempty"`
}

// ConfirmResult reports the rows saved by a confirm.
type ConfirmResult struct {
	Upload Upload `json:"upload"`
	Saved  int    `json:"saved"`
}

// Extractor turns PDF bytes into candidate mark records.
type Extractor interface {
	Extract(data []byte, source string) marksheet.Outcome
}
