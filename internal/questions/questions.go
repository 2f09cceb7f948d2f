// Package questions answers a student's free-text question about their marks.
package questions

import (
	"context"

	"github.com/JaimeStill/gradebook/internal/intent"
	"github.com/JaimeStill/gradebook/internal/marks"
)

// MaxListedSubjects caps the subjects suggested when no subject was detected.
const MaxListedSubjects = 30

// Question is a student's request.
type Question struct {
	StudentID string `json:"student_id"`
	Text      string `json:"question"`
}

// Answer is the reply to a Question. Mark is set for a resolved subject
// lookup, Marks for an all-marks request, and Subjects when a subject could
// not be detected. Message is the human-readable reply in Markdown.
type Answer struct {
	StudentID   string        `json:"student_id"`
	StudentName *string       `json:"student_name"`
	Intent      intent.Kind   `json:"intent"`
	Subject     string        `json:"subject,omitempty"`
	Mark        *float64      `json:"mark,omitempty"`
	Marks       []marks.Entry `json:"marks,omitempty"`
	Subjects    []string      `json:"subjects,omitempty"`
	Message     string        `json:"message"`
}

// Lookup is the subset of the marks system used to answer questions.
type Lookup interface {
	Subjects(ctx context.Context) ([]string, error)
	Latest(ctx context.Context, studentID, subject string) (*float64, error)
	All(ctx context.Context, studentID string) ([]marks.Entry, error)
	Name(ctx context.Context, studentID string) (*string, error)
}
