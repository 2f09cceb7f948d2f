// Package marks implements the marks domain: append-only storage of extracted
// student marks and the lookups that answer student questions.
package marks

import (
	"fmt"
	"math"
	"strings"
)

// Record is one student's mark in one subject, as extracted from a marks sheet.
type Record struct {
	StudentID   string  `json:"student_id"`
	StudentName *string `json:"student_name"`
	Subject     string  `json:"subject"`
	Mark        float64 `json:"mark"`
	SourceFile  string  `json:"source_file"`
}

// Validate reports ErrInvalidRecord when the student id or subject is blank
// or the mark is not a finite number.
func (r Record) Validate() error {
	if strings.TrimSpace(r.StudentID) == "" {
		return fmt.Errorf("%w: student id is required", ErrInvalidRecord)
	}
	if strings.TrimSpace(r.Subject) == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidRecord)
	}
	if math.IsNaN(r.Mark) || math.IsInf(r.Mark, 0) {
		return fmt.Errorf("%w: mark must be a finite number", ErrInvalidRecord)
	}
	return nil
}

// Entry is a subject and mark pair returned by student lookups.
type Entry struct {
	Subject string  `json:"subject"`
	Mark    float64 `json:"mark"`
}

// Student groups every stored mark for one student id.
type Student struct {
	StudentID   string  `json:"student_id"`
	StudentName *string `json:"student_name"`
	Marks       []Entry `json:"marks"`
}
