// Package intent classifies a student's free-text question as a request for
// all marks or for the mark in one subject.
package intent

import (
	"regexp"
	"strings"

	"github.com/JaimeStill/gradebook/pkg/fuzzy"
)

// Kind is the category of a question.
type Kind string

const (
	AllMarks    Kind = "all_marks"
	SubjectMark Kind = "subject_mark"
	Unknown     Kind = "unknown"
)

// DefaultThreshold is the lowest subject score accepted as a match.
const DefaultThreshold = 65.0

// Triggers are phrases that ask for every mark. They take priority over subject matching.
var Triggers = []string{
	"all marks",
	"show my marks",
	"my marks",
	"marks list",
	"all subjects",
	"overall marks",
}

// Intent is a classified question. Subject is empty when no subject was resolved.
type Intent struct {
	Kind    Kind   `json:"kind"`
	Subject string `json:"subject,omitempty"`
}

// Resolved reports whether a subject was matched.
func (i Intent) Resolved() bool {
	return i.Subject != ""
}

// Scorer rates how well query matches subject on a 0 to 100 scale.
type Scorer func(query, subject string) float64

// Classifier maps questions to intents.
type Classifier struct {
	Score     Scorer
	Threshold float64
}

// New returns a Classifier using fuzzy.PartialRatio and DefaultThreshold.
func New() *Classifier {
	return &Classifier{
		Score:     fuzzy.PartialRatio,
		Threshold: DefaultThreshold,
	}
}

var (
	disallowed = regexp.MustCompile(`[^a-z0-9\s\-_]`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Normalize lowercases text, replaces characters other than ASCII letters,
// digits, whitespace, hyphens and underscores with spaces, and collapses whitespace.
func Normalize(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = disallowed.ReplaceAllString(s, " ")
	return strings.TrimSpace(whitespace.ReplaceAllString(s, " "))
}

// Classify decides what text asks for given the known subjects. Subjects are
// scored against the normalized text in lowercase; the highest score wins and
// ties go to the earlier subject. The returned subject keeps its stored casing.
//
// Lowercasing subjects departs from a case-sensitive partial-ratio scorer,
// which would score "Data Structures" below "data structures" for the same
// question because the normalized text is always lowercase.
func (c *Classifier) Classify(text string, subjects []string) Intent {
	t := Normalize(text)
	if t == "" {
		return Intent{Kind: Unknown}
	}

	for _, phrase := range Triggers {
		if strings.Contains(t, phrase) {
			return Intent{Kind: AllMarks}
		}
	}

	if len(subjects) == 0 {
		return Intent{Kind: SubjectMark}
	}

	best, bestScore := -1, 0.0
	for i, subject := range subjects {
		score := c.Score(t, strings.ToLower(subject))
		if best < 0 || score > bestScore {
			best, bestScore = i, score
		}
	}

	if bestScore < c.Threshold {
		return Intent{Kind: SubjectMark}
	}

	return Intent{Kind: SubjectMark, Subject: subjects[best]}
}

var defaultClassifier = New()

// Classify classifies text with the default classifier.
func Classify(text string, subjects []string) Intent {
	return defaultClassifier.Classify(text, subjects)
}
