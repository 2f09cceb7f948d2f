package questions_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/JaimeStill/gradebook/internal/intent"
	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/internal/questions"
)

// fakeLookup serves marks from memory, keyed by student id and subject.
type fakeLookup struct {
	subjects []string
	names    map[string]string
	marks    map[string][]marks.Entry
	err      error
}

func (f *fakeLookup) Subjects(context.Context) ([]string, error) {
	return f.subjects, f.err
}

func (f *fakeLookup) Latest(_ context.Context, studentID, subject string) (*float64, error) {
	for _, e := range f.marks[studentID] {
		if e.Subject == subject {
			m := e.Mark
			return &m, nil
		}
	}
	return nil, nil
}

func (f *fakeLookup) All(_ context.Context, studentID string) ([]marks.Entry, error) {
	return f.marks[studentID], nil
}

func (f *fakeLookup) Name(_ context.Context, studentID string) (*string, error) {
	if n, ok := f.names[studentID]; ok {
		return &n, nil
	}
	return nil, nil
}

func newLookup() *fakeLookup {
	return &fakeLookup{
		subjects: []string{"Algorithms", "Computer Networks", "Data Structures", "Operating Systems"},
		names:    map[string]string{"101": "Asha"},
		marks: map[string][]marks.Entry{
			"101": {
				{Subject: "Algorithms", Mark: 90.5},
				{Subject: "Operating Systems", Mark: 71},
			},
			"102": {
				{Subject: "Data Structures", Mark: 64},
			},
		},
	}
}

func newSystem(lookup questions.Lookup) questions.System {
	return questions.New(lookup, intent.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestAsk(t *testing.T) {
	tests := []struct {
		name        string
		q           questions.Question
		wantIntent  intent.Kind
		wantSubject string
		wantMark    *float64
		wantMessage string
	}{
		{
			name:        "subject mark with name",
			q:           questions.Question{StudentID: " 101 ", Text: "my mark in operating system"},
			wantIntent:  intent.SubjectMark,
			wantSubject: "Operating Systems",
			wantMark:    ptr(71.0),
			wantMessage: "Hi Asha (101)! Your mark in **Operating Systems** is **71**.",
		},
		{
			name:        "subject mark without name",
			q:           questions.Question{StudentID: "102", Text: "What did I get in Data Structures?"},
			wantIntent:  intent.SubjectMark,
			wantSubject: "Data Structures",
			wantMark:    ptr(64.0),
			wantMessage: "Hi 102! Your mark in **Data Structures** is **64**.",
		},
		{
			name:        "subject with no stored mark",
			q:           questions.Question{StudentID: "102", Text: "what about computer networks"},
			wantIntent:  intent.SubjectMark,
			wantSubject: "Computer Networks",
			wantMessage: "I couldn't find a mark for **Computer Networks** under student id **102**.",
		},
		{
			name:        "all marks",
			q:           questions.Question{StudentID: "101", Text: "Show my marks please"},
			wantIntent:  intent.AllMarks,
			wantMessage: "Here are your saved marks, **Asha (101)**:\n- **Algorithms**: 90.5\n- **Operating Systems**: 71",
		},
		{
			name:        "all marks none saved",
			q:           questions.Question{StudentID: "999", Text: "all marks"},
			wantIntent:  intent.AllMarks,
			wantMessage: "I couldn't find any marks saved for **999** yet.",
		},
		{
			name:        "subject not detected",
			q:           questions.Question{StudentID: "101", Text: "hello"},
			wantIntent:  intent.SubjectMark,
			wantMessage: "I couldn't detect the subject. Try: 'my mark in Data Structures'.\nAvailable subjects: Algorithms, Computer Networks, Data Structures, Operating Systems",
		},
		{
			name:        "unknown",
			q:           questions.Question{StudentID: "101", Text: "?!"},
			wantIntent:  intent.Unknown,
			wantMessage: "Try asking: 'my mark in DS' or 'show my marks'.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := newSystem(newLookup()).Ask(context.Background(), tt.q)
			if err != nil {
				t.Fatalf("Ask() error = %v", err)
			}

			if got.Intent != tt.wantIntent {
				t.Errorf("intent = %s, want %s", got.Intent, tt.wantIntent)
			}
			if got.Subject != tt.wantSubject {
				t.Errorf("subject = %q, want %q", got.Subject, tt.wantSubject)
			}
			if (got.Mark == nil) != (tt.wantMark == nil) || (got.Mark != nil && *got.Mark != *tt.wantMark) {
				t.Errorf("mark = %v, want %v", got.Mark, tt.wantMark)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("message =\n%s\nwant\n%s", got.Message, tt.wantMessage)
			}
			if got.StudentID != strings.TrimSpace(tt.q.StudentID) {
				t.Errorf("student id = %q", got.StudentID)
			}
		})
	}
}

func TestAskAllMarksEntries(t *testing.T) {
	got, err := newSystem(newLookup()).Ask(context.Background(), questions.Question{StudentID: "101", Text: "my marks"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if len(got.Marks) != 2 || got.Marks[0].Subject != "Algorithms" {
		t.Errorf("marks = %+v", got.Marks)
	}
	if got.StudentName == nil || *got.StudentName != "Asha" {
		t.Errorf("student name = %v, want Asha", got.StudentName)
	}
}

func TestAskNoSubjects(t *testing.T) {
	lookup := &fakeLookup{}

	got, err := newSystem(lookup).Ask(context.Background(), questions.Question{StudentID: "101", Text: "my mark in ds"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if got.Intent != intent.SubjectMark || got.Subject != "" {
		t.Errorf("intent = %s %q, want unresolved subject_mark", got.Intent, got.Subject)
	}
	if got.Message != "No subjects found yet. Ask staff to upload the marks PDF first." {
		t.Errorf("message = %q", got.Message)
	}
}

func TestAskTruncatesSubjects(t *testing.T) {
	lookup := &fakeLookup{}
	for i := range 35 {
		lookup.subjects = append(lookup.subjects, fmt.Sprintf("Subject %02d", i))
	}

	got, err := newSystem(lookup).Ask(context.Background(), questions.Question{StudentID: "101", Text: "qqqq"})
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if len(got.Subjects) != questions.MaxListedSubjects {
		t.Errorf("subjects = %d, want %d", len(got.Subjects), questions.MaxListedSubjects)
	}
	if !strings.HasSuffix(got.Message, "Subject 29 ...") {
		t.Errorf("message should end with the 30th subject and an ellipsis: %q", got.Message)
	}
	if strings.Contains(got.Message, "Subject 30") {
		t.Error("message lists more than 30 subjects")
	}
}

func TestAskInvalid(t *testing.T) {
	tests := []questions.Question{
		{StudentID: "", Text: "my marks"},
		{StudentID: "101", Text: "   "},
		{StudentID: "  ", Text: ""},
	}

	for _, q := range tests {
		_, err := newSystem(newLookup()).Ask(context.Background(), q)
		if !errors.Is(err, questions.ErrInvalidQuestion) {
			t.Errorf("Ask(%+v) error = %v, want ErrInvalidQuestion", q, err)
		}
	}
}

func TestAskLookupFailure(t *testing.T) {
	lookup := newLookup()
	lookup.err = errors.New("database unavailable")

	_, err := newSystem(lookup).Ask(context.Background(), questions.Question{StudentID: "101", Text: "my marks"})
	if err == nil || !strings.Contains(err.Error(), "load subjects") {
		t.Errorf("Ask() error = %v, want load subjects failure", err)
	}
}

func TestFormatMark(t *testing.T) {
	tests := []struct {
		mark float64
		want string
	}{
		{87, "87"},
		{90.5, "90.5"},
		{7.25, "7.25"},
		{87.123456789, "87.1235"},
		{0, "0"},
		{1000000, "1e+06"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := questions.FormatMark(tt.mark); got != tt.want {
				t.Errorf("FormatMark(%v) = %q, want %q", tt.mark, got, tt.want)
			}
		})
	}
}

func TestMapHTTPStatus(t *testing.T) {
	if got := questions.MapHTTPStatus(questions.ErrInvalidQuestion); got != 400 {
		t.Errorf("ErrInvalidQuestion = %d, want 400", got)
	}
	if got := questions.MapHTTPStatus(errors.New("boom")); got != 500 {
		t.Errorf("other = %d, want 500", got)
	}
}

func ptr[T any](v T) *T { return &v }
