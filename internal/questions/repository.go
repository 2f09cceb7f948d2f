package questions

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/gradebook/internal/intent"
)

type service struct {
	marks      Lookup
	classifier *intent.Classifier
	logger     *slog.Logger
}

// New creates a question System backed by the marks lookups.
func New(lookup Lookup, classifier *intent.Classifier, logger *slog.Logger) System {
	if classifier == nil {
		classifier = intent.New()
	}
	return &service{
		marks:      lookup,
		classifier: classifier,
		logger:     logger.With("system", "questions"),
	}
}

func (s *service) Handler() *Handler {
	return NewHandler(s, s.logger)
}

func (s *service) Ask(ctx context.Context, q Question) (*Answer, error) {
	studentID := strings.TrimSpace(q.StudentID)
	text := strings.TrimSpace(q.Text)
	if studentID == "" || text == "" {
		return nil, ErrInvalidQuestion
	}

	var (
		subjects []string
		name     *string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		subjects, err = s.marks.Subjects(gctx)
		if err != nil {
			return fmt.Errorf("load subjects: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		name, err = s.marks.Name(gctx, studentID)
		if err != nil {
			return fmt.Errorf("load student name: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	in := s.classifier.Classify(text, subjects)

	s.logger.Debug(
		"question classified",
		"student_id", studentID,
		"intent", in.Kind,
		"subject", in.Subject,
	)

	answer := &Answer{
		StudentID:   studentID,
		StudentName: name,
		Intent:      in.Kind,
		Subject:     in.Subject,
	}

	switch in.Kind {
	case intent.AllMarks:
		entries, err := s.marks.All(ctx, studentID)
		if err != nil {
			return nil, fmt.Errorf("load marks: %w", err)
		}
		answer.Marks = entries
		answer.Message = allMarksReply(studentID, name, entries)

	case intent.SubjectMark:
		if !in.Resolved() {
			answer.Subjects = subjects[:min(len(subjects), MaxListedSubjects)]
			answer.Message = noSubjectReply(subjects)
			break
		}

		mark, err := s.marks.Latest(ctx, studentID, in.Subject)
		if err != nil {
			return nil, fmt.Errorf("load mark: %w", err)
		}
		if mark == nil {
			answer.Message = missingMarkReply(studentID, in.Subject)
			break
		}
		answer.Mark = mark
		answer.Message = markReply(studentID, name, in.Subject, *mark)

	default:
		answer.Message = msgUsage
	}

	return answer, nil
}
