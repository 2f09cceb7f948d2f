package marks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/JaimeStill/gradebook/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a marks repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "marks"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Insert(ctx context.Context, records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		return InsertRecords(ctx, tx, records, time.Now().UTC())
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("marks inserted", "count", n)
	return n, nil
}

// InsertRecords validates every record, then appends them through p.
// Nothing is written when any record is invalid. Callers own the transaction.
func InsertRecords(ctx context.Context, p repository.Preparer, records []Record, now time.Time) (int, error) {
	argSets := make([][]any, len(records))
	for i, rec := range records {
		if err := rec.Validate(); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, err)
		}
		argSets[i] = insertArgs(rec, now)
	}

	n, err := repository.ExecEach(ctx, p, insertSQL, argSets)
	if err != nil {
		return 0, fmt.Errorf("insert mark %d: %w", n, err)
	}
	return n, nil
}

func insertArgs(rec Record, now time.Time) []any {
	var name *string
	if rec.StudentName != nil {
		if v := strings.TrimSpace(*rec.StudentName); v != "" {
			name = &v
		}
	}

	return []any{
		strings.TrimSpace(rec.StudentID),
		name,
		strings.TrimSpace(rec.Subject),
		rec.Mark,
		rec.SourceFile,
		now,
	}
}

func (r *repo) Subjects(ctx context.Context) ([]string, error) {
	subjects, err := repository.QueryMany(ctx, r.db, subjectsSQL, nil, scanString)
	if err != nil {
		return nil, fmt.Errorf("query subjects: %w", err)
	}
	return subjects, nil
}

func (r *repo) Latest(ctx context.Context, studentID, subject string) (*float64, error) {
	args := []any{strings.TrimSpace(studentID), strings.TrimSpace(subject)}

	mark, err := repository.QueryOne(ctx, r.db, latestSQL, args, scanFloat)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest mark: %w", err)
	}
	return &mark, nil
}

func (r *repo) All(ctx context.Context, studentID string) ([]Entry, error) {
	entries, err := repository.QueryMany(ctx, r.db, allSQL, []any{strings.TrimSpace(studentID)}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query marks: %w", err)
	}
	return entries, nil
}

func (r *repo) Name(ctx context.Context, studentID string) (*string, error) {
	name, err := repository.QueryOne(ctx, r.db, nameSQL, []any{strings.TrimSpace(studentID)}, scanString)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query student name: %w", err)
	}
	return &name, nil
}

func (r *repo) Export(ctx context.Context, studentID string) ([]byte, error) {
	id := strings.TrimSpace(studentID)

	entries, err := r.All(ctx, id)
	if err != nil {
		return nil, err
	}

	name, err := r.Name(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := Workbook(Student{StudentID: id, StudentName: name, Marks: entries})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("marks exported", "student_id", id, "rows", len(entries))
	return data, nil
}
