package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	_ "modernc.org/sqlite"

	"github.com/JaimeStill/gradebook/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type item struct {
	ID   int
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var i item
	err := s.Scan(&i.ID, &i.Name)
	return i, err
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`); err != nil {
		t.Fatalf("create table: %v", err)
	}

	return db
}

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	pgForeignKey := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"postgres unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"postgres other code", pgForeignKey, pgForeignKey},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound, errDuplicate); got != tt.want {
				t.Errorf("MapError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMapErrorSQLiteUnique(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, "INSERT INTO items(name) VALUES ($1)", "alpha"); err != nil {
		t.Fatalf("insert: %v", err)
	}

	_, err := db.ExecContext(ctx, "INSERT INTO items(name) VALUES ($1)", "alpha")
	if got := repository.MapError(err, errNotFound, errDuplicate); !errors.Is(got, errDuplicate) {
		t.Errorf("MapError(sqlite unique) = %v, want %v", got, errDuplicate)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, "INSERT INTO items(name) VALUES ($1)", "beta"); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("WithTx() error = %v, want %v", err, boom)
	}

	items, err := repository.QueryMany(ctx, db, "SELECT id, name FROM items", nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %v, want none after rollback", items)
	}
}

func TestQueryHelpers(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	created, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (item, error) {
		return repository.QueryOne(ctx, tx,
			"INSERT INTO items(name) VALUES ($1) RETURNING id, name",
			[]any{"gamma"}, scanItem)
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if created.Name != "gamma" {
		t.Errorf("Name = %q, want gamma", created.Name)
	}

	if err := repository.ExecExpectOne(ctx, db, "UPDATE items SET name = $1 WHERE id = $2", "delta", created.ID); err != nil {
		t.Errorf("ExecExpectOne() error = %v", err)
	}

	err = repository.ExecExpectOne(ctx, db, "DELETE FROM items WHERE id = $1", created.ID+100)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("ExecExpectOne(missing) error = %v, want sql.ErrNoRows", err)
	}

	_, err = repository.QueryOne(ctx, db, "SELECT id, name FROM items WHERE id = $1", []any{created.ID + 100}, scanItem)
	if !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("QueryOne(missing) error = %v, want sql.ErrNoRows", err)
	}
}

func TestExecEach(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	n, err := repository.ExecEach(ctx, db, "INSERT INTO items(name) VALUES ($1)", nil)
	if err != nil || n != 0 {
		t.Fatalf("ExecEach(empty) = %d, %v, want 0, nil", n, err)
	}

	n, err = repository.ExecEach(ctx, db, "INSERT INTO items(name) VALUES ($1)", [][]any{{"one"}, {"two"}})
	if err != nil {
		t.Fatalf("ExecEach() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ExecEach() = %d, want 2", n)
	}

	n, err = repository.ExecEach(ctx, db, "INSERT INTO items(name) VALUES ($1)", [][]any{{"three"}, {"one"}, {"four"}})
	if got := repository.MapError(err, errNotFound, errDuplicate); !errors.Is(got, errDuplicate) {
		t.Fatalf("ExecEach(duplicate) error = %v, want duplicate", err)
	}
	if n != 1 {
		t.Errorf("ExecEach(duplicate) executed %d, want 1", n)
	}

	items, err := repository.QueryMany(ctx, db, "SELECT id, name FROM items ORDER BY id", nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if len(items) != 3 {
		t.Errorf("items = %v, want 3 rows", items)
	}
}

func TestQueryManyEmpty(t *testing.T) {
	db := openDB(t)

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	if err != nil {
		t.Fatalf("QueryMany() error = %v", err)
	}
	if items == nil || len(items) != 0 {
		t.Errorf("QueryMany() = %#v, want empty non-nil slice", items)
	}
}
