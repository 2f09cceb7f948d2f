package uploads

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/gradebook/internal/marks"
	"github.com/JaimeStill/gradebook/pkg/pagination"
	"github.com/JaimeStill/gradebook/pkg/query"
	"github.com/JaimeStill/gradebook/pkg/repository"
	"github.com/JaimeStill/gradebook/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	extractor  Extractor
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an upload repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	extractor Extractor,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		extractor:  extractor,
		logger:     logger.With("system", "uploads"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Upload], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count uploads: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUpload)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Upload, error) {
	return r.find(ctx, r.db, id)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Preview, error) {
	if len(cmd.Data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidFile)
	}

	id := uuid.New()
	filename := sanitizeFilename(cmd.Filename)
	key := buildStorageKey(id, filename)

	out := r.extractor.Extract(cmd.Data, filename)

	warnings, err := encodeWarnings(out.Warnings)
	if err != nil {
		return nil, err
	}

	if err := r.storage.Upload(ctx, key, bytes.NewReader(cmd.Data), cmd.ContentType); err != nil {
		return nil, fmt.Errorf("upload marks blob: %w", err)
	}

	insertArgs := []any{
		id,
		filename,
		cmd.ContentType,
		int64(len(cmd.Data)),
		cmd.PageCount,
		key,
		StatusPending,
		len(out.Rows),
		warnings,
		time.Now().UTC(),
	}

	u, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Upload, error) {
		if _, err := tx.ExecContext(ctx, insertSQL, insertArgs...); err != nil {
			return nil, err
		}
		return r.find(ctx, tx, id)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info(
		"upload created",
		"id", u.ID,
		"filename", u.Filename,
		"rows", u.RowCount,
		"warnings", len(u.Warnings),
	)

	return &Preview{
		Upload:   *u,
		Rows:     out.Rows,
		Warnings: out.Warnings,
		Mapping:  out.Mapping,
	}, nil
}

func (r *repo) Preview(ctx context.Context, id uuid.UUID) (*Preview, error) {
	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := r.download(ctx, u.StorageKey)
	if err != nil {
		return nil, err
	}

	out := r.extractor.Extract(data, u.Filename)

	return &Preview{
		Upload:   *u,
		Rows:     out.Rows,
		Warnings: out.Warnings,
		Mapping:  out.Mapping,
	}, nil
}

func (r *repo) Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error) {
	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.Status != StatusPending {
		return nil, ErrInvalidStatus
	}

	data, err := r.download(ctx, u.StorageKey)
	if err != nil {
		return nil, err
	}

	out := r.extractor.Extract(data, u.Filename)
	if len(out.Rows) == 0 {
		return nil, ErrNothingToSave
	}

	now := time.Now().UTC()

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*ConfirmResult, error) {
		if err := repository.ExecExpectOne(
			ctx, tx, confirmSQL,
			id, StatusConfirmed, len(out.Rows), now, StatusPending,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, ErrInvalidStatus
			}
			return nil, err
		}

		saved, err := marks.InsertRecords(ctx, tx, out.Rows, now)
		if err != nil {
			return nil, err
		}

		confirmed, err := r.find(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		return &ConfirmResult{Upload: *confirmed, Saved: saved}, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("upload confirmed", "id", id, "saved", result.Saved)
	return result, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	u, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	if err := repository.ExecExpectOne(ctx, r.db, deleteSQL, id); err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, u.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", u.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("upload deleted", "id", id)
	return nil
}

func (r *repo) find(ctx context.Context, q repository.Querier, id uuid.UUID) (*Upload, error) {
	stmt, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, q, stmt, args, scanUpload)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) download(ctx context.Context, key string) ([]byte, error) {
	rc, err := r.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: stored file missing", ErrNotFound)
		}
		return nil, fmt.Errorf("download marks blob: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read marks blob: %w", err)
	}
	return data, nil
}

func buildStorageKey(id uuid.UUID, filename string) string {
	escaped := strings.ReplaceAll(url.PathEscape(filename), "..", ".")
	return fmt.Sprintf("uploads/%s/%s", id, escaped)
}

func sanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, `\`, "/"))
	if name == "." || name == ".." || name == "/" || name == "" {
		name = "marks.pdf"
	}
	return name
}
