package uploads

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/gradebook/pkg/pagination"
)

// System defines the public contract for upload domain operations.
type System interface {
	Handler(maxUploadSize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Upload], error)

	Find(ctx context.Context, id uuid.UUID) (*Upload, error)

	// Create stores the file, extracts it, and records a pending upload.
	Create(ctx context.Context, cmd CreateCommand) (*Preview, error)

	// Preview re-extracts a stored upload without persisting anything.
	Preview(ctx context.Context, id uuid.UUID) (*Preview, error)

	// Confirm saves the extracted rows of a pending upload as marks and marks
	// the upload confirmed, both in one transaction.
	Confirm(ctx context.Context, id uuid.UUID) (*ConfirmResult, error)

	// Delete removes the upload record and its stored file. Saved marks remain.
	Delete(ctx context.Context, id uuid.UUID) error
}
