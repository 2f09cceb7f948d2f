package marks

import "context"

// System defines the public contract for marks domain operations.
// Lookups trim their inputs; a lookup with no match returns a nil value and no error.
type System interface {
	Handler() *Handler

	// Insert appends records in one transaction and returns the number stored.
	// No uniqueness is enforced; later inserts shadow earlier ones in Latest.
	Insert(ctx context.Context, records []Record) (int, error)

	// Subjects returns the distinct stored subjects sorted case-insensitively.
	Subjects(ctx context.Context) ([]string, error)

	// Latest returns the most recently inserted mark for the student and subject.
	Latest(ctx context.Context, studentID, subject string) (*float64, error)

	// All returns every stored mark for the student sorted case-insensitively by subject.
	All(ctx context.Context, studentID string) ([]Entry, error)

	// Name returns the most recently stored non-empty name for the student.
	Name(ctx context.Context, studentID string) (*string, error)

	// Export renders the student's marks as an XLSX workbook.
	Export(ctx context.Context, studentID string) ([]byte, error)
}
