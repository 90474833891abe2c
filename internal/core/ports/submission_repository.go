package ports

import (
	"context"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// SubmissionRepository persists one collection of submissions.
//
// Append must reject a record whose email already exists in the collection
// with domain.ErrDuplicateEmail; that check is the authoritative guard.
type SubmissionRepository[T domain.Submission] interface {
	Append(ctx context.Context, rec T) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List returns every record, newest first.
	List(ctx context.Context) ([]T, error)
	// Delete removes a record by id or returns domain.ErrSubmissionNotFound.
	Delete(ctx context.Context, id string) error
}

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
