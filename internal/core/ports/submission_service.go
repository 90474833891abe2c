package ports

import (
	"context"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// SubmitResult is returned after a submission is stored.
type SubmitResult struct {
	ID   string
	Kind domain.Kind
}

// SubmissionService defines the intake use cases.
type SubmissionService interface {
	// Submit validates, deduplicates and stores a raw form payload.
	Submit(ctx context.Context, input map[string]any) (*SubmitResult, error)
	List(ctx context.Context, kind domain.Kind) ([]domain.Submission, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
}

// EmailClaimer reserves an email while a submission for it is in flight.
// Claim returns a token identifying the holder; Release only drops the
// reservation while that token still holds it.
type EmailClaimer interface {
	Claim(ctx context.Context, kind domain.Kind, email string) (token string, ok bool, err error)
	Release(ctx context.Context, kind domain.Kind, email, token string) error
}
