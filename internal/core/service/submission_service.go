package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stylematch/waitlist/internal/core/domain"
	"github.com/stylematch/waitlist/internal/core/intake"
	"github.com/stylematch/waitlist/internal/core/ports"
	"github.com/stylematch/waitlist/pkg/logger"
)

// SubmissionService runs a signup through validation, the duplicate gate and
// storage, then hands it to the notification queue.
type SubmissionService struct {
	validator *intake.Validator
	customers ports.SubmissionRepository[*domain.Customer]
	merchants ports.SubmissionRepository[*domain.Merchant]
	claims    ports.EmailClaimer // optional
	notify    ports.NotificationQueue
	log       zerolog.Logger
	now       func() time.Time
	newID     func() string
}

// SubmissionOption customises a SubmissionService.
type SubmissionOption func(*SubmissionService)

// WithEmailClaims enables the cross-process email reservation.
func WithEmailClaims(c ports.EmailClaimer) SubmissionOption {
	return func(s *SubmissionService) { s.claims = c }
}

// WithClock overrides the submission timestamp source.
func WithClock(now func() time.Time) SubmissionOption {
	return func(s *SubmissionService) { s.now = now }
}

func NewSubmissionService(
	customers ports.SubmissionRepository[*domain.Customer],
	merchants ports.SubmissionRepository[*domain.Merchant],
	notify ports.NotificationQueue,
	log zerolog.Logger,
	opts ...SubmissionOption,
) *SubmissionService {
	s := &SubmissionService{
		validator: intake.New(),
		customers: customers,
		merchants: merchants,
		notify:    notify,
		log:       log,
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates input and stores it as a new customer or merchant.
func (s *SubmissionService) Submit(ctx context.Context, input map[string]any) (*ports.SubmitResult, error) {
	sub, errs := s.validator.Validate(input)
	if len(errs) > 0 {
		return nil, &domain.ValidationError{Details: errs}
	}

	switch rec := sub.(type) {
	case *domain.Customer:
		err := create(ctx, s, s.customers, rec)
		return s.result(rec, err)
	case *domain.Merchant:
		err := create(ctx, s, s.merchants, rec)
		return s.result(rec, err)
	default:
		return nil, fmt.Errorf("submit: unsupported submission %T", sub)
	}
}

func (s *SubmissionService) result(sub domain.Submission, err error) (*ports.SubmitResult, error) {
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("kind", string(sub.Kind())).
		Str("id", sub.SubmissionID()).
		Str("email", logger.RedactEmail(sub.ContactEmail())).
		Msg("submission stored")

	s.notify.Enqueue(sub)
	return &ports.SubmitResult{ID: sub.SubmissionID(), Kind: sub.Kind()}, nil
}

// create runs the duplicate gate and the write for one collection.
func create[T domain.Submission](ctx context.Context, s *SubmissionService, repo ports.SubmissionRepository[T], rec T) error {
	kind, email := rec.Kind(), rec.ContactEmail()

	// 1. Reserve the email across processes. The storage guard stays
	// authoritative, so a claim store outage only costs the fast path.
	if s.claims != nil {
		token, ok, err := s.claims.Claim(ctx, kind, email)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("kind", string(kind)).Msg("email claim failed, continuing without it")
		case !ok:
			return domain.ErrDuplicateEmail
		default:
			defer func() {
				if err := s.claims.Release(context.WithoutCancel(ctx), kind, email, token); err != nil {
					s.log.Warn().Err(err).Str("kind", string(kind)).Msg("failed to release email claim")
				}
			}()
		}
	}

	// 2. Application-level duplicate check.
	exists, err := repo.ExistsByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("submit %s: %w", kind, err)
	}
	if exists {
		return domain.ErrDuplicateEmail
	}

	// 3. Stamp and write. The repository rejects duplicates on its own.
	rec.Stamp(s.newID(), s.now().UTC().Truncate(time.Millisecond))
	if err := repo.Append(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("submit %s: %w", kind, err)
	}
	return nil
}

// List returns every submission of kind, newest first.
func (s *SubmissionService) List(ctx context.Context, kind domain.Kind) ([]domain.Submission, error) {
	switch kind {
	case domain.KindCustomer:
		return list(ctx, s.customers)
	case domain.KindMerchant:
		return list(ctx, s.merchants)
	}
	return nil, fmt.Errorf("list: unknown kind %q", kind)
}

func list[T domain.Submission](ctx context.Context, repo ports.SubmissionRepository[T]) ([]domain.Submission, error) {
	recs, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	out := make([]domain.Submission, len(recs))
	for i, r := range recs {
		out[i] = r
	}
	return out, nil
}

// Delete removes one submission. Missing ids yield domain.ErrSubmissionNotFound.
func (s *SubmissionService) Delete(ctx context.Context, kind domain.Kind, id string) error {
	var err error
	switch kind {
	case domain.KindCustomer:
		err = s.customers.Delete(ctx, id)
	case domain.KindMerchant:
		err = s.merchants.Delete(ctx, id)
	default:
		return fmt.Errorf("delete: unknown kind %q", kind)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSubmissionNotFound) {
			return err
		}
		return fmt.Errorf("delete %s: %w", kind, err)
	}

	s.log.Info().Str("kind", string(kind)).Str("id", id).Msg("submission deleted")
	return nil
}
