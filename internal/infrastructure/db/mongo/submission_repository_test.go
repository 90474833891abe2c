package mongo

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/stylematch/waitlist/internal/core/domain"
)

func newMockTest(t *testing.T) *mtest.T {
	t.Helper()
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func customers(mt *mtest.T) *SubmissionRepository[*domain.Customer] {
	return &SubmissionRepository[*domain.Customer]{col: mt.Coll}
}

func TestSubmissionRepository_Append(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("inserted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := customers(mt).Append(context.Background(), &domain.Customer{ID: "c1", Email: "jo@example.com"})
		if err != nil {
			mt.Fatalf("append: %v", err)
		}
	})

	mt.Run("duplicate key maps to duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: stylematch.customers index: email_unique",
		}))

		err := customers(mt).Append(context.Background(), &domain.Customer{ID: "c2", Email: "jo@example.com"})
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			mt.Fatalf("expected ErrDuplicateEmail, got %v", err)
		}
	})

	mt.Run("other failures are storage errors", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Name:    "ShutdownInProgress",
			Message: "server shutting down",
		}))

		err := customers(mt).Append(context.Background(), &domain.Customer{ID: "c3", Email: "kim@example.com"})
		if !errors.Is(err, domain.ErrStorage) || errors.Is(err, domain.ErrDuplicateEmail) {
			mt.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}

func TestSubmissionRepository_Delete(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("deleted", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(1)}))

		if err := customers(mt).Delete(context.Background(), "c1"); err != nil {
			mt.Fatalf("delete: %v", err)
		}
	})

	mt.Run("missing id maps to not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: int32(0)}))

		err := customers(mt).Delete(context.Background(), "nope")
		if !errors.Is(err, domain.ErrSubmissionNotFound) {
			mt.Fatalf("expected ErrSubmissionNotFound, got %v", err)
		}
	})
}

func TestSubmissionRepository_ExistsByEmail(t *testing.T) {
	mt := newMockTest(t)

	mt.Run("found", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{{Key: "n", Value: int32(1)}}))

		exists, err := customers(mt).ExistsByEmail(context.Background(), "jo@example.com")
		if err != nil || !exists {
			mt.Fatalf("expected exists, got %v %v", exists, err)
		}
	})

	mt.Run("command error is a storage error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 13, Name: "Unauthorized", Message: "not authorized"}))

		if _, err := customers(mt).ExistsByEmail(context.Background(), "jo@example.com"); !errors.Is(err, domain.ErrStorage) {
			mt.Fatalf("expected ErrStorage, got %v", err)
		}
	})
}
