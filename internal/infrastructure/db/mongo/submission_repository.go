package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// SubmissionRepository implements ports.SubmissionRepository on one MongoDB
// collection. The unique index on email is the authoritative duplicate guard.
type SubmissionRepository[T domain.Submission] struct {
	col *mongo.Collection
}

func NewSubmissionRepository[T domain.Submission](db *mongo.Database, kind domain.Kind) *SubmissionRepository[T] {
	return &SubmissionRepository[T]{col: db.Collection(kind.Collection())}
}

// Append inserts a new submission document.
func (r *SubmissionRepository[T]) Append(ctx context.Context, rec T) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, rec); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("%w: insert %s: %v", domain.ErrStorage, r.col.Name(), err)
	}
	return nil
}

func (r *SubmissionRepository[T]) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"email": email}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%w: count %s: %v", domain.ErrStorage, r.col.Name(), err)
	}
	return n > 0, nil
}

// List returns every submission sorted by submitted_at descending.
func (r *SubmissionRepository[T]) List(ctx context.Context) ([]T, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: find %s: %v", domain.ErrStorage, r.col.Name(), err)
	}

	recs := make([]T, 0)
	if err := cur.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorage, r.col.Name(), err)
	}
	return recs, nil
}

func (r *SubmissionRepository[T]) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("%w: delete %s: %v", domain.ErrStorage, r.col.Name(), err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrSubmissionNotFound
	}
	return nil
}

// EnsureIndexes creates the unique email index and the listing index.
func (r *SubmissionRepository[T]) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
		{Keys: bson.D{{Key: "submitted_at", Value: -1}}},
	}

	if _, err := r.col.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("ensure %s indexes: %w", r.col.Name(), err)
	}
	return nil
}

// Store bundles the two submission collections of one database.
type Store struct {
	db        *mongo.Database
	Customers *SubmissionRepository[*domain.Customer]
	Merchants *SubmissionRepository[*domain.Merchant]
}

// NewStore wires both repositories and ensures their indexes exist.
func NewStore(ctx context.Context, db *mongo.Database) (*Store, error) {
	s := &Store{
		db:        db,
		Customers: NewSubmissionRepository[*domain.Customer](db, domain.KindCustomer),
		Merchants: NewSubmissionRepository[*domain.Merchant](db, domain.KindMerchant),
	}
	if err := s.Customers.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := s.Merchants.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	if err := s.Ping(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Ping runs the server ping command against the database.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err != nil {
		return fmt.Errorf("%w: mongo ping: %v", domain.ErrStorage, err)
	}
	return nil
}
