package file

import (
	"context"
	"fmt"
	"os"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// Store bundles the customer and merchant collections under one directory.
type Store struct {
	dir       string
	Customers *Collection[*domain.Customer]
	Merchants *Collection[*domain.Merchant]
}

// Open prepares both collection files under dir.
func Open(dir string) (*Store, error) {
	customers, err := NewCollection[*domain.Customer](dir, domain.KindCustomer.Collection())
	if err != nil {
		return nil, err
	}
	merchants, err := NewCollection[*domain.Merchant](dir, domain.KindMerchant.Collection())
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, Customers: customers, Merchants: merchants}, nil
}

// Ping checks that the data directory is still present and writable.
func (s *Store) Ping(_ context.Context) error {
	f, err := os.CreateTemp(s.dir, ".ping-*")
	if err != nil {
		return fmt.Errorf("%w: data dir not writable: %v", domain.ErrStorage, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
