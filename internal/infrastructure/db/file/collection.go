// Package file stores each submission collection as a JSON array on disk.
//
// Every mutation rewrites the whole file through a temp file and rename, and
// holds the collection mutex for the full read-modify-write so concurrent
// appends cannot lose each other's records.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/stylematch/waitlist/internal/core/domain"
)

// Collection is a file-backed ports.SubmissionRepository.
type Collection[T domain.Submission] struct {
	mu   sync.Mutex
	path string
}

// NewCollection opens (creating if needed) dir/<name>.json.
func NewCollection[T domain.Submission](dir, name string) (*Collection[T], error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	c := &Collection[T]{path: filepath.Join(dir, name+".json")}

	if _, err := os.Stat(c.path); errors.Is(err, os.ErrNotExist) {
		if err := c.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat %s: %w", c.path, err)
	}
	return c, nil
}

// Path returns the file backing the collection.
func (c *Collection[T]) Path() string { return c.path }

// Append adds rec unless its email is already present.
func (c *Collection[T]) Append(_ context.Context, rec T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.read()
	if err != nil {
		return err
	}
	for _, r := range recs {
		if r.ContactEmail() == rec.ContactEmail() {
			return domain.ErrDuplicateEmail
		}
	}
	return c.write(append(recs, rec))
}

func (c *Collection[T]) ExistsByEmail(_ context.Context, email string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.read()
	if err != nil {
		return false, err
	}
	return slices.ContainsFunc(recs, func(r T) bool { return r.ContactEmail() == email }), nil
}

// List returns the records newest first. Records sharing a timestamp keep
// reverse insertion order.
func (c *Collection[T]) List(_ context.Context) ([]T, error) {
	c.mu.Lock()
	recs, err := c.read()
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	slices.Reverse(recs)
	slices.SortStableFunc(recs, func(a, b T) int {
		return b.Received().Compare(a.Received())
	})
	return recs, nil
}

func (c *Collection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	recs, err := c.read()
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(recs, func(r T) bool { return r.SubmissionID() == id })
	if idx < 0 {
		return domain.ErrSubmissionNotFound
	}
	return c.write(slices.Delete(recs, idx, idx+1))
}

func (c *Collection[T]) read() ([]T, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, c.path, err)
	}
	var recs []T
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", domain.ErrStorage, c.path, err)
	}
	return recs, nil
}

// write replaces the collection file atomically.
func (c *Collection[T]) write(recs []T) error {
	if recs == nil {
		recs = []T{}
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, c.path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write temp: %v", domain.ErrStorage, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync temp: %v", domain.ErrStorage, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close temp: %v", domain.ErrStorage, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("%w: rename %s: %v", domain.ErrStorage, c.path, err)
	}
	return nil
}
