// Package file implements the record store on flat JSON files, one array per
// entity type.
package file

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/stargazers/stargazing-api/internal/api/metrics"
)

const backend = "file"

// Collection is a JSON array persisted in a single file. Mutations run as a
// read-modify-write under mu and land on disk through a temp file renamed over
// the target, so readers never observe a partial file and concurrent writers
// in this process never lose each other's updates.
type Collection[T any] struct {
	name string
	path string
	mu   sync.Mutex
}

// OpenCollection returns the collection stored at path, creating an empty
// array file (and its directory) when missing.
func OpenCollection[T any](name, path string) (*Collection[T], error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("file store: create dir: %w", err)
	}
	c := &Collection[T]{name: name, path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := c.write(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("file store: stat %s: %w", path, err)
	}
	return c, nil
}

// Path returns the backing file.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load returns every item in the collection.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.read()
}

// Mutate runs fn against the current items and persists what it returns.
// An error from fn aborts the write and is returned unchanged.
func (c *Collection[T]) Mutate(ctx context.Context, fn func(items []T) ([]T, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.read()
	if err != nil {
		return err
	}
	out, err := fn(items)
	if err != nil {
		return err
	}
	return c.write(out)
}

func (c *Collection[T]) read() ([]T, error) {
	defer observe(c.name, "read", time.Now())

	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("file store: read %s: %w", c.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("file store: decode %s: %w", c.path, err)
	}
	return items, nil
}

func (c *Collection[T]) write(items []T) error {
	defer observe(c.name, "write", time.Now())

	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("file store: encode %s: %w", c.name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(c.path), "."+filepath.Base(c.path)+".*")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: write %s: %w", c.path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("file store: sync %s: %w", c.path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close %s: %w", c.path, err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		return fmt.Errorf("file store: replace %s: %w", c.path, err)
	}
	return nil
}

func observe(collection, op string, start time.Time) {
	metrics.StoreOperationDuration.
		WithLabelValues(backend, collection, op).
		Observe(time.Since(start).Seconds())
}
