package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type item struct {
	Name string `json:"name"`
}

func TestOpenCollection_CreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "items.json")

	c, err := OpenCollection[item]("items", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := os.ReadFile(c.Path())
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(data)) != "[]" {
		t.Fatalf("expected empty array, got %q", data)
	}
}

func TestCollection_MutatePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	c, _ := OpenCollection[item]("items", path)

	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return append(items, item{Name: "vega"}), nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	reopened, _ := OpenCollection[item]("items", path)
	items, err := reopened.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(items) != 1 || items[0].Name != "vega" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestCollection_MutateErrorLeavesFileUntouched(t *testing.T) {
	c, _ := OpenCollection[item]("items", filepath.Join(t.TempDir(), "items.json"))
	boom := errors.New("boom")

	err := c.Mutate(context.Background(), func(items []item) ([]item, error) {
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected fn error to propagate, got %v", err)
	}
	items, _ := c.Load(context.Background())
	if len(items) != 0 {
		t.Fatalf("expected no items, got %+v", items)
	}
}

func TestCollection_CorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := OpenCollection[item]("items", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := c.Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestCollection_CancelledContext(t *testing.T) {
	c, _ := OpenCollection[item]("items", filepath.Join(t.TempDir(), "items.json"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Load(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	err := c.Mutate(ctx, func(items []item) ([]item, error) { return items, nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
