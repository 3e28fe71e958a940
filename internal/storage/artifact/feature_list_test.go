package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/piinutbutter/dataScienceProjektGr3/internal/storage"
)

func TestFeatureListStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewFeatureListStore(dir)

	names := []string{"price_normalized", "return_1m", "price_z"}
	if err := store.Write(ctx, names); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FeatureListFile))
	if err != nil {
		t.Fatalf("Read artifact file: %v", err)
	}
	expected := "price_normalized\nreturn_1m\nprice_z\n"
	if string(data) != expected {
		t.Errorf("Expected file content %q, got %q", expected, string(data))
	}

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 3 || got[0] != "price_normalized" || got[2] != "price_z" {
		t.Errorf("Unexpected list: %v", got)
	}
}

func TestFeatureListStore_IdenticalRewriteIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewFeatureListStore(t.TempDir())

	if err := store.Write(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("First write: %v", err)
	}
	if err := store.Write(ctx, []string{"a", "b"}); err != nil {
		t.Errorf("Expected identical rewrite to succeed, got %v", err)
	}
}

func TestFeatureListStore_Mismatch(t *testing.T) {
	ctx := context.Background()
	store := NewFeatureListStore(t.TempDir())

	if err := store.Write(ctx, []string{"a", "b"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := store.Write(ctx, []string{"a", "c"}); !errors.Is(err, storage.ErrFeatureListMismatch) {
		t.Errorf("Expected ErrFeatureListMismatch, got %v", err)
	}
}

func TestFeatureListStore_ReadMissing(t *testing.T) {
	store := NewFeatureListStore(t.TempDir())
	if _, err := store.Read(context.Background()); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestFeatureListStore_EmptyList(t *testing.T) {
	store := NewFeatureListStore(t.TempDir())
	if err := store.Write(context.Background(), nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestFeatureListStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "processed")
	store := NewFeatureListStore(dir)

	if err := store.Write(context.Background(), []string{"a"}); err != nil {
		t.Fatalf("Write into missing directory: %v", err)
	}
}
