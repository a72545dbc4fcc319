package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "finance-transactions"); err != nil || ok {
		t.Fatalf("Get(missing) = (ok=%v, err=%v), want absent", ok, err)
	}

	payload := []byte(`[{"id":"1"}]`)
	if err := s.Set(ctx, "finance-transactions", payload); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data, ok, err := s.Get(ctx, "finance-transactions")
	if err != nil || !ok {
		t.Fatalf("Get() = (ok=%v, err=%v)", ok, err)
	}
	if string(data) != string(payload) {
		t.Errorf("Get() = %q, want %q", data, payload)
	}
}

func TestSetLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(dir)
	if err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}

	if err := s.Set(context.Background(), "finance-budgets", []byte("[]")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}
	if len(entries) != 1 || entries[0].Name() != "finance-budgets.json" {
		t.Errorf("unexpected directory contents: %v", entries)
	}
}

func TestNewStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	if _, err := NewStore(dir); err != nil {
		t.Fatalf("NewStore() error = %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("data dir not created: %v", err)
	}
}
