package journal

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestRotatingJSONLStore_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/journal.jsonl"
	store, err := NewRotatingJSONLStore(path, 1, 3, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	// ~10KB per record, so 150 records cross the 1MB threshold.
	summary := strings.Repeat("x", 10*1024)
	for i := 0; i < 150; i++ {
		rec := Record{ID: fmt.Sprint(i), Timestamp: time.Now(), Summary: summary}
		if err := store.Append(context.Background(), rec); err != nil {
			t.Fatalf("append: %v", err)
		}
	}
	files, _ := filepath.Glob(dir + "/journal*")
	if len(files) < 2 {
		t.Fatalf("expected rotated files, got %v", files)
	}
	out, err := store.Query(context.Background(), Query{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(out) != 150 {
		t.Fatalf("expected 150 records, got %d", len(out))
	}
	if out[0].ID != "0" || out[149].ID != "149" {
		t.Fatalf("records out of order: first=%s last=%s", out[0].ID, out[149].ID)
	}
}

func TestRotatingJSONLStore_Query(t *testing.T) {
	dir := t.TempDir()
	store, err := NewRotatingJSONLStore(dir+"/nested/journal.jsonl", 1, 2, 1)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	defer func() { _ = store.Close() }()
	exerciseStore(t, store)
}
