package database

import (
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultPathOverride(t *testing.T) {
	t.Cleanup(ResetPath)

	path := filepath.Join(t.TempDir(), "zoe.db")
	SetPath(path)

	got, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if got != path {
		t.Fatalf("DefaultPath = %q, want %q", got, path)
	}
}

func TestOpenCreatesDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "zoe.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
}

func TestFormatTime_SortsLexically(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 5, 0, time.UTC)
	whole := FormatTime(base)
	fraction := FormatTime(base.Add(500 * time.Millisecond))

	if !(whole < fraction) {
		t.Fatalf("expected %q < %q", whole, fraction)
	}
}

func TestParseTime_RoundTrip(t *testing.T) {
	want := time.Date(2026, 3, 1, 12, 0, 5, 123456789, time.UTC)

	got, err := ParseTime(FormatTime(want))
	if err != nil {
		t.Fatalf("ParseTime error: %v", err)
	}
	if !got.Equal(want) {
		t.Fatalf("ParseTime = %v, want %v", got, want)
	}
}
