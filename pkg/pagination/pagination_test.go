package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeLimit(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default limit, got %d", got)
	}
	if got := NormalizeLimit(-5); got != DefaultLimit {
		t.Fatalf("expected default limit for negative input, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("expected cap at max limit, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected 10 passthrough, got %d", got)
	}
}

func TestCursorRoundTrip(t *testing.T) {
	want := Cursor{
		CreatedAt: time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
		ID:        uuid.New(),
	}
	got, err := ParseCursor(EncodeCursor(want))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if got == nil {
		t.Fatalf("expected cursor, got nil")
	}
	if !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Fatalf("cursor mismatch: got %+v want %+v", got, want)
	}
}

func TestParseCursorEmpty(t *testing.T) {
	got, err := ParseCursor("  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil cursor for blank input")
	}
}

func TestParseCursorInvalid(t *testing.T) {
	if _, err := ParseCursor("not-base64!!"); err == nil {
		t.Fatalf("expected decode error")
	}
}

type row struct {
	id      uuid.UUID
	created time.Time
}

func TestTrimPage(t *testing.T) {
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	rows := make([]row, 4)
	for i := range rows {
		rows[i] = row{id: uuid.New(), created: base.Add(time.Duration(i) * time.Minute)}
	}

	page := TrimPage(rows, 3, func(r row) Cursor {
		return Cursor{CreatedAt: r.created, ID: r.id}
	})
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	if page.NextCursor == "" {
		t.Fatalf("expected next cursor when buffer row present")
	}
	cur, err := ParseCursor(page.NextCursor)
	if err != nil {
		t.Fatalf("parsing next cursor: %v", err)
	}
	if cur.ID != rows[2].id {
		t.Fatalf("next cursor should point at last kept row")
	}

	full := TrimPage(rows[:2], 3, func(r row) Cursor {
		return Cursor{CreatedAt: r.created, ID: r.id}
	})
	if full.NextCursor != "" {
		t.Fatalf("no next cursor expected on final page")
	}
	if len(full.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(full.Items))
	}
}
