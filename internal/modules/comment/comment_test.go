package comment

import (
	"testing"
	"time"
)

func TestNormalizeAuthor(t *testing.T) {
	if got := normalizeAuthor(""); got != unknownAuthor {
		t.Errorf("missing author must default to %q, got %q", unknownAuthor, got)
	}
	if got := normalizeAuthor("Alice"); got != "Alice" {
		t.Errorf("known author must pass through, got %q", got)
	}
}

func TestParseCreatedTimeGraphLayout(t *testing.T) {
	// The feed emits offsets without a colon.
	got := parseCreatedTime("2023-04-01T11:30:00+0000")
	want := time.Date(2023, time.April, 1, 11, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseCreatedTimeRFC3339(t *testing.T) {
	got := parseCreatedTime("2023-04-01T11:30:00+02:00")
	want := time.Date(2023, time.April, 1, 9, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseCreatedTimeFallback(t *testing.T) {
	before := time.Now()
	got := parseCreatedTime("yesterday-ish")
	after := time.Now()
	if got.Before(before) || got.After(after) {
		t.Errorf("unparsable timestamp must fall back to now, got %v", got)
	}
}
