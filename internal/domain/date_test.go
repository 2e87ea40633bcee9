package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDatePlain(t *testing.T) {
	d, err := ParseDate("2025-01-01")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-01-01" {
		t.Fatalf("unexpected date: %s", d)
	}
}

func TestParseDateDropsTimeComponent(t *testing.T) {
	d, err := ParseDate("2025-06-15T18:30:00Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if d.String() != "2025-06-15" {
		t.Fatalf("expected time component dropped, got %s", d)
	}
	if !d.Time().Equal(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected UTC midnight, got %v", d.Time())
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "   ", "tomorrow", "2025-13-40"} {
		if _, err := ParseDate(input); err == nil {
			t.Fatalf("expected error for %q", input)
		}
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	original := NewDate(2025, time.January, 1)
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2025-01-01"` {
		t.Fatalf("unexpected wire form: %s", data)
	}
	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !decoded.Equal(original) {
		t.Fatalf("round trip mismatch: %s != %s", decoded, original)
	}
}
