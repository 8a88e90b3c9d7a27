package util

import (
	"strconv"
	"testing"
	"time"
)

func TestParseTimeRFC3339(t *testing.T) {
	s := "2025-03-10T10:10:10Z"
	got, ok := ParseTime(s)
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.UTC().Format(time.RFC3339) != s {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimePlainDate(t *testing.T) {
	got, ok := ParseTime("2025-03-10")
	if !ok {
		t.Fatalf("expected ok")
	}
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("unexpected time %v", got)
	}
}

func TestParseTimeUnix(t *testing.T) {
	ts := time.Date(2025, 3, 10, 10, 10, 10, 0, time.UTC).Unix()
	got, ok := ParseTime(strconv.FormatInt(ts, 10))
	if !ok {
		t.Fatalf("expected ok")
	}
	if got.Unix() != ts {
		t.Fatalf("unexpected unix %v", got.Unix())
	}
}

func TestParseTimeDefault(t *testing.T) {
	def := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	got := ParseTimeDefault("", def)
	if !got.Equal(def) {
		t.Fatalf("expected default")
	}
}

func TestAlignDateRange(t *testing.T) {
	from := time.Date(2025, 3, 10, 13, 45, 0, 0, time.UTC)
	to := time.Date(2025, 4, 10, 1, 5, 0, 0, time.UTC)
	af, at := AlignDateRange(from, to)
	if af.Hour() != 0 || at.Hour() != 0 {
		t.Fatalf("expected day boundaries, got %v %v", af, at)
	}
	if af.Day() != 10 || at.Day() != 10 {
		t.Fatalf("unexpected days %v %v", af, at)
	}
}
