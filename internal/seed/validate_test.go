package seed

import (
	"strings"
	"testing"
	"time"

	domain "github.com/preston-bernstein/ops-console-service/internal/domain/carousel"
)

func TestDefaultSeedIsValid(t *testing.T) {
	report := Validate(Default(), time.Time{}, nil)
	if !report.OK() {
		t.Fatalf("expected default seed to be valid, got %+v", report.Errors)
	}
	if len(report.Warnings) != 0 {
		t.Fatalf("expected no warnings without a clock, got %+v", report.Warnings)
	}
}

func TestValidateFlagsExpiredEntries(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	report := Validate(Default(), now, nil)
	if !report.OK() {
		t.Fatalf("expiry must not block loading")
	}
	if len(report.Warnings) != len(Default()) {
		t.Fatalf("expected every entry flagged as expired, got %d", len(report.Warnings))
	}
	if !strings.Contains(report.Warnings[0].String(), "expired at 30-07-2025") {
		t.Fatalf("unexpected warning %q", report.Warnings[0])
	}
}

func TestValidateErrors(t *testing.T) {
	entries := []domain.Entry{
		{ID: "a", Position: 1, Visible: true},
		{ID: "a", Position: 2, Visible: true},
		{ID: "", Position: 3, Visible: true},
	}
	report := Validate(entries, time.Time{}, nil)
	if report.OK() || len(report.Errors) != 2 {
		t.Fatalf("expected duplicate and missing id errors, got %+v", report.Errors)
	}
	if err := report.Err(); err == nil || !strings.Contains(err.Error(), "and 1 more") {
		t.Fatalf("unexpected error summary %v", err)
	}
}

func TestValidateCapacity(t *testing.T) {
	entries := make([]domain.Entry, domain.MaxPositions+1)
	for i := range entries {
		entries[i] = domain.Entry{ID: string(rune('a' + i)), Position: i + 1, Visible: true}
	}
	report := Validate(entries, time.Time{}, nil)
	if report.OK() || !strings.Contains(report.Err().Error(), "exceed") {
		t.Fatalf("expected capacity error, got %+v", report.Errors)
	}
}

func TestValidateWarnings(t *testing.T) {
	entries := []domain.Entry{
		{ID: "a", Position: 4, Visible: false},
		{ID: "b", Position: 9, Visible: true, ExpiryDateTime: "tomorrow"},
	}
	report := Validate(entries, time.Time{}, nil)
	if !report.OK() {
		t.Fatalf("expected warnings only, got %+v", report.Errors)
	}
	var gaps, hidden, expiry bool
	for _, w := range report.Warnings {
		switch {
		case strings.Contains(w.Message, "dense"):
			gaps = true
		case strings.Contains(w.Message, "hidden entry") && w.EntryID == "a":
			hidden = true
		case strings.Contains(w.Message, "invalid expiry") && w.EntryID == "b":
			expiry = true
		}
	}
	if !gaps || !hidden || !expiry {
		t.Fatalf("missing warnings in %+v", report.Warnings)
	}
}

func TestValidateRejectsReservedID(t *testing.T) {
	entries := make([]domain.Entry, 8)
	for i := range entries {
		entries[i] = domain.Entry{ID: string(rune('a' + i)), Position: i + 1, Visible: true}
	}
	entries[7].ID = domain.BackupSectionID

	report := Validate(entries, time.Time{}, nil)
	if report.OK() || report.Err() == nil {
		t.Fatalf("expected reserved id to block the seed")
	}
	if len(report.Errors) != 1 || report.Errors[0].EntryID != domain.BackupSectionID {
		t.Fatalf("unexpected errors %+v", report.Errors)
	}
}
