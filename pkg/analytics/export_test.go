package analytics

import (
	"strings"
	"testing"
	"time"

	"gorm.io/datatypes"

	"wellnest_backend/internal/model"
)

func TestBuildCSV(t *testing.T) {
	recorded := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	events := []model.AnalyticsEvent{
		{
			ID:         7,
			Category:   CategoryWaitlist,
			Email:      "a@b.co",
			Payload:    datatypes.JSON(`{"position":12}`),
			RecordedAt: recorded,
		},
	}

	out := string(buildCSV(events))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "id,category,email,payload,recorded_at" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "a@b.co") || !strings.Contains(lines[1], "2026-08-29T10:30:00Z") {
		t.Fatalf("row = %q", lines[1])
	}
}

func TestBuildCSVEmpty(t *testing.T) {
	out := string(buildCSV(nil))
	if strings.TrimSpace(out) != "id,category,email,payload,recorded_at" {
		t.Fatalf("empty export should contain only the header, got %q", out)
	}
}
