package main

import (
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/photoconv/pkg/types"
)

func TestHistoryTable(t *testing.T) {
	records := []types.RunRecord{
		{
			ID:          2,
			StartedAt:   time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
			Format:      "HEIC",
			InputRoot:   "/photos/in",
			OutputRoot:  "/photos/out",
			Concurrency: 16,
			Successful:  12,
			Failed:      1,
			Elapsed:     2500 * time.Millisecond,
		},
		{
			ID:         1,
			StartedAt:  time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC),
			Format:     "CR2",
			InputRoot:  "/raw/in",
			OutputRoot: "/raw/out",
			Successful: 7,
			Failed:     0,
			Elapsed:    800 * time.Millisecond,
		},
	}

	out := historyTable(records)

	for _, want := range []string{
		"ID", "Started", "Format", "Input", "Output", "OK", "Failed", "Elapsed",
		"HEIC", "CR2", "/photos/in", "/raw/out", "12", "2.5s", "0.8s",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	if strings.Index(out, "HEIC") > strings.Index(out, "CR2") {
		t.Error("rows should keep the given order (newest first)")
	}
}

func TestHistoryTable_Empty(t *testing.T) {
	out := historyTable(nil)
	if !strings.Contains(out, "Format") {
		t.Errorf("empty table should still render headers:\n%s", out)
	}
}
