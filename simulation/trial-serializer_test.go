package simulation

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pierrec/lz4/v4"
)

func TestTrialSeriesRoundTrip(t *testing.T) {
	series := &TrialSeries{
		Policies: []string{"random", "memory", "model"},
		Rates: [][]float64{
			{0.37, 0.61, 0.58},
			{0.39, 0.64, 0.55},
			{0.36, 0.59, 0.62},
		},
	}

	path := filepath.Join(t.TempDir(), "trials.lz4")
	if err := SaveTrialSeries(path, series); err != nil {
		t.Fatalf("failed to save trial series: %v", err)
	}

	loaded, err := LoadTrialSeries(path)
	if err != nil {
		t.Fatalf("failed to load trial series: %v", err)
	}

	if len(loaded.Policies) != len(series.Policies) {
		t.Fatalf("policy count %d, want %d", len(loaded.Policies), len(series.Policies))
	}
	for i := range series.Policies {
		if loaded.Policies[i] != series.Policies[i] {
			t.Errorf("policy %d = %q, want %q", i, loaded.Policies[i], series.Policies[i])
		}
	}
	if len(loaded.Rates) != len(series.Rates) {
		t.Fatalf("trial count %d, want %d", len(loaded.Rates), len(series.Rates))
	}
	for tr := range series.Rates {
		for p := range series.Rates[tr] {
			if loaded.Rates[tr][p] != series.Rates[tr][p] {
				t.Errorf("rate (%d,%d) = %v, want %v",
					tr, p, loaded.Rates[tr][p], series.Rates[tr][p])
			}
		}
	}
}

func TestLoadTrialSeriesRejectsCorruptLengths(t *testing.T) {
	write := func(t *testing.T, name string, fields ...any) string {
		t.Helper()
		var raw bytes.Buffer
		for _, f := range fields {
			binary.Write(&raw, binary.LittleEndian, f)
		}
		path := filepath.Join(t.TempDir(), name)
		file, err := os.Create(path)
		if err != nil {
			t.Fatalf("failed to create corrupt fixture: %v", err)
		}
		defer file.Close()
		zw := lz4.NewWriter(file)
		if _, err := zw.Write(raw.Bytes()); err != nil {
			t.Fatalf("failed to compress corrupt fixture: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("failed to finish corrupt fixture: %v", err)
		}
		return path
	}

	// negative name length
	path := write(t, "negative.lz4", int32(1), int32(1), int32(-5))
	if _, err := LoadTrialSeries(path); err == nil {
		t.Errorf("negative policy name length must be rejected")
	}

	// name length far past the end of the payload
	path = write(t, "oversized.lz4", int32(1), int32(1), int32(1<<30))
	if _, err := LoadTrialSeries(path); err == nil {
		t.Errorf("oversized policy name length must be rejected")
	}

	// negative dimension header
	path = write(t, "dims.lz4", int32(-1), int32(2))
	if _, err := LoadTrialSeries(path); err == nil {
		t.Errorf("negative trial count must be rejected")
	}
}

func TestSaveTrialSeriesRejectsRaggedRows(t *testing.T) {
	series := &TrialSeries{
		Policies: []string{"random", "memory"},
		Rates:    [][]float64{{0.4}},
	}
	path := filepath.Join(t.TempDir(), "bad.lz4")
	if err := SaveTrialSeries(path, series); err == nil {
		t.Errorf("ragged rate row must be rejected")
	}
}
