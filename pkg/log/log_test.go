package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNotInitialized(t *testing.T) {
	if _, err := GetLastNLogs(10); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
	if err := Init(""); err == nil {
		t.Fatal("Init with an empty name should fail")
	}
}

func TestSQLiteSink(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "logs", "speck.db")
	if err := Init(dbPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	if err := Init(dbPath); err == nil {
		t.Fatal("second Init should fail")
	}

	for i := 0; i < 5; i++ {
		Info().Int("n", i).Str("variant", "SPECK-64/128").Msg("sealed block")
	}

	entries, err := GetLastNLogs(3)
	if err != nil {
		t.Fatalf("GetLastNLogs failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	var first struct {
		N   int    `json:"n"`
		Msg string `json:"message"`
	}
	if err := json.Unmarshal([]byte(entries[0].LogData), &first); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if first.N != 2 || first.Msg != "sealed block" {
		t.Fatalf("unexpected oldest entry %+v", first)
	}

	since, err := GetLogsSince(time.Now().Add(-time.Hour), 0)
	if err != nil {
		t.Fatalf("GetLogsSince failed: %v", err)
	}
	if len(since) != 5 {
		t.Fatalf("expected 5 entries since an hour ago, got %d", len(since))
	}

	var buf bytes.Buffer
	if err := Export(&buf, since); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	data, err := ReadExport(&buf)
	if err != nil {
		t.Fatalf("ReadExport failed: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 5 {
		t.Fatalf("expected 5 exported lines, got %d", lines)
	}

	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if _, err := GetLastNLogs(1); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized after Close, got %v", err)
	}
}

func TestSetOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Printf("key check value %s", "abcd")
	if !strings.Contains(buf.String(), "key check value abcd") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestLogsBetweenSubSecond(t *testing.T) {
	if err := Init(filepath.Join(t.TempDir(), "speck.db")); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	defer Close()

	whole := time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC)
	half := whole.Add(500 * time.Millisecond)
	for _, ts := range []time.Time{half, whole} {
		row := fmt.Sprintf(`{"level":"info","time":%q,"message":"tick"}`, formatTime(ts))
		if _, err := sink.Write([]byte(row)); err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}

	entries, err := GetLogsBetween(whole, half, 0)
	if err != nil {
		t.Fatalf("GetLogsBetween failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries in [%v, %v], got %d", whole, half, len(entries))
	}
	if !strings.Contains(entries[0].LogData, formatTime(whole)) {
		t.Errorf("entries not in time order: %s", entries[0].LogData)
	}

	entries, err = GetLogsBetween(whole, whole, 0)
	if err != nil {
		t.Fatalf("GetLogsBetween failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the whole-second entry, got %d", len(entries))
	}
}

func TestFormatTimeSortsLikeTime(t *testing.T) {
	local := time.FixedZone("UTC+2", 2*3600)
	times := []time.Time{
		time.Date(2024, 5, 1, 12, 0, 5, 0, time.UTC),
		time.Date(2024, 5, 1, 12, 0, 5, 500_000_000, time.UTC),
		time.Date(2024, 5, 1, 14, 0, 6, 0, local),
	}
	for i := 1; i < len(times); i++ {
		if a, b := formatTime(times[i-1]), formatTime(times[i]); a >= b {
			t.Errorf("%s does not sort before %s", a, b)
		}
	}
}
