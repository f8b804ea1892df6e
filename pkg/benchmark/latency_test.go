package benchmark

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"
)

func TestCalculateStats(t *testing.T) {
	var latencies []time.Duration
	for i := 100; i >= 1; i-- {
		latencies = append(latencies, time.Duration(i))
	}
	r := calculateStats(latencies, time.Second)

	if r.MinLatency != 1 || r.MaxLatency != 100 {
		t.Errorf("min/max = %v/%v, want 1ns/100ns", r.MinLatency, r.MaxLatency)
	}
	if r.MedianLatency != 51 {
		t.Errorf("median = %v, want 51ns", r.MedianLatency)
	}
	if r.P95Latency != 96 || r.P99Latency != 100 {
		t.Errorf("p95/p99 = %v/%v, want 96ns/100ns", r.P95Latency, r.P99Latency)
	}
	if r.AvgLatency != 50 {
		t.Errorf("avg = %v, want 50ns", r.AvgLatency)
	}
	if r.Samples != 100 {
		t.Errorf("samples = %d, want 100", r.Samples)
	}
}

func TestCalculateStatsEmpty(t *testing.T) {
	r := calculateStats(nil, time.Second)
	if r.Samples != 0 || r.TotalTime != time.Second {
		t.Errorf("unexpected result %+v", r)
	}
}

func TestBenchmarkLatency(t *testing.T) {
	for _, op := range []Operation{OperationSeal, OperationOpen, OperationSchedule} {
		opts := &BenchmarkOptions{Variant: "SPECK-64/96", Operation: op, Iterations: 10, BatchSize: 4}
		r, err := BenchmarkLatency(opts)
		if err != nil {
			t.Fatalf("%s: %v", op, err)
		}
		if r.Samples != 10 || r.BatchSize != 4 || r.BlockSize != 8 {
			t.Errorf("%s: unexpected shape %+v", op, r)
		}
		if r.Variant != "SPECK-64/96" || r.Operation != op {
			t.Errorf("%s: labels = %s/%s", op, r.Variant, r.Operation)
		}
	}
}

func TestBenchmarkLatencyErrors(t *testing.T) {
	cases := []*BenchmarkOptions{
		{Variant: "SPECK-32/64", Iterations: 1, BatchSize: 1},
		{Variant: "SPECK-64/96", Iterations: 0, BatchSize: 1},
		{Variant: "SPECK-64/96", Iterations: 1, BatchSize: 0},
		{Variant: "SPECK-64/96", Operation: Operation(42), Iterations: 1, BatchSize: 1},
	}
	for _, opts := range cases {
		if _, err := BenchmarkLatency(opts); err == nil {
			t.Errorf("expected error for %+v", opts)
		}
	}
}

func TestRunAllBenchmarks(t *testing.T) {
	opts := DefaultBenchmarkOptions()
	opts.Iterations = 2
	opts.BatchSize = 2
	results, err := RunAllBenchmarks(opts)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 5 {
		t.Fatalf("got %d results, want 5", len(results))
	}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, results); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 6 {
		t.Fatalf("got %d csv records, want 6", len(records))
	}
	if records[1][0] != "SPECK-64/96" || records[1][1] != "seal" {
		t.Errorf("first row = %v", records[1])
	}
}

func TestParseOperation(t *testing.T) {
	for _, op := range []Operation{OperationSeal, OperationOpen, OperationSchedule} {
		got, err := ParseOperation(op.String())
		if err != nil || got != op {
			t.Errorf("ParseOperation(%q) = %v, %v", op.String(), got, err)
		}
	}
	if _, err := ParseOperation("encrypt"); err == nil {
		t.Error("expected error for unknown operation")
	}
}
