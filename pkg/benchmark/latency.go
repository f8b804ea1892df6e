package benchmark

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"speck-go/pkg/log"
	"speck-go/pkg/speck"
)

// LatencyResults holds the results of a latency benchmark
type LatencyResults struct {
	Variant       string
	Operation     Operation
	MinLatency    time.Duration
	MaxLatency    time.Duration
	AvgLatency    time.Duration
	MedianLatency time.Duration
	P95Latency    time.Duration
	P99Latency    time.Duration
	Samples       int
	BatchSize     int
	BlockSize     int
	TotalTime     time.Duration
}

// Throughput returns processed bytes per second over the whole run.
func (r *LatencyResults) Throughput() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	n := float64(r.Samples * r.BatchSize * r.BlockSize)
	return n / r.TotalTime.Seconds()
}

// Operation specifies which cipher operation to benchmark
type Operation int

const (
	OperationSeal     Operation = iota // SealInPlace on one block
	OperationOpen                      // OpenInPlace on one block
	OperationSchedule                  // key expansion
)

func (o Operation) String() string {
	switch o {
	case OperationSeal:
		return "seal"
	case OperationOpen:
		return "open"
	case OperationSchedule:
		return "schedule"
	default:
		return "unknown"
	}
}

// ParseOperation maps a name as printed by Operation.String back to its value.
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(s) {
	case "seal":
		return OperationSeal, nil
	case "open":
		return OperationOpen, nil
	case "schedule":
		return OperationSchedule, nil
	default:
		return 0, fmt.Errorf("unknown operation: %s", s)
	}
}

// BenchmarkOptions provides configuration for benchmarks
type BenchmarkOptions struct {
	Variant    string
	Operation  Operation
	Iterations int
	// BatchSize is the number of operations timed together per sample.
	BatchSize int
}

// DefaultBenchmarkOptions returns sensible defaults
func DefaultBenchmarkOptions() *BenchmarkOptions {
	return &BenchmarkOptions{
		Variant:    "SPECK-128/128",
		Operation:  OperationSeal,
		Iterations: 1000,
		BatchSize:  256,
	}
}

// BenchmarkLatency measures per-operation latency for one variant.
func BenchmarkLatency(opts *BenchmarkOptions) (*LatencyResults, error) {
	if opts.Iterations <= 0 || opts.BatchSize <= 0 {
		return nil, fmt.Errorf("iterations and batch size must be positive")
	}
	v, err := speck.LookupVariant(opts.Variant)
	if err != nil {
		return nil, err
	}

	key := make([]byte, v.KeySize())
	for i := range key {
		key[i] = byte(i)
	}
	c, err := speck.NewCipher(v.Name, key)
	if err != nil {
		return nil, err
	}

	var op func() error
	switch opts.Operation {
	case OperationSeal:
		buf := make([]byte, v.BlockSize())
		op = func() error { return c.SealInPlace(buf) }
	case OperationOpen:
		buf := make([]byte, v.BlockSize())
		op = func() error { return c.OpenInPlace(buf) }
	case OperationSchedule:
		op = func() error {
			_, err := speck.NewCipher(v.Name, key)
			return err
		}
	default:
		return nil, fmt.Errorf("unknown operation: %d", opts.Operation)
	}

	latencies := make([]time.Duration, 0, opts.Iterations)
	start := time.Now()
	for i := 0; i < opts.Iterations; i++ {
		t := time.Now()
		for j := 0; j < opts.BatchSize; j++ {
			if err := op(); err != nil {
				return nil, err
			}
		}
		latencies = append(latencies, time.Since(t)/time.Duration(opts.BatchSize))
	}
	total := time.Since(start)

	r := calculateStats(latencies, total)
	r.Variant = v.Name
	r.Operation = opts.Operation
	r.BatchSize = opts.BatchSize
	r.BlockSize = v.BlockSize()
	return r, nil
}

func calculateStats(latencies []time.Duration, totalTime time.Duration) *LatencyResults {
	if len(latencies) == 0 {
		return &LatencyResults{TotalTime: totalTime}
	}

	slices.Sort(latencies)

	var sum time.Duration
	for _, latency := range latencies {
		sum += latency
	}

	return &LatencyResults{
		MinLatency:    latencies[0],
		MaxLatency:    latencies[len(latencies)-1],
		AvgLatency:    sum / time.Duration(len(latencies)),
		MedianLatency: latencies[len(latencies)/2],
		P95Latency:    latencies[(len(latencies)*95)/100],
		P99Latency:    latencies[(len(latencies)*99)/100],
		Samples:       len(latencies),
		TotalTime:     totalTime,
	}
}

// RunAllBenchmarks runs the given operation against every variant.
func RunAllBenchmarks(baseOpts *BenchmarkOptions) ([]*LatencyResults, error) {
	var results []*LatencyResults
	for _, v := range speck.Variants() {
		opts := *baseOpts
		opts.Variant = v.Name

		log.Debug().Str("variant", v.Name).Stringer("op", opts.Operation).Msg("running benchmark")
		result, err := BenchmarkLatency(&opts)
		if err != nil {
			return results, fmt.Errorf("benchmarking %s: %w", v.Name, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// PrintResults prints the results of a latency benchmark
func PrintResults(w io.Writer, results *LatencyResults) {
	fmt.Fprintf(w, "=== Latency Benchmark: %s %s ===\n", results.Variant, results.Operation)
	fmt.Fprintf(w, "Samples: %d x %d ops\n", results.Samples, results.BatchSize)
	fmt.Fprintf(w, "Total Time: %v\n", results.TotalTime)
	fmt.Fprintf(w, "Min Latency: %v\n", results.MinLatency)
	fmt.Fprintf(w, "Avg Latency: %v\n", results.AvgLatency)
	fmt.Fprintf(w, "Median Latency: %v\n", results.MedianLatency)
	fmt.Fprintf(w, "95th Percentile: %v\n", results.P95Latency)
	fmt.Fprintf(w, "99th Percentile: %v\n", results.P99Latency)
	fmt.Fprintf(w, "Max Latency: %v\n", results.MaxLatency)
	if results.Operation != OperationSchedule {
		fmt.Fprintf(w, "Throughput: %.2f MB/s\n", results.Throughput()/1e6)
	}
	fmt.Fprintln(w, "==========================================")
}

var csvHeader = []string{
	"Variant", "Operation", "Samples", "BatchSize",
	"MinLatency", "AvgLatency", "MedianLatency", "P95Latency", "P99Latency", "MaxLatency", "TotalTime",
}

// WriteCSV writes benchmark results as CSV with latencies in nanoseconds.
func WriteCSV(w io.Writer, results []*LatencyResults) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	ns := func(d time.Duration) string { return strconv.FormatInt(d.Nanoseconds(), 10) }
	for _, r := range results {
		err := cw.Write([]string{
			r.Variant,
			r.Operation.String(),
			strconv.Itoa(r.Samples),
			strconv.Itoa(r.BatchSize),
			ns(r.MinLatency),
			ns(r.AvgLatency),
			ns(r.MedianLatency),
			ns(r.P95Latency),
			ns(r.P99Latency),
			ns(r.MaxLatency),
			ns(r.TotalTime),
		})
		if err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveResultsToFile saves benchmark results to a CSV file
func SaveResultsToFile(results []*LatencyResults, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
