// compare_layout_bench compares two `go test -bench` outputs of the layout
// engine benchmarks and fails when any expected benchmark regressed by more
// than the allowed percentage, in time or in allocations.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	benchmarkLinePattern = regexp.MustCompile(`^(Benchmark(?:Fit|Drag)/\S+)\s+\d+\s+(\d+(?:\.\d+)?)\s+ns/op(?:\s+\d+\s+B/op\s+(\d+)\s+allocs/op)?`)
	cpuSuffixPattern     = regexp.MustCompile(`-\d+$`)
	expectedBenchmarks   = []string{
		"BenchmarkFit/small/faithful",
		"BenchmarkFit/small/clamped",
		"BenchmarkFit/large/faithful",
		"BenchmarkFit/large/clamped",
		"BenchmarkDrag/small/cascade",
		"BenchmarkDrag/small/engine-move",
		"BenchmarkDrag/large/cascade",
		"BenchmarkDrag/large/engine-move",
	}
)

type benchmarkResult struct {
	nsPerOp     float64
	allocsPerOp int
}

type comparisonRow struct {
	name       string
	baseline   benchmarkResult
	current    benchmarkResult
	deltaPct   float64
	allocDelta int
	pass       bool
}

func main() {
	baselinePath := flag.String("baseline", "", "path to baseline benchmark output")
	currentPath := flag.String("current", "", "path to current benchmark output")
	maxRegressionPct := flag.Float64("max-regression-pct", 20, "maximum allowed ns/op regression percent before failing")
	allowAllocGrowth := flag.Bool("allow-alloc-growth", false, "do not fail when allocs/op increase")
	flag.Parse()

	if *baselinePath == "" || *currentPath == "" {
		fatalf("both -baseline and -current are required")
	}
	if *maxRegressionPct < 0 {
		fatalf("-max-regression-pct must be non-negative")
	}

	baseline, err := parseBenchmarkFile(*baselinePath)
	if err != nil {
		fatalf("parse baseline: %v", err)
	}
	current, err := parseBenchmarkFile(*currentPath)
	if err != nil {
		fatalf("parse current: %v", err)
	}

	rows, err := compareBenchmarks(baseline, current, *maxRegressionPct, *allowAllocGrowth)
	if err != nil {
		fatalf("compare benchmarks: %v", err)
	}

	writeMarkdownReport(os.Stdout, rows, *maxRegressionPct)
	if stepSummary := os.Getenv("GITHUB_STEP_SUMMARY"); stepSummary != "" {
		f, err := os.OpenFile(stepSummary, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0o644)
		if err != nil {
			fatalf("open step summary: %v", err)
		}
		defer f.Close()
		writeMarkdownReport(f, rows, *maxRegressionPct)
	}

	for _, row := range rows {
		if !row.pass {
			os.Exit(1)
		}
	}
}

func parseBenchmarkFile(path string) (map[string]benchmarkResult, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer file.Close()

	results, err := parseBenchmarkOutput(file)
	if err != nil {
		return nil, fmt.Errorf("scan %q: %w", path, err)
	}
	return results, nil
}

func parseBenchmarkOutput(r io.Reader) (map[string]benchmarkResult, error) {
	results := make(map[string]benchmarkResult, len(expectedBenchmarks))
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		matches := benchmarkLinePattern.FindStringSubmatch(line)
		if len(matches) != 4 {
			continue
		}

		name := cpuSuffixPattern.ReplaceAllString(matches[1], "")
		nsPerOp, err := strconv.ParseFloat(matches[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parse ns/op for %q: %w", name, err)
		}
		result := benchmarkResult{nsPerOp: nsPerOp, allocsPerOp: -1}
		if matches[3] != "" {
			allocs, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, fmt.Errorf("parse allocs/op for %q: %w", name, err)
			}
			result.allocsPerOp = allocs
		}
		results[name] = result
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, errors.New("no benchmark results found for expected suites")
	}
	return results, nil
}

func compareBenchmarks(baseline, current map[string]benchmarkResult, maxRegressionPct float64, allowAllocGrowth bool) ([]comparisonRow, error) {
	for _, name := range expectedBenchmarks {
		if _, ok := current[name]; !ok {
			return nil, fmt.Errorf("missing current benchmark %q", name)
		}
	}

	rows := make([]comparisonRow, 0, len(expectedBenchmarks))
	for _, name := range expectedBenchmarks {
		curr := current[name]
		base, ok := baseline[name]
		if !ok {
			// No baseline yet for a new benchmark; it passes against itself.
			base = curr
		}
		if base.nsPerOp <= 0 {
			return nil, fmt.Errorf("non-positive baseline ns/op for %q", name)
		}
		row := comparisonRow{
			name:     name,
			baseline: base,
			current:  curr,
			deltaPct: ((curr.nsPerOp - base.nsPerOp) / base.nsPerOp) * 100,
		}
		if base.allocsPerOp >= 0 && curr.allocsPerOp >= 0 {
			row.allocDelta = curr.allocsPerOp - base.allocsPerOp
		}
		row.pass = row.deltaPct <= maxRegressionPct && (allowAllocGrowth || row.allocDelta <= 0)
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].name < rows[j].name
	})
	return rows, nil
}

func writeMarkdownReport(out io.Writer, rows []comparisonRow, maxRegressionPct float64) {
	fmt.Fprintf(out, "## Layout Benchmark Comparison\n\n")
	fmt.Fprintf(out, "Allowed regression threshold: %.2f%%\n\n", maxRegressionPct)
	fmt.Fprintf(out, "| Benchmark | Baseline ns/op | Current ns/op | Delta | Allocs | Result |\n")
	fmt.Fprintf(out, "|---|---:|---:|---:|---:|---|\n")
	for _, row := range rows {
		result := "PASS"
		if !row.pass {
			result = "FAIL"
		}
		delta := 0.0
		if !math.IsNaN(row.deltaPct) && !math.IsInf(row.deltaPct, 0) {
			delta = row.deltaPct
		}
		allocs := "n/a"
		if row.current.allocsPerOp >= 0 {
			allocs = fmt.Sprintf("%d (%+d)", row.current.allocsPerOp, row.allocDelta)
		}
		fmt.Fprintf(out, "| %s | %.0f | %.0f | %+0.2f%% | %s | %s |\n",
			row.name, row.baseline.nsPerOp, row.current.nsPerOp, delta, allocs, result)
	}
	fmt.Fprintln(out)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}
