// Package job loads the process sets fed to the scheduler.
package job

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	yaml "github.com/goccy/go-yaml"

	"github.com/MarshallK03/SRT-Scheduling-Algorithm/internal/sched"
)

var ErrBadRecord = errors.New("bad process record")

// Default returns the built-in workload: (pid, arrival, burst, priority).
func Default() []sched.Spec {
	return []sched.Spec{
		{PID: 1, Arrival: 0, Burst: 3, Priority: 1},
		{PID: 2, Arrival: 2, Burst: 6, Priority: 1},
		{PID: 3, Arrival: 4, Burst: 4, Priority: 1},
		{PID: 4, Arrival: 6, Burst: 5, Priority: 1},
		{PID: 5, Arrival: 8, Burst: 2, Priority: 1},
	}
}

// workloadFile is the YAML layout of a workload file.
type workloadFile struct {
	Processes []sched.Spec `yaml:"processes"`
}

// LoadFile reads a workload, picking the format from the extension:
// .csv is parsed as CSV, anything else as YAML.
func LoadFile(path string) ([]sched.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return ParseCSV(f)
	}
	return ParseYAML(f)
}

// ParseYAML decodes a `processes:` list. An empty document is an empty list.
func ParseYAML(r io.Reader) ([]sched.Spec, error) {
	var wf workloadFile
	if err := yaml.NewDecoder(r).Decode(&wf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decoding workload: %w", err)
	}
	return wf.Processes, nil
}

// ParseCSV reads rows of pid,arrival,burst[,priority]. A first row whose pid
// column is not a number is taken as a header and skipped.
func ParseCSV(r io.Reader) ([]sched.Spec, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	specs := make([]sched.Spec, 0, len(rows))
	for n, row := range rows {
		if n == 0 && len(row) > 0 {
			if _, err := strconv.Atoi(strings.TrimSpace(row[0])); err != nil {
				continue
			}
		}
		s, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n+1, err)
		}
		specs = append(specs, s)
	}
	return specs, nil
}

func parseRow(row []string) (sched.Spec, error) {
	if len(row) < 3 || len(row) > 4 {
		return sched.Spec{}, fmt.Errorf("%w: want 3 or 4 fields, got %d", ErrBadRecord, len(row))
	}

	nums := make([]int64, len(row))
	for i, field := range row {
		v, err := strconv.ParseInt(strings.TrimSpace(field), 10, 64)
		if err != nil {
			return sched.Spec{}, fmt.Errorf("%w: field %d: %v", ErrBadRecord, i+1, err)
		}
		nums[i] = v
	}

	s := sched.Spec{PID: int(nums[0]), Arrival: nums[1], Burst: nums[2]}
	if len(nums) == 4 {
		s.Priority = int(nums[3])
	}
	return s, nil
}

// Resolve picks the workload for a config: the workload file when set,
// then the inline processes, then the built-in default.
func Resolve(cfg sched.Config) ([]sched.Spec, error) {
	if cfg.Workload != "" {
		return LoadFile(cfg.Workload)
	}
	if len(cfg.Processes) > 0 {
		return cfg.Processes, nil
	}
	return Default(), nil
}
