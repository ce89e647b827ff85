package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	yaml "github.com/goccy/go-yaml"
)

const (
	LabelStart   = "start"   // label run segments with their actual start
	LabelArrival = "arrival" // label run segments with the arrival time
	PolicyAll    = "all"
)

// Config mirrors config.yml
type Config struct {
	Policy     string `yaml:"policy"`      // sjf, srt or all (by default)
	GanttLabel string `yaml:"gantt_label"` // start (by default) or arrival
	Workload   string `yaml:"workload"`    // YAML or CSV process file, overrides Processes
	Processes  []Spec `yaml:"processes"`
	EventLog   string `yaml:"event_log"` // CSV event log path, empty = off
	TraceDB    string `yaml:"trace_db"`  // SQLite trace path, empty = off
	Listen     string `yaml:"listen"`    // :9095 (by default)
	LogLevel   string `yaml:"log_level"` // info (by default)
	LogJSON    bool   `yaml:"log_json"`
}

// If the config file is not found, we use default values
func defaultConfig() Config {
	return Config{
		Policy:     PolicyAll,
		GanttLabel: LabelStart,
		Listen:     ":9095",
		LogLevel:   "info",
	}
}

// Load reads YAML and overrides defaults; empty path or missing file = defaults only
func Load(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.clamp()
	return cfg, nil
}

// ApplyEnv overrides fields from SRTSCHED_* environment variables.
func (c *Config) ApplyEnv() {
	vars := map[string]*string{
		"SRTSCHED_POLICY":      &c.Policy,
		"SRTSCHED_GANTT_LABEL": &c.GanttLabel,
		"SRTSCHED_WORKLOAD":    &c.Workload,
		"SRTSCHED_EVENT_LOG":   &c.EventLog,
		"SRTSCHED_TRACE_DB":    &c.TraceDB,
		"SRTSCHED_LISTEN":      &c.Listen,
		"SRTSCHED_LOG_LEVEL":   &c.LogLevel,
	}
	for name, field := range vars {
		if v, ok := os.LookupEnv(name); ok {
			*field = v
		}
	}
	if v, ok := os.LookupEnv("SRTSCHED_LOG_JSON"); ok {
		c.LogJSON = v == "1" || strings.EqualFold(v, "true")
	}
	c.clamp()
}

var ErrUnknownLabel = errors.New("unknown gantt label")

// Validate checks the fields that may be set after Load, e.g. from flags.
func (c *Config) Validate() error {
	if c.GanttLabel != LabelStart && c.GanttLabel != LabelArrival {
		return fmt.Errorf("%q (want %s or %s): %w", c.GanttLabel, LabelStart, LabelArrival, ErrUnknownLabel)
	}
	_, err := c.SelectedPolicies()
	return err
}

// SelectedPolicies resolves the Policy field to the policies to run.
func (c *Config) SelectedPolicies() ([]Policy, error) {
	if strings.EqualFold(c.Policy, PolicyAll) {
		return Policies(), nil
	}
	p, err := PolicyByName(c.Policy)
	if err != nil {
		return nil, err
	}
	return []Policy{p}, nil
}

// sanity clamps
func (c *Config) clamp() {
	if c.Policy == "" {
		c.Policy = PolicyAll
	}
	if c.GanttLabel != LabelArrival {
		c.GanttLabel = LabelStart
	}
	if c.Listen == "" {
		c.Listen = ":9095"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}
