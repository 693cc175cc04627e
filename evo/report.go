package evo

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
)

// GenerationStats summarizes one evaluation round.
type GenerationStats struct {
	Generation     int           `csv:"generation"`
	PopulationSize int           `csv:"population"`
	MeanFitness    float64       `csv:"mean_fitness"`
	BestFitness    float64       `csv:"best_fitness"`
	WorstFitness   float64       `csv:"worst_fitness"`
	StdevFitness   float64       `csv:"stdev_fitness"`
	BestSoFar      float64       `csv:"best_so_far"`
	Converged      bool          `csv:"converged"`
	Duration       time.Duration `csv:"-"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.PopulationSize),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("worst_fitness", s.WorstFitness),
		slog.Float64("stdev_fitness", s.StdevFitness),
		slog.Float64("best_so_far", s.BestSoFar),
		slog.Bool("converged", s.Converged),
		slog.Duration("duration", s.Duration),
	)
}

// Reporter appends one CSV row per generation. Only statistics are written,
// never network weights. A nil Reporter discards everything.
type Reporter struct {
	file          *os.File
	headerWritten bool
}

// NewReporter creates the CSV file at path. Returns nil if path is empty.
func NewReporter(path string) (*Reporter, error) {
	if path == "" {
		return nil, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating report directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return &Reporter{file: f}, nil
}

// Write appends stats to the report.
func (r *Reporter) Write(stats GenerationStats) error {
	if r == nil {
		return nil
	}

	records := []GenerationStats{stats}
	if !r.headerWritten {
		if err := gocsv.Marshal(records, r.file); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, r.file); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// Path returns the report file path.
func (r *Reporter) Path() string {
	if r == nil {
		return ""
	}
	return r.file.Name()
}

// Close closes the report file.
func (r *Reporter) Close() error {
	if r == nil {
		return nil
	}
	return r.file.Close()
}
