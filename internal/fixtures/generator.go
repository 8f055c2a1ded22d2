// Package fixtures writes synthetic O*NET datasets for smoke runs and checks
// derived artifacts for internal consistency.
package fixtures

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
	"github.com/okian/delfos/pkg/logger"
)

// ErrGenerate wraps dataset generation failures.
var ErrGenerate = errors.New("generate fixtures")

// Generate writes the five source tables into cfg.Dir. Tables are written
// concurrently; each draws from its own seeded source so output depends only
// on cfg.
func Generate(ctx context.Context, cfg *Config) (*Stats, error) {
	if cfg == nil || cfg.Dir == "" {
		return nil, fmt.Errorf("%w: output directory required", ErrGenerate)
	}
	if err := os.MkdirAll(cfg.Dir, dirPermission); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerate, err)
	}

	codes := cfg.Codes
	if len(codes) == 0 {
		codes = defaultCodes()
	}

	var (
		rows, level, ragged, nonNumeric atomic.Int64
	)

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range tableSpecs {
		g.Go(func() error {
			st, err := writeTable(gctx, cfg, spec, codes, uint64(i))
			if err != nil {
				return err
			}
			rows.Add(int64(st.Rows))
			level.Add(int64(st.LevelRows))
			ragged.Add(int64(st.Ragged))
			nonNumeric.Add(int64(st.NonNumeric))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &Stats{
		Tables:     len(tableSpecs),
		Rows:       int(rows.Load()),
		LevelRows:  int(level.Load()),
		Ragged:     int(ragged.Load()),
		NonNumeric: int(nonNumeric.Load()),
	}
	logger.Get().Info(ctx, "generated fixture dataset",
		logger.String("dir", cfg.Dir),
		logger.Int("tables", stats.Tables),
		logger.Int("rows", stats.Rows),
		logger.Int("levelRows", stats.LevelRows),
		logger.Int("ragged", stats.Ragged),
		logger.Int("nonNumeric", stats.NonNumeric),
	)
	return stats, nil
}

// defaultCodes returns every code of the built-in profession table in
// O*NET-SOC form, plus codes no profession claims.
func defaultCodes() []string {
	var codes []string
	for _, e := range profession.Default() {
		for _, c := range e.Codes {
			codes = append(codes, c+".00")
		}
	}
	return append(codes, unclaimedCodes...)
}

func writeTable(ctx context.Context, cfg *Config, spec tableSpec, codes []string, stream uint64) (Stats, error) {
	var st Stats

	path := filepath.Join(cfg.Dir, spec.name)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, filePermission)
	if err != nil {
		return st, fmt.Errorf("%w: %w", ErrGenerate, err)
	}
	defer f.Close()

	rng := rand.New(rand.NewPCG(cfg.Seed, stream)) //nolint:gosec // fixture data, not security sensitive
	w := bufio.NewWriter(f)

	if _, err := w.WriteString(strings.Join(spec.header, "\t") + "\n"); err != nil {
		return st, fmt.Errorf("%w: %s: %w", ErrGenerate, spec.name, err)
	}

	n := 0
	emit := func(cells map[string]string) error {
		n++
		row := make([]string, len(spec.header))
		for i, col := range spec.header {
			row[i] = cells[col]
		}
		switch {
		case cfg.RaggedEvery > 0 && n%cfg.RaggedEvery == 0:
			row = row[:4]
			st.Ragged++
		case cfg.NonNumericEvery > 0 && n%cfg.NonNumericEvery == 0:
			row[indexOf(spec.header, "Data Value")] = "n/a"
			st.NonNumeric++
		}
		st.Rows++
		_, err := w.WriteString(strings.Join(row, "\t") + "\n")
		return err
	}

	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return st, err
		}
		for j, element := range spec.elements {
			cells := map[string]string{
				model.CodeField:        code,
				"Title":                "Occupation " + code,
				"Element ID":           "1.A." + strconv.Itoa(int(stream)+1) + "." + strconv.Itoa(j+1),
				"Element Name":         element,
				"RIASEC Interest Area": element,
				"Work Value":           element,
				"Scale ID":             model.ImportanceScale,
				"Data Value":           value(rng, spec.valueMin, spec.valueMax),
				"N":                    "8",
				"Date":                 "08/2025",
				"Domain Source":        "Analyst",
			}
			if err := emit(cells); err != nil {
				return st, fmt.Errorf("%w: %s: %w", ErrGenerate, spec.name, err)
			}
			if spec.leveled {
				cells["Scale ID"] = "LV"
				cells["Data Value"] = value(rng, 0, levelMax)
				if err := emit(cells); err != nil {
					return st, fmt.Errorf("%w: %s: %w", ErrGenerate, spec.name, err)
				}
				st.LevelRows++
			}
		}
	}

	if err := w.Flush(); err != nil {
		return st, fmt.Errorf("%w: %s: %w", ErrGenerate, spec.name, err)
	}
	return st, nil
}

func value(rng *rand.Rand, lo, hi float64) string {
	return strconv.FormatFloat(lo+rng.Float64()*(hi-lo), 'f', 2, 64)
}

func indexOf(cols []string, name string) int {
	for i, c := range cols {
		if c == name {
			return i
		}
	}
	return len(cols) - 1
}
