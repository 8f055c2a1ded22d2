// Package scoring turns a raw table row into a normalized observation for
// the professions that claim its occupation code.
package scoring

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/okian/delfos/internal/domain/aptitude"
	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/internal/domain/profession"
)

// SkipReason explains why a row did not contribute. Skips are expected
// steady-state outcomes, not errors.
type SkipReason string

// Skip reasons, also used as metric labels.
const (
	SkipNone          SkipReason = ""
	SkipNoCode        SkipReason = "no_code"
	SkipScaleLevel    SkipReason = "scale_level"
	SkipNoElement     SkipReason = "no_element"
	SkipUnclassified  SkipReason = "unclassified"
	SkipNonNumeric    SkipReason = "non_numeric"
	SkipUnmatchedCode SkipReason = "unmatched_code"
)

// Classifier maps element names to aptitudes.
type Classifier interface {
	Classify(elementName string) (aptitude.ID, bool)
}

// Resolver maps occupation codes to professions.
type Resolver interface {
	Resolve(code string) []profession.ID
}

// Result is the outcome of scoring one row.
type Result struct {
	Skip        SkipReason
	Professions []profession.ID
	Match       model.ElementMatch
}

// Contributes reports whether the result must be aggregated.
func (r Result) Contributes() bool { return r.Skip == SkipNone }

// Scorer computes the normalized observation for a row.
type Scorer interface {
	Score(ctx context.Context, row model.Row) (Result, error)
}

// TableScorer implements Scorer with per-table schemas.
type TableScorer struct {
	classifier Classifier
	resolver   Resolver
	schemas    map[string]model.Schema
}

// NewTableScorer creates a scorer over the known table schemas.
func NewTableScorer(classifier Classifier, resolver Resolver, opts ...Option) *TableScorer {
	s := &TableScorer{
		classifier: classifier,
		resolver:   resolver,
		schemas:    make(map[string]model.Schema),
	}
	for _, schema := range model.KnownSchemas() {
		s.schemas[schema.Name] = schema
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Score extracts, filters, classifies, normalizes and resolves one row.
// An error is returned only for rows from a table without a schema.
func (s *TableScorer) Score(_ context.Context, row model.Row) (Result, error) {
	schema, ok := s.schemas[row.Table]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", model.ErrUnknownTable, row.Table)
	}
	rec := row.Record

	occCode := rec.Get(model.CodeField)
	if occCode == "" {
		return Result{Skip: SkipNoCode}, nil
	}
	if schema.HasScale() && rec.Get(schema.ScaleField) != model.ImportanceScale {
		return Result{Skip: SkipScaleLevel}, nil
	}
	name := rec.Get(schema.ElementField)
	if name == "" {
		return Result{Skip: SkipNoElement}, nil
	}
	apt, ok := s.classifier.Classify(name)
	if !ok {
		return Result{Skip: SkipUnclassified}, nil
	}
	raw, ok := ParseValue(rec.Get(schema.ValueField))
	if !ok {
		return Result{Skip: SkipNonNumeric}, nil
	}
	profs := s.resolver.Resolve(occCode)
	if len(profs) == 0 {
		return Result{Skip: SkipUnmatchedCode}, nil
	}

	return Result{
		Professions: profs,
		Match: model.ElementMatch{
			File:          row.Table,
			OccCode:       occCode,
			ElementName:   name,
			Aptitude:      apt,
			ImportanceRaw: raw,
			BaseScore:     schema.Normalize(raw),
			TableIndex:    row.TableIndex,
			Line:          row.Line,
		},
	}, nil
}

// ParseValue parses a table value. Empty, non-numeric, NaN and infinite
// values are unusable observations.
func ParseValue(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
