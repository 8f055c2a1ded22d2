// Package model contains domain models passed between layers.
package model

import (
	"strings"

	"github.com/okian/delfos/internal/domain/aptitude"
)

// SourceRecord is one row of one input table keyed by header column name.
type SourceRecord map[string]string

// Get returns the trimmed value of field, or "" when absent.
func (r SourceRecord) Get(field string) string {
	if field == "" {
		return ""
	}
	return strings.TrimSpace(r[field])
}

// Row is a SourceRecord in flight between the loader and the aggregation
// workers. TableIndex and Line position the row in the run's canonical order.
type Row struct {
	Table      string
	TableIndex int
	Line       int
	Record     SourceRecord
}

// Bucket is the running (sum, count) of normalized observation scores for
// one (profession, aptitude) pair.
type Bucket struct {
	Sum   float64 `json:"sum"`
	Count int     `json:"count"`
}

// Average returns Sum/Count, or 0 for an empty bucket.
func (b Bucket) Average() float64 {
	if b.Count == 0 {
		return 0
	}
	return b.Sum / float64(b.Count)
}

// ElementMatch records one classified observation that contributed to a
// profession, kept for audit.
type ElementMatch struct {
	File          string      `json:"file"`
	OccCode       string      `json:"occCode"`
	ElementName   string      `json:"elementName"`
	Aptitude      aptitude.ID `json:"aptitude"`
	ImportanceRaw float64     `json:"importance_raw"`
	BaseScore     float64     `json:"baseScore"`

	TableIndex int `json:"-"`
	Line       int `json:"-"`
}

// Before orders matches by table position then row position.
func (m ElementMatch) Before(o ElementMatch) bool {
	if m.TableIndex != o.TableIndex {
		return m.TableIndex < o.TableIndex
	}
	return m.Line < o.Line
}
