// Package occupation normalizes O*NET-SOC codes and resolves them to the
// internal professions that claim them.
package occupation

import (
	"sort"
	"strings"

	"github.com/okian/delfos/internal/domain/profession"
)

// NormalizeCode drops the specialization suffix: "15-1252.00" -> "15-1252".
func NormalizeCode(raw string) string {
	code, _, _ := strings.Cut(strings.TrimSpace(raw), ".")
	return code
}

// Matcher resolves normalized codes to professions. One code may belong to
// several professions. Read-only after construction.
type Matcher struct {
	byCode map[string][]profession.ID
}

// NewMatcher indexes the profession table by normalized code.
func NewMatcher(table profession.Table) *Matcher {
	m := &Matcher{byCode: make(map[string][]profession.ID)}
	for _, e := range table {
		for _, c := range e.Codes {
			code := NormalizeCode(c)
			if code == "" || contains(m.byCode[code], e.ID) {
				continue
			}
			m.byCode[code] = append(m.byCode[code], e.ID)
		}
	}
	for code := range m.byCode {
		ids := m.byCode[code]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return m
}

// Resolve returns every profession claiming code, sorted by id. The result
// must not be modified.
func (m *Matcher) Resolve(code string) []profession.ID {
	return m.byCode[NormalizeCode(code)]
}

// Codes returns the number of distinct normalized codes indexed.
func (m *Matcher) Codes() int { return len(m.byCode) }

func contains(ids []profession.ID, id profession.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}
