// Package profession holds the internal profession identifiers and their
// static association with O*NET-SOC occupational codes.
package profession

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors for profession tables.
var (
	ErrUnknownProfession = errors.New("unknown profession")
	ErrEmptyCodes        = errors.New("profession has no occupational codes")
)

// ID identifies one internal profession.
type ID string

// Entry associates a profession with the raw occupational codes it claims.
type Entry struct {
	ID    ID
	Codes []string
}

// Table is the profession configuration, ordered by ID.
type Table []Entry

var defaults = map[ID][]string{
	"administracao":       {"11-3013", "11-1021"},
	"biologia":            {"19-1029", "19-1021"},
	"ciencia_computacao":  {"15-1299", "15-1252"},
	"economia":            {"19-3011", "19-3010"},
	"design_grafico":      {"27-1024"},
	"design_interiores":   {"27-1025"},
	"direito":             {"23-1011", "23-1012"},
	"educacao_fisica":     {"27-2022", "27-2023"},
	"engenharia_mecanica": {"17-2141"},
	"engenharia_civil":    {"17-2051"},
	"engenharia_software": {"15-1252"},
	"filosofia":           {"25-1126"},
	"geografia":           {"25-1064"},
	"historia":            {"25-1125"},
	"letras":              {"25-1081"},
	"medicina":            {"29-1210", "29-1229"},
	"musica":              {"27-2042"},
	"pedagogia":           {"25-2021"},
	"psicologia":          {"19-3033"},
	"rel_internacionais":  {"19-3099", "11-1031"},
}

// Default returns the built-in profession table.
func Default() Table {
	t, _ := build(defaults)
	return t
}

// FromMap builds a table from configuration. Every profession must claim at
// least one code.
func FromMap(m map[string][]string) (Table, error) {
	typed := make(map[ID][]string, len(m))
	for k, codes := range m {
		id := ID(strings.TrimSpace(k))
		if id == "" {
			return nil, fmt.Errorf("%w: empty id", ErrUnknownProfession)
		}
		typed[id] = codes
	}
	return build(typed)
}

func build(m map[ID][]string) (Table, error) {
	t := make(Table, 0, len(m))
	for id, codes := range m {
		clean := make([]string, 0, len(codes))
		for _, c := range codes {
			if c = strings.TrimSpace(c); c != "" {
				clean = append(clean, c)
			}
		}
		if len(clean) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyCodes, id)
		}
		t = append(t, Entry{ID: id, Codes: clean})
	}
	sort.Slice(t, func(i, j int) bool { return t[i].ID < t[j].ID })
	return t, nil
}

// IDs returns the profession identifiers in table order.
func (t Table) IDs() []ID {
	ids := make([]ID, len(t))
	for i, e := range t {
		ids[i] = e.ID
	}
	return ids
}

// Codes returns the codes claimed by id.
func (t Table) Codes(id ID) ([]string, error) {
	for _, e := range t {
		if e.ID == id {
			return e.Codes, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProfession, id)
}
