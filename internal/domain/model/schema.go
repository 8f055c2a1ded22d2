package model

import (
	"errors"
	"fmt"
)

// ErrUnknownTable is returned for a table file name without a known schema.
var ErrUnknownTable = errors.New("unknown source table")

// CodeField is the occupation code column shared by every known table.
const CodeField = "O*NET-SOC Code"

// ImportanceScale marks importance rows in tables that carry a scale marker.
const ImportanceScale = "IM"

// Schema describes how the aggregator reads one table. Field names are
// matched by header name, never by column position.
type Schema struct {
	Name         string
	ElementField string
	ValueField   string
	// ScaleField is empty for tables reporting a single scale.
	ScaleField string
	// Divisor maps the table's native range onto [0,1].
	Divisor float64
}

// HasScale reports whether rows must be filtered on the scale marker.
func (s Schema) HasScale() bool { return s.ScaleField != "" }

// Normalize divides a raw table value by the table divisor.
func (s Schema) Normalize(v float64) float64 { return v / s.Divisor }

var knownSchemas = []Schema{
	{Name: "Abilities.txt", ElementField: "Element Name", ValueField: "Data Value", ScaleField: "Scale ID", Divisor: 5},
	{Name: "Skills.txt", ElementField: "Element Name", ValueField: "Data Value", ScaleField: "Scale ID", Divisor: 5},
	{Name: "Knowledge.txt", ElementField: "Element Name", ValueField: "Data Value", Divisor: 7},
	{Name: "Interests.txt", ElementField: "RIASEC Interest Area", ValueField: "Data Value", Divisor: 7},
	{Name: "Work Values.txt", ElementField: "Work Value", ValueField: "Data Value", Divisor: 7},
}

// KnownSchemas returns the five supported table schemas in processing order.
func KnownSchemas() []Schema {
	out := make([]Schema, len(knownSchemas))
	copy(out, knownSchemas)
	return out
}

// KnownTables returns the file names of the supported tables.
func KnownTables() []string {
	names := make([]string, len(knownSchemas))
	for i, s := range knownSchemas {
		names[i] = s.Name
	}
	return names
}

// LookupSchema returns the schema for a table file name.
func LookupSchema(name string) (Schema, error) {
	for _, s := range knownSchemas {
		if s.Name == name {
			return s, nil
		}
	}
	return Schema{}, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}
