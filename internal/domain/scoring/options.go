package scoring

import "github.com/okian/delfos/internal/domain/model"

// Option applies a configuration option to the TableScorer.
type Option func(*TableScorer)

// WithSchema registers or replaces a table schema.
func WithSchema(schema model.Schema) Option {
	return func(s *TableScorer) {
		if schema.Name != "" && schema.Divisor > 0 {
			s.schemas[schema.Name] = schema
		}
	}
}
