package fixtures

// Config controls dataset generation.
type Config struct {
	// Dir receives the generated table files.
	Dir string

	// Seed makes generation reproducible.
	Seed uint64

	// Codes lists the occupation codes to emit. Empty means every code of the
	// built-in profession table plus a few codes no profession claims.
	Codes []string

	// RaggedEvery truncates every Nth data row. Zero disables it.
	RaggedEvery int

	// NonNumericEvery replaces the value of every Nth data row with "n/a".
	// Zero disables it.
	NonNumericEvery int
}

// Stats summarizes a generated dataset.
type Stats struct {
	Tables     int
	Rows       int
	LevelRows  int
	Ragged     int
	NonNumeric int
}
