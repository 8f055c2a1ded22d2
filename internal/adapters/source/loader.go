// Package source reads the O*NET tab-separated tables into SourceRecords.
package source

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/delfos/internal/domain/model"
)

const bom = "\uFEFF"

var (
	// ErrSourceDir is returned when the configured directory cannot be used.
	ErrSourceDir = errors.New("source directory unavailable")
	// ErrDuplicateTable is returned when a table is configured more than once.
	ErrDuplicateTable = errors.New("table configured more than once")
)

// Table is one configured input file.
type Table struct {
	model.Schema
	Path  string
	Index int
}

// Open validates dir and resolves the named tables inside it. Files are not
// opened here; a table whose file is absent yields no rows.
func Open(dir string, names []string) ([]Table, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrSourceDir, dir)
	}

	tables := make([]Table, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for i, name := range names {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateTable, name)
		}
		seen[name] = struct{}{}
		schema, err := model.LookupSchema(name)
		if err != nil {
			return nil, err
		}
		tables = append(tables, Table{Schema: schema, Path: filepath.Join(dir, name), Index: i})
	}
	return tables, nil
}

// Exists reports whether the table file is present.
func (t Table) Exists() bool {
	_, err := os.Stat(t.Path)
	return err == nil
}

// Rows returns the table's records in file order. Each range over the
// sequence re-reads the file. A missing file is an empty sequence; any other
// I/O failure is yielded once as an error and ends the sequence.
func (t Table) Rows() iter.Seq2[model.Row, error] {
	return func(yield func(model.Row, error) bool) {
		f, err := os.Open(t.Path)
		if errors.Is(err, fs.ErrNotExist) {
			return
		}
		if err != nil {
			yield(model.Row{}, fmt.Errorf("open %s: %w", t.Name, err))
			return
		}
		defer f.Close()

		for rec, err := range Parse(f) {
			if err != nil {
				yield(model.Row{}, fmt.Errorf("read %s: %w", t.Name, err))
				return
			}
			row := model.Row{Table: t.Name, TableIndex: t.Index, Line: rec.Line, Record: rec.Record}
			if !yield(row, nil) {
				return
			}
		}
	}
}

// Line is a parsed record with its 1-based data line number (header excluded,
// blank lines skipped).
type Line struct {
	Line   int
	Record model.SourceRecord
}

// Parse reads tab-separated text with one header row. Rows shorter than the
// header are padded with empty values; extra trailing columns are ignored.
// Lines have no length limit and a leading byte order mark is dropped.
func Parse(r io.Reader) iter.Seq2[Line, error] {
	return func(yield func(Line, error) bool) {
		br := bufio.NewReader(r)

		var header []string
		n := 0
		for {
			text, err := br.ReadString('\n')
			if err != nil && !errors.Is(err, io.EOF) {
				yield(Line{}, err)
				return
			}
			eof := err != nil

			text = strings.ReplaceAll(strings.TrimSuffix(text, "\n"), "\r", "")
			if header == nil {
				text = strings.TrimPrefix(text, bom)
			}
			if strings.TrimSpace(text) != "" {
				cols := strings.Split(text, "\t")
				if header == nil {
					header = make([]string, len(cols))
					for i, h := range cols {
						header[i] = strings.TrimSpace(h)
					}
				} else {
					n++
					rec := make(model.SourceRecord, len(header))
					for i, h := range header {
						if i < len(cols) {
							rec[h] = cols[i]
						} else {
							rec[h] = ""
						}
					}
					if !yield(Line{Line: n, Record: rec}, nil) {
						return
					}
				}
			}
			if eof {
				return
			}
		}
	}
}
