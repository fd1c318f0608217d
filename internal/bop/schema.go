package bop

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Schema is an immutable, order-invariant set of columns. Schemas are
// interned: NewSchema returns the same *Schema for the same column set,
// regardless of the order the columns were given in. That makes pointer
// equality a cheap identity check and mirrors how callers pass schemas
// around as values describing dataset shapes.
type Schema struct {
	cols   []Column // sorted by name
	byName map[string]int
	key    string
}

var (
	internMu sync.Mutex
	interned = make(map[string]*Schema)
)

// NewSchema validates the given columns and returns the interned schema for
// that column set. Duplicate column names are rejected.
func NewSchema(cols ...Column) (*Schema, error) {
	sorted := make([]Column, len(cols))
	copy(sorted, cols)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].name < sorted[j].name })

	byName := make(map[string]int, len(sorted))

	var sb strings.Builder

	for i, col := range sorted {
		if err := col.validate(); err != nil {
			return nil, err
		}

		if _, dup := byName[col.name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.name)
		}

		byName[col.name] = i
		fmt.Fprintf(&sb, "%s:%s;", col.name, col.typ)
	}

	key := sb.String()

	internMu.Lock()
	defer internMu.Unlock()

	if s, ok := interned[key]; ok {
		return s, nil
	}

	s := &Schema{cols: sorted, byName: byName, key: key}
	interned[key] = s

	return s, nil
}

// MustSchema is like NewSchema but panics on invalid columns. Use for
// package-level schema definitions.
func MustSchema(cols ...Column) *Schema {
	s, err := NewSchema(cols...)
	if err != nil {
		panic(err)
	}

	return s
}

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.cols) }

// Columns returns the columns sorted by name.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.cols))
	copy(out, s.cols)

	return out
}

// Column looks up a column by name.
func (s *Schema) Column(name string) (Column, bool) {
	i, ok := s.byName[name]
	if !ok {
		return Column{}, false
	}

	return s.cols[i], true
}

// Implements reports whether other's columns are a subset of s's columns.
// A schema always implements itself and the empty schema. Column order
// never matters.
func (s *Schema) Implements(other *Schema) bool {
	if other == nil {
		return true
	}

	for _, col := range other.cols {
		i, ok := s.byName[col.name]
		if !ok || s.cols[i].typ != col.typ {
			return false
		}
	}

	return true
}

// String renders the schema as "name:type, ..." for error messages and logs.
func (s *Schema) String() string {
	parts := make([]string, len(s.cols))
	for i, col := range s.cols {
		parts[i] = fmt.Sprintf("%s:%s", col.name, col.typ)
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
