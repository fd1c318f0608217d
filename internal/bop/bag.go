package bop

import (
	"fmt"
	"math"
	"strings"
	"text/tabwriter"
)

// Record is one row of input data keyed by column name. Keys that are not
// part of the target schema are dropped on ingest; missing keys become null.
type Record map[string]any

// Bag holds rows conforming to a schema. Cell values are stored in schema
// column order; a nil cell is null. A bag always matches its schema exactly.
type Bag struct {
	schema *Schema
	rows   [][]any
}

// New returns an empty bag with the given schema.
func New(schema *Schema) *Bag {
	return &Bag{schema: schema}
}

// FromRecords builds a bag from records. Only schema-defined fields are
// kept, missing fields are null, and every kept value is checked against
// its column type.
func FromRecords(schema *Schema, records []Record) (*Bag, error) {
	b := New(schema)

	for i, rec := range records {
		if err := b.Append(rec); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
	}

	return b, nil
}

// Append adds a single record to the bag.
func (b *Bag) Append(rec Record) error {
	row := make([]any, len(b.schema.cols))

	for i, col := range b.schema.cols {
		v, ok := rec[col.name]
		if !ok || v == nil {
			continue
		}

		norm, err := normalize(col.typ, v)
		if err != nil {
			return fmt.Errorf("column %q: %w", col.name, err)
		}

		row[i] = norm
	}

	b.rows = append(b.rows, row)

	return nil
}

// Schema returns the bag's schema.
func (b *Bag) Schema() *Schema { return b.schema }

// Len returns the number of rows.
func (b *Bag) Len() int { return len(b.rows) }

// Record returns row i as a Record. Null cells are omitted.
func (b *Bag) Record(i int) Record {
	rec := make(Record, len(b.schema.cols))

	for j, col := range b.schema.cols {
		if v := b.rows[i][j]; v != nil {
			rec[col.name] = v
		}
	}

	return rec
}

// Records returns all rows.
func (b *Bag) Records() []Record {
	out := make([]Record, b.Len())
	for i := range b.rows {
		out[i] = b.Record(i)
	}

	return out
}

// String renders the bag as a plain aligned table. Null cells show as
// empty; intended for debugging and logs.
func (b *Bag) String() string {
	var sb strings.Builder

	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)

	names := make([]string, len(b.schema.cols))
	for i, col := range b.schema.cols {
		names[i] = col.name
	}

	_, _ = fmt.Fprintln(tw, strings.Join(names, "\t"))

	for _, row := range b.rows {
		cells := make([]string, len(row))

		for i, v := range row {
			if v != nil {
				cells[i] = fmt.Sprint(v)
			}
		}

		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}

	_ = tw.Flush()

	return sb.String()
}

// IsNull reports whether the cell at row i, column name is null.
func (b *Bag) IsNull(i int, name string) (bool, error) {
	j, ok := b.schema.byName[name]
	if !ok {
		return false, fmt.Errorf("no column %q in schema %s", name, b.schema)
	}

	return b.rows[i][j] == nil, nil
}

// Project returns a new bag narrowed to the target schema's columns. The
// receiver is never mutated. It is an error to project to a schema the
// bag's schema does not implement.
func (b *Bag) Project(target *Schema) (*Bag, error) {
	if !b.schema.Implements(target) {
		return nil, fmt.Errorf("schema %s does not implement %s", b.schema, target)
	}

	out := New(target)
	out.rows = make([][]any, len(b.rows))

	for i, row := range b.rows {
		narrowed := make([]any, len(target.cols))
		for j, col := range target.cols {
			narrowed[j] = row[b.schema.byName[col.name]]
		}

		out.rows[i] = narrowed
	}

	return out, nil
}

// Strings returns the values of a string column. Null cells yield "".
func (b *Bag) Strings(name string) ([]string, error) {
	j, err := b.columnIndex(name, TypeString)
	if err != nil {
		return nil, err
	}

	out := make([]string, len(b.rows))

	for i, row := range b.rows {
		if row[j] != nil {
			out[i] = row[j].(string)
		}
	}

	return out, nil
}

// Ints returns the values of an int column. Null cells yield 0.
func (b *Bag) Ints(name string) ([]int64, error) {
	j, err := b.columnIndex(name, TypeInt)
	if err != nil {
		return nil, err
	}

	out := make([]int64, len(b.rows))

	for i, row := range b.rows {
		if row[j] != nil {
			out[i] = row[j].(int64)
		}
	}

	return out, nil
}

// Bools returns the values of a bool column. Null cells yield false.
func (b *Bag) Bools(name string) ([]bool, error) {
	j, err := b.columnIndex(name, TypeBool)
	if err != nil {
		return nil, err
	}

	out := make([]bool, len(b.rows))

	for i, row := range b.rows {
		if row[j] != nil {
			out[i] = row[j].(bool)
		}
	}

	return out, nil
}

// Floats returns the values of a float column. Null cells yield 0.
func (b *Bag) Floats(name string) ([]float64, error) {
	j, err := b.columnIndex(name, TypeFloat)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(b.rows))

	for i, row := range b.rows {
		if row[j] != nil {
			out[i] = row[j].(float64)
		}
	}

	return out, nil
}

func (b *Bag) columnIndex(name string, want Type) (int, error) {
	j, ok := b.schema.byName[name]
	if !ok {
		return 0, fmt.Errorf("no column %q in schema %s", name, b.schema)
	}

	if got := b.schema.cols[j].typ; got != want {
		return 0, fmt.Errorf("column %q is %s, not %s", name, got, want)
	}

	return j, nil
}

// normalize coerces an input value to a column type's canonical Go
// representation: string, int64, bool or float64. JSON decoding yields
// float64 for every number, so integral floats are accepted for int columns.
func normalize(t Type, v any) (any, error) {
	switch t {
	case TypeString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case TypeInt:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case float64:
			if n == math.Trunc(n) {
				return int64(n), nil
			}

			return nil, fmt.Errorf("value %v is not an integer", n)
		}
	case TypeBool:
		if bv, ok := v.(bool); ok {
			return bv, nil
		}
	case TypeFloat:
		switch n := v.(type) {
		case float64:
			return n, nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	}

	return nil, fmt.Errorf("value %v (%T) does not match column type %s", v, v, t)
}
