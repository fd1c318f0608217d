package bop

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// FromJSONReader decodes a JSON array of objects into a bag.
func FromJSONReader(schema *Schema, r io.Reader) (*Bag, error) {
	var records []Record

	dec := json.NewDecoder(r)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding JSON: %w (input must be an array of objects)", err)
	}

	return FromRecords(schema, records)
}

// FromJSON loads a bag from a JSON file holding an array of objects.
func FromJSON(schema *Schema, path string) (*Bag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	b, err := FromJSONReader(schema, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return b, nil
}

// FromCSVReader decodes CSV with a header row into a bag. Cell text is
// parsed per column type; empty cells are null. Columns not in the schema
// are dropped.
func FromCSVReader(schema *Schema, r io.Reader) (*Bag, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return New(schema), nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	b := New(schema)

	for rowNum := 1; ; rowNum++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("reading CSV row %d: %w", rowNum, err)
		}

		rec := make(Record, len(header))

		for i, name := range header {
			col, ok := schema.Column(name)
			if !ok || i >= len(row) || row[i] == "" {
				continue
			}

			v, err := parseCell(col.Type(), row[i])
			if err != nil {
				return nil, fmt.Errorf("CSV row %d, column %q: %w", rowNum, name, err)
			}

			rec[name] = v
		}

		if err := b.Append(rec); err != nil {
			return nil, fmt.Errorf("CSV row %d: %w", rowNum, err)
		}
	}

	return b, nil
}

// FromCSV loads a bag from a CSV file with a header row.
func FromCSV(schema *Schema, path string) (*Bag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	b, err := FromCSVReader(schema, f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}

	return b, nil
}

// WriteCSV writes the bag as CSV with a header row in schema column order.
// Null cells are written as empty cells. CSV has no null marker, so an
// empty string value is indistinguishable from a null on a round trip:
// FromCSVReader reads both back as null.
func (b *Bag) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	header := make([]string, len(b.schema.cols))
	for i, col := range b.schema.cols {
		header[i] = col.name
	}

	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for i, row := range b.rows {
		out := make([]string, len(row))

		for j, v := range row {
			if v == nil {
				continue
			}

			out[j] = formatCell(v)
		}

		if err := cw.Write(out); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()

	return cw.Error()
}

func parseCell(t Type, s string) (any, error) {
	switch t {
	case TypeString:
		return s, nil
	case TypeInt:
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as int: %w", s, err)
		}

		return n, nil
	case TypeBool:
		v, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as bool: %w", s, err)
		}

		return v, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing %q as float: %w", s, err)
		}

		return f, nil
	default:
		return nil, fmt.Errorf("unknown column type %s", t)
	}
}

func formatCell(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}
