// Package bop implements typed property bags: tabular data whose shape is
// fixed by a schema of named, typed columns. Schemas are order-invariant and
// interned, and bags can be checked for structural compatibility and
// projected down to narrower schemas.
package bop

import "fmt"

// Type identifies the value type of a column.
type Type int

const (
	TypeString Type = iota
	TypeInt
	TypeBool
	TypeFloat
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt:
		return "int"
	case TypeBool:
		return "bool"
	case TypeFloat:
		return "float"
	default:
		return fmt.Sprintf("type(%d)", int(t))
	}
}

func (t Type) valid() bool {
	return t >= TypeString && t <= TypeFloat
}

// Column is a single named, typed column definition.
type Column struct {
	name string
	typ  Type
}

// NewColumn creates a column with an explicit type.
func NewColumn(name string, typ Type) Column {
	return Column{name: name, typ: typ}
}

// String creates a string-valued column.
func String(name string) Column { return Column{name: name, typ: TypeString} }

// Int creates an integer-valued column.
func Int(name string) Column { return Column{name: name, typ: TypeInt} }

// Bool creates a boolean-valued column.
func Bool(name string) Column { return Column{name: name, typ: TypeBool} }

// Float creates a float-valued column.
func Float(name string) Column { return Column{name: name, typ: TypeFloat} }

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the column value type.
func (c Column) Type() Type { return c.typ }

func (c Column) validate() error {
	if c.name == "" {
		return fmt.Errorf("column name must not be empty")
	}

	if !c.typ.valid() {
		return fmt.Errorf("column %q has unknown type %d", c.name, int(c.typ))
	}

	return nil
}
