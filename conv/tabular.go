package conv

import (
	"github.com/chronotool/chrono"
)

// tableTo builds the element-wise conversion for a tabular target. The
// policy is best effort per column: a column whose conversion fails is
// returned unmodified, the diagnostic callback (if any) observes the
// failure, and processing continues with the next column. The returned
// table therefore may mix converted and unconverted columns; row count and
// column set never change.
func tableTo(target chrono.Kind) convFunc {
	return func(c *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
		return c.mapColumns(v.(chrono.Table), func(col chrono.Column) (chrono.Column, error) {
			return c.convertColumn(col, target, opts)
		}, opts), nil
	}
}

// mapColumns applies fn to every column, skipping failed columns in place.
func (c *Converter) mapColumns(t chrono.Table, fn func(chrono.Column) (chrono.Column, error), opts *Options) chrono.Table {
	out := chrono.Table{Columns: make([]chrono.Column, len(t.Columns))}
	for i, col := range t.Columns {
		converted, err := fn(col)
		if err != nil {
			if opts.OnColumnError != nil {
				opts.OnColumnError(col.Name, err)
			}
			out.Columns[i] = col
			continue
		}
		out.Columns[i] = converted
	}
	return out
}

// convertColumn converts every cell of a column or fails the column as a
// whole; the skip policy applies per column group, never per scalar.
func (c *Converter) convertColumn(col chrono.Column, target chrono.Kind, opts *Options) (chrono.Column, error) {
	values := make([]chrono.Value, len(col.Values))
	for i, cell := range col.Values {
		converted, err := c.convertCell(cell, target, opts)
		if err != nil {
			return chrono.Column{}, err
		}
		values[i] = converted
	}
	return chrono.Column{Name: col.Name, Values: values}, nil
}

// ConvertColumn applies the scalar conversion element-wise over a single
// ordered sequence with the same best-effort policy Convert applies to
// tables: on failure the original column is returned untouched and the
// diagnostic callback observes the error.
func (c *Converter) ConvertColumn(col chrono.Column, target chrono.Kind, opts ...Option) chrono.Column {
	eff := c.options
	for _, opt := range opts {
		opt(&eff)
	}
	converted, err := c.convertColumn(col, target, &eff)
	if err != nil {
		if eff.OnColumnError != nil {
			eff.OnColumnError(col.Name, err)
		}
		return col
	}
	return converted
}
