package conv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotool/chrono"
)

func temporalColumn(name string, times ...time.Time) chrono.Column {
	values := make([]chrono.Value, len(times))
	for i, t := range times {
		values[i] = chrono.NewInstant(t)
	}
	return chrono.Column{Name: name, Values: values}
}

func TestConvertTablePoisonedColumnSkipped(t *testing.T) {
	converter := newTestConverter()
	epoch := time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)
	later := time.Date(1970, 1, 1, 0, 0, 2, 0, time.UTC)

	table := chrono.Table{Columns: []chrono.Column{
		temporalColumn("created", epoch, later),
		{Name: "label", Values: []chrono.Value{chrono.Raw{Data: "a"}, chrono.Raw{Data: "b"}}},
		temporalColumn("updated", later, epoch),
	}}

	var skipped []string
	out, err := converter.Convert(table, chrono.KindOffset,
		WithUnit(chrono.UnitSecond),
		WithColumnErrorHandler(func(column string, err error) {
			skipped = append(skipped, column)
			assert.Error(t, err)
		}))
	require.NoError(t, err)

	result := out.(chrono.Table)
	require.Len(t, result.Columns, 3)

	// Columns 1 and 3 converted.
	assert.Equal(t, 1.0, result.Columns[0].Values[0].(chrono.Offset).Value)
	assert.Equal(t, 2.0, result.Columns[0].Values[1].(chrono.Offset).Value)
	assert.Equal(t, 2.0, result.Columns[2].Values[0].(chrono.Offset).Value)

	// Column 2 untouched, not nulled.
	assert.Equal(t, table.Columns[1], result.Columns[1])

	// The diagnostic callback observed exactly the skipped column.
	assert.Equal(t, []string{"label"}, skipped)
}

func TestConvertTableColumnOrderPreserved(t *testing.T) {
	converter := newTestConverter()
	epoch := time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)

	table := chrono.Table{Columns: []chrono.Column{
		temporalColumn("a", epoch),
		temporalColumn("b", epoch),
		temporalColumn("c", epoch),
	}}

	out, err := converter.Convert(table, chrono.KindStamp)
	require.NoError(t, err)

	result := out.(chrono.Table)
	for i, name := range []string{"a", "b", "c"} {
		assert.Equal(t, name, result.Columns[i].Name)
		assert.Len(t, result.Columns[i].Values, 1)
	}
}

func TestConvertTableToText(t *testing.T) {
	converter := newTestConverter()

	table := chrono.Table{Columns: []chrono.Column{
		temporalColumn("when", time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC)),
	}}

	out, err := converter.Convert(table, chrono.KindText, WithLayout("2006-01-02"))
	require.NoError(t, err)

	text := out.(chrono.Table).Columns[0].Values[0].(chrono.Text)
	assert.Equal(t, "2024-03-05", text.Value)
}

func TestConvertTableMixedCells(t *testing.T) {
	// A column fails as a group: one bad cell leaves the whole column
	// untouched, including its good cells.
	converter := newTestConverter()
	epoch := time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)

	mixed := chrono.Column{Name: "mixed", Values: []chrono.Value{
		chrono.NewInstant(epoch),
		chrono.Raw{Data: 42},
	}}
	table := chrono.Table{Columns: []chrono.Column{mixed}}

	out, err := converter.Convert(table, chrono.KindOffset)
	require.NoError(t, err)
	assert.Equal(t, mixed, out.(chrono.Table).Columns[0])
}

func TestConvertTableIllegalTarget(t *testing.T) {
	converter := newTestConverter()
	table := chrono.Table{}

	_, err := converter.Convert(table, chrono.KindInstant)
	var optErr *chrono.UnsupportedOptionError
	assert.ErrorAs(t, err, &optErr)
}

func TestConvertColumnBestEffort(t *testing.T) {
	converter := newTestConverter()
	epoch := time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC)

	good := temporalColumn("good", epoch)
	converted := converter.ConvertColumn(good, chrono.KindOffset, WithUnit(chrono.UnitSecond))
	require.Len(t, converted.Values, 1)
	assert.Equal(t, 1.0, converted.Values[0].(chrono.Offset).Value)

	var failures int
	bad := chrono.Column{Name: "bad", Values: []chrono.Value{chrono.Raw{Data: "x"}}}
	untouched := converter.ConvertColumn(bad, chrono.KindOffset,
		WithColumnErrorHandler(func(string, error) { failures++ }))
	assert.Equal(t, bad, untouched)
	assert.Equal(t, 1, failures)
}

func TestConvertTableEmptyTable(t *testing.T) {
	converter := newTestConverter()

	out, err := converter.Convert(chrono.Table{}, chrono.KindText)
	require.NoError(t, err)
	assert.Empty(t, out.(chrono.Table).Columns)
}
