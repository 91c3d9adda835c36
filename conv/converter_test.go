package conv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronotool/chrono"
	"github.com/chronotool/chrono/parse"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 5, 16, 45, 0, 0, time.UTC)
}

func newTestConverter() *Converter {
	opts := DefaultOptions()
	opts.Now = fixedNow
	return New(opts)
}

func TestConvertEpochSecondToOffset(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(1970, 1, 1, 0, 0, 1, 0, time.UTC))

	out, err := converter.Convert(instant, chrono.KindOffset, WithUnit(chrono.UnitSecond))
	require.NoError(t, err)

	offset := out.(chrono.Offset)
	assert.Equal(t, 1.0, offset.Value)
	assert.Equal(t, chrono.UnitSecond, offset.Unit)
	assert.Equal(t, chrono.OriginUnix, offset.Origin)
}

func TestConvertInstantToOffsetUnits(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC))

	testCases := []struct {
		unit     chrono.Unit
		expected float64
	}{
		{chrono.UnitDay, 1},
		{chrono.UnitSecond, 86400},
		{chrono.UnitMillisecond, 86400000},
	}
	for _, tc := range testCases {
		t.Run(string(tc.unit), func(t *testing.T) {
			out, err := converter.Convert(instant, chrono.KindOffset, WithUnit(tc.unit))
			require.NoError(t, err)
			assert.InDelta(t, tc.expected, out.(chrono.Offset).Value, 1e-6)
		})
	}
}

func TestConvertSelfConversionRejected(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := converter.Convert(instant, chrono.KindInstant)
	var optErr *chrono.UnsupportedOptionError
	assert.ErrorAs(t, err, &optErr)
}

func TestConvertZonedInstantStripped(t *testing.T) {
	converter := newTestConverter()
	loc := time.FixedZone("CET", 3600)
	zoned := chrono.NewZonedInstant(time.Date(1970, 1, 1, 1, 0, 1, 0, loc))

	out, err := converter.Convert(zoned, chrono.KindOffset, WithUnit(chrono.UnitSecond))
	require.NoError(t, err)

	// Wall clock 01:00:01 rebound to UTC, not shifted back to 00:00:01.
	assert.Equal(t, 3601.0, out.(chrono.Offset).Value)
}

func TestConvertInstantToClockTime(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 10, 30, 45, 120000000, time.UTC))

	out, err := converter.Convert(instant, chrono.KindClockTime)
	require.NoError(t, err)

	ct := out.(chrono.ClockTime)
	assert.Equal(t, chrono.ClockTime{Hour: 10, Minute: 30, Second: 45, Nanos: 120000000}, ct)
}

func TestConvertInstantToBroken(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 10, 30, 45, 0, time.UTC))

	out, err := converter.Convert(instant, chrono.KindBroken)
	require.NoError(t, err)

	broken := out.(chrono.Broken)
	assert.Equal(t, 65, broken.YearDay)
	assert.Equal(t, 2, broken.Weekday)
}

func TestConvertInstantToText(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 10, 30, 45, 0, time.UTC))

	out, err := converter.Convert(instant, chrono.KindText, WithLayout("2006-01-02 15:04:05"))
	require.NoError(t, err)

	text := out.(chrono.Text)
	assert.Equal(t, "2024-03-05 10:30:45", text.Value)
	assert.Equal(t, "2006-01-02 15:04:05", text.Layout)
}

// An instant rendered to text at second resolution parses back to the same
// instant.
func TestInstantTextRoundTrip(t *testing.T) {
	converter := newTestConverter()
	reg := chrono.DefaultRegistry()
	layout := "2006-01-02 15:04:05"
	original := chrono.NewInstant(time.Date(2024, 3, 5, 10, 30, 45, 0, time.UTC))

	out, err := converter.Convert(original, chrono.KindText, WithLayout(layout))
	require.NoError(t, err)

	back, err := parse.ParseText(reg, out.(chrono.Text).Value, layout, chrono.BackendClock, "")
	require.NoError(t, err)
	assert.Equal(t, original, back)
}

func TestConvertClockTimeToInstantUsesProvidedDate(t *testing.T) {
	converter := newTestConverter()
	ct := chrono.ClockTime{Hour: 10, Minute: 30}

	out, err := converter.Convert(ct, chrono.KindInstant)
	require.NoError(t, err)

	instant := out.(chrono.Instant)
	assert.Equal(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC), instant.Time)
}

func TestConvertClockTimeToOffsetIsElapsed(t *testing.T) {
	converter := newTestConverter()
	ct := chrono.ClockTime{Hour: 1, Minute: 0, Second: 1}

	out, err := converter.Convert(ct, chrono.KindOffset, WithUnit(chrono.UnitSecond))
	require.NoError(t, err)

	offset := out.(chrono.Offset)
	assert.Equal(t, 3601.0, offset.Value)
	assert.Equal(t, chrono.OriginArbitrary, offset.Origin)
}

func TestConvertStampToInstant(t *testing.T) {
	converter := newTestConverter()
	stamp := chrono.Stamp{Nanos: 1500000000}

	out, err := converter.Convert(stamp, chrono.KindInstant)
	require.NoError(t, err)
	assert.Equal(t, time.Date(1970, 1, 1, 0, 0, 1, 500000000, time.UTC), out.(chrono.Instant).Time)
}

func TestConvertVectorStampToStamp(t *testing.T) {
	converter := newTestConverter()
	vector := chrono.VectorStamp{Ticks: 1, Unit: chrono.UnitDay}

	out, err := converter.Convert(vector, chrono.KindStamp)
	require.NoError(t, err)
	assert.Equal(t, int64(86400000000000), out.(chrono.Stamp).Nanos)
}

func TestConvertInstantToVectorStamp(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	out, err := converter.Convert(instant, chrono.KindVectorStamp, WithUnit(chrono.UnitDay))
	require.NoError(t, err)

	stamp := out.(chrono.VectorStamp)
	assert.Equal(t, int64(19787), stamp.Ticks)
	assert.Equal(t, chrono.UnitDay, stamp.Unit)
}

// Sub-unit instants round to the nearest tick, the same as the textual
// vector parser, on both sides of the epoch.
func TestConvertInstantToVectorStampRounds(t *testing.T) {
	converter := newTestConverter()

	testCases := []struct {
		name    string
		instant chrono.Instant
		ticks   int64
	}{
		{"rounds up", chrono.NewInstant(time.Date(1970, 1, 1, 0, 0, 1, 600000000, time.UTC)), 2},
		{"rounds down", chrono.NewInstant(time.Date(1970, 1, 1, 0, 0, 1, 400000000, time.UTC)), 1},
		{"pre-epoch", chrono.NewInstant(time.Date(1969, 12, 31, 23, 59, 58, 400000000, time.UTC)), -2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := converter.Convert(tc.instant, chrono.KindVectorStamp, WithUnit(chrono.UnitSecond))
			require.NoError(t, err)
			assert.Equal(t, tc.ticks, out.(chrono.VectorStamp).Ticks)
		})
	}
}

// Offsets survive a round trip through the columnar backend and back out of
// the converter. Parsing quantizes to whole nanoseconds, so half a
// nanosecond in the unit's own terms bounds the reconstruction error.
func TestOffsetRoundTrip(t *testing.T) {
	converter := newTestConverter()
	reg := chrono.DefaultRegistry()

	for _, unit := range []chrono.Unit{chrono.UnitSecond, chrono.UnitMillisecond, chrono.UnitMicrosecond, chrono.UnitNanosecond} {
		factor, err := chrono.Factor(unit)
		require.NoError(t, err)
		tolerance := 0.5e-9/factor + 1e-6

		for _, offset := range []float64{0, 1, 1.5, 1000, 123456.789} {
			v, err := parse.ParseOffset(reg, offset, chrono.BackendColumnar, unit)
			require.NoError(t, err)

			out, err := converter.Convert(v, chrono.KindOffset, WithUnit(unit))
			require.NoError(t, err)

			back := out.(chrono.Offset)
			assert.Equal(t, unit, back.Unit)
			assert.InDelta(t, offset, back.Value, tolerance, "unit %s offset %v", unit, offset)
		}
	}
}

func TestConvertBrokenToStamp(t *testing.T) {
	converter := newTestConverter()
	broken := chrono.Broken{Year: 1970, Month: 1, Day: 1, Second: 1}

	out, err := converter.Convert(broken, chrono.KindStamp)
	require.NoError(t, err)
	assert.Equal(t, int64(1e9), out.(chrono.Stamp).Nanos)
}

func TestConvertBrokenToTextRejected(t *testing.T) {
	converter := newTestConverter()
	broken := chrono.Broken{Year: 1970, Month: 1, Day: 1}

	_, err := converter.Convert(broken, chrono.KindText)
	var optErr *chrono.UnsupportedOptionError
	assert.ErrorAs(t, err, &optErr)
}

func TestConvertFloatClassNarrowing(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 10, 30, 45, 123456789, time.UTC))

	wide, err := converter.Convert(instant, chrono.KindOffset, WithUnit(chrono.UnitSecond))
	require.NoError(t, err)
	narrow, err := converter.Convert(instant, chrono.KindOffset, WithUnit(chrono.UnitSecond), WithFloatClass("f"))
	require.NoError(t, err)

	wideValue := wide.(chrono.Offset).Value
	narrowValue := narrow.(chrono.Offset).Value
	assert.Equal(t, float64(float32(wideValue)), narrowValue)
	assert.NotEqual(t, wideValue, narrowValue)
}

func TestConvertRejectsUnknownClasses(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := converter.Convert(instant, chrono.KindOffset, WithFloatClass("float128"))
	var optErr *chrono.UnsupportedOptionError
	require.ErrorAs(t, err, &optErr)

	_, err = converter.Convert(instant, chrono.KindOffset, WithIntClass("uint64"))
	require.ErrorAs(t, err, &optErr)
}

func TestConvertRejectsUnknownUnit(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := converter.Convert(instant, chrono.KindOffset, WithUnit("fortnight"))
	var optErr *chrono.UnsupportedOptionError
	assert.ErrorAs(t, err, &optErr)
}

func TestConvertNilValue(t *testing.T) {
	converter := newTestConverter()
	_, err := converter.Convert(nil, chrono.KindOffset)
	assert.Error(t, err)
}

func TestConvertMissingTarget(t *testing.T) {
	converter := newTestConverter()
	instant := chrono.NewInstant(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))

	_, err := converter.Convert(instant, "")
	assert.Error(t, err)
}

// The dispatch table and the registry's legality matrix must agree exactly:
// every registered pair has a conversion function and every conversion
// function is registered.
func TestConversionTableMatchesRegistry(t *testing.T) {
	reg := chrono.DefaultRegistry()
	table := conversionTable()

	kinds := []chrono.Kind{
		chrono.KindInstant, chrono.KindOffset, chrono.KindText,
		chrono.KindClockTime, chrono.KindBroken, chrono.KindStamp,
		chrono.KindVectorStamp, chrono.KindTable, chrono.KindRaw,
	}
	for _, source := range kinds {
		legal := reg.Targets(source)
		assert.Len(t, table[source], len(legal), "source %s", source)
		for _, target := range legal {
			assert.NotNil(t, table[source][target], "%s -> %s", source, target)
		}
	}
}
