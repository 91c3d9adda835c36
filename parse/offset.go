package parse

import (
	"math"
	"sort"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/chronotool/chrono"
)

// offsetParser parses one backend's numeric epoch offset.
type offsetParser struct {
	needsUnit bool
	parse     func(offset float64, unit chrono.Unit) (chrono.Value, error)
}

var offsetParsers = map[string]offsetParser{
	chrono.BackendClock: {parse: func(offset float64, _ chrono.Unit) (chrono.Value, error) {
		return chrono.NewInstant(unixTime(offset)), nil
	}},
	chrono.BackendHuman: {parse: func(offset float64, _ chrono.Unit) (chrono.Value, error) {
		return chrono.NewZonedInstant(unixTime(offset)), nil
	}},
	chrono.BackendCTime: {parse: func(offset float64, _ chrono.Unit) (chrono.Value, error) {
		return chrono.BrokenOf(unixTime(offset)), nil
	}},
	chrono.BackendColumnar: {needsUnit: true, parse: func(offset float64, unit chrono.Unit) (chrono.Value, error) {
		factor, err := chrono.Factor(unit)
		if err != nil {
			return nil, err
		}
		return chrono.Stamp{Nanos: int64(math.Round(offset * factor * 1e9))}, nil
	}},
	chrono.BackendVector: {needsUnit: true, parse: func(offset float64, unit chrono.Unit) (chrono.Value, error) {
		return chrono.VectorStamp{Ticks: int64(math.Round(offset)), Unit: unit}, nil
	}},
}

// ParseOffset converts a signed numeric offset since the Unix epoch into the
// backend's structured value. Unit applies only to the backends with an
// inherent unit notion and denotes what the offset is expressed in.
func ParseOffset(reg *chrono.Registry, offset float64, backend string, unit chrono.Unit) (chrono.Value, error) {
	p, ok := offsetParsers[backend]
	if !ok {
		return nil, &chrono.UnsupportedOptionError{
			Explanation: "offset parsing backend",
			Option:      backend,
			Allowed:     offsetParserNames(),
		}
	}
	if p.needsUnit {
		if err := reg.ValidateUnit(unit, backend); err != nil {
			return nil, err
		}
	}
	return p.parse(offset, unit)
}

// FormatOffset renders a numeric offset as a string.
//
// For OriginArbitrary the offset is elapsed seconds with no calendar
// anchoring and is rendered as an elapsed-time phrase; precision above 6 is
// clamped because the unanchored path never reaches nanosecond scale.
//
// For OriginUnix the offset is parsed through the backend first and rendered
// with layout. Precision chrono.PrecisionNative keeps the offset as given;
// 0..6 rounds it to the nearest whole second before parsing; 7..9 takes the
// nanosecond path and requires the nanosecond-capable backend.
func FormatOffset(reg *chrono.Registry, offset float64, precision int, origin chrono.Origin, layout string, unit chrono.Unit, backend string) (string, error) {
	if err := reg.ValidatePrecision(precision, backend); err != nil {
		return "", err
	}
	switch origin {
	case chrono.OriginArbitrary:
		return FormatElapsed(offset, precision), nil
	case chrono.OriginUnix:
		if layout == "" {
			return "", &chrono.MissingFormatError{Backend: backend}
		}
		if precision >= 7 {
			return formatNano(offset, layout), nil
		}
		if precision != chrono.PrecisionNative {
			offset = math.Round(offset)
		}
		v, err := ParseOffset(reg, offset, backend, unit)
		if err != nil {
			return "", err
		}
		t, err := timeOf(v)
		if err != nil {
			return "", err
		}
		return t.Format(layout), nil
	default:
		return "", &chrono.UnsupportedOptionError{
			Explanation: "offset origin",
			Option:      string(origin),
			Allowed:     []string{string(chrono.OriginUnix), string(chrono.OriginArbitrary)},
		}
	}
}

var elapsedPrinter = message.NewPrinter(language.AmericanEnglish)

// Elapsed phrase templates, with and without a leading day component.
const (
	elapsedWithDays = "%d days %d hours %d minutes %s seconds"
	elapsedNoDays   = "%d hours %d minutes %s seconds"
)

// FormatElapsed renders seconds since an arbitrary origin as an elapsed-time
// phrase. An hour count that rolls into the next day's midnight is
// normalized to zero with the day carried, never rendered as 24.
func FormatElapsed(seconds float64, precision int) string {
	totalHours := math.Floor(seconds / 3600)
	days := math.Floor(totalHours / 24)
	hours := totalHours - days*24
	rem := seconds - totalHours*3600
	minutes := math.Floor(rem / 60)
	secs := rem - minutes*60

	// The unanchored path caps fractional digits at six.
	if precision > 6 {
		precision = 6
	}
	if precision >= 0 {
		pow := math.Pow(10, float64(precision))
		secs = math.Round(secs*pow) / pow
	}
	// Carry rounding overflow upward; hour 24 becomes day+1 hour 0.
	if secs >= 60 {
		secs -= 60
		minutes++
	}
	if minutes >= 60 {
		minutes -= 60
		hours++
	}
	if hours >= 24 {
		hours -= 24
		days++
	}

	// chrono.PrecisionNative (and any negative digit count) renders the
	// shortest exact form.
	digits := precision
	if precision < 0 {
		digits = -1
	}
	secStr := strconv.FormatFloat(secs, 'f', digits, 64)
	if days > 0 {
		return elapsedPrinter.Sprintf(elapsedWithDays, int64(days), int64(hours), int64(minutes), secStr)
	}
	return elapsedPrinter.Sprintf(elapsedNoDays, int64(hours), int64(minutes), secStr)
}

// unixTime splits a fractional epoch offset into whole seconds plus
// nanoseconds.
func unixTime(offset float64) time.Time {
	sec := math.Floor(offset)
	nanos := math.Round((offset - sec) * 1e9)
	return time.Unix(int64(sec), int64(nanos)).UTC()
}

// timeOf extracts the calendar time of a parsed scalar value.
func timeOf(v chrono.Value) (time.Time, error) {
	switch tv := v.(type) {
	case chrono.Instant:
		return tv.Time, nil
	case chrono.Stamp:
		return tv.Time(), nil
	case chrono.Broken:
		return tv.Time(), nil
	case chrono.VectorStamp:
		seconds, err := tv.Seconds()
		if err != nil {
			return time.Time{}, err
		}
		return unixTime(seconds), nil
	default:
		return time.Time{}, &chrono.UnsupportedOptionError{
			Explanation: "renderable value kind",
			Option:      string(v.Kind()),
			Allowed: []string{
				string(chrono.KindInstant), string(chrono.KindStamp),
				string(chrono.KindBroken), string(chrono.KindVectorStamp),
			},
		}
	}
}

func offsetParserNames() []string {
	names := make([]string, 0, len(offsetParsers))
	for name := range offsetParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
