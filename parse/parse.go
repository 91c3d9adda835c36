package parse

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/chronotool/chrono"
)

// DefaultLayout is used when a caller renders without an explicit layout.
const DefaultLayout = "2006-01-02 15:04:05"

// textParser parses one backend's text form. Backends with an inherent unit
// notion additionally require the unit argument.
type textParser struct {
	needsUnit bool
	parse     func(reg *chrono.Registry, text, layout string, unit chrono.Unit) (chrono.Value, error)
}

var textParsers = map[string]textParser{
	chrono.BackendClock:    {parse: parseClockText},
	chrono.BackendFlexible: {parse: parseFlexibleText},
	chrono.BackendHuman:    {parse: parseHumanText},
	chrono.BackendColumnar: {needsUnit: true, parse: parseColumnarText},
	chrono.BackendVector:   {needsUnit: true, parse: parseVectorText},
}

// ParseText converts a formatted time string into the backend's structured
// value: an Instant for the clock, flexible and human backends, a Stamp for
// the columnar backend and a VectorStamp for the vector backend.
func ParseText(reg *chrono.Registry, text, layout, backend string, unit chrono.Unit) (chrono.Value, error) {
	p, ok := textParsers[backend]
	if !ok {
		return nil, &chrono.UnsupportedOptionError{
			Explanation: "text parsing backend",
			Option:      backend,
			Allowed:     textParserNames(),
		}
	}
	if layout == "" {
		return nil, &chrono.MissingFormatError{Backend: backend}
	}
	if p.needsUnit {
		if err := reg.ValidateUnit(unit, backend); err != nil {
			return nil, err
		}
	}
	return p.parse(reg, text, layout, unit)
}

func parseClockText(_ *chrono.Registry, text, layout string, _ chrono.Unit) (chrono.Value, error) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return nil, &chrono.FormatMismatchError{Text: text, Layout: layout, Err: err}
	}
	if layoutHasZone(layout) {
		return chrono.NewZonedInstant(t), nil
	}
	return chrono.NewInstant(t), nil
}

// parseFlexibleText tolerates a missing or extra T separator and trailing
// fragments on either side, trimming the longer of text and layout before
// retrying.
func parseFlexibleText(_ *chrono.Registry, text, layout string, _ chrono.Unit) (chrono.Value, error) {
	adjText, adjLayout := text, layout
	if strings.Contains(adjText, "T") != strings.Contains(adjLayout, "T") {
		adjLayout = strings.Replace(adjLayout, "T", " ", 1)
		adjText = strings.Replace(adjText, "T", " ", 1)
	}
	t, err := time.ParseInLocation(adjLayout, adjText, time.UTC)
	if err != nil {
		if len(adjText) > len(adjLayout) {
			t, err = time.Parse(adjLayout, adjText[:len(adjLayout)])
		} else if len(adjLayout) > len(adjText) {
			t, err = time.Parse(adjLayout[:len(adjText)], adjText)
		}
		if err != nil {
			return nil, &chrono.FormatMismatchError{Text: text, Layout: layout, Err: err}
		}
	}
	return chrono.NewInstant(t), nil
}

func parseHumanText(_ *chrono.Registry, text, layout string, _ chrono.Unit) (chrono.Value, error) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return nil, &chrono.FormatMismatchError{Text: text, Layout: layout, Err: err}
	}
	return chrono.NewZonedInstant(t), nil
}

func parseColumnarText(_ *chrono.Registry, text, layout string, _ chrono.Unit) (chrono.Value, error) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return nil, &chrono.FormatMismatchError{Text: text, Layout: layout, Err: err}
	}
	return chrono.Stamp{Nanos: t.UnixNano()}, nil
}

func parseVectorText(_ *chrono.Registry, text, layout string, unit chrono.Unit) (chrono.Value, error) {
	t, err := time.Parse(layout, text)
	if err != nil {
		return nil, &chrono.FormatMismatchError{Text: text, Layout: layout, Err: err}
	}
	factor, err := chrono.Factor(unit)
	if err != nil {
		return nil, err
	}
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	return chrono.VectorStamp{Ticks: int64(math.Round(seconds / factor)), Unit: unit}, nil
}

func layoutHasZone(layout string) bool {
	return strings.Contains(layout, "Z07") ||
		strings.Contains(layout, "-07") ||
		strings.Contains(layout, "MST")
}

func textParserNames() []string {
	names := make([]string, 0, len(textParsers))
	for name := range textParsers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
