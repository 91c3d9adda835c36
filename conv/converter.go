package conv

import (
	"errors"
	"math"
	"time"

	"github.com/chronotool/chrono"
	"github.com/chronotool/chrono/parse"
)

// Options contains configuration for the converter. The zero value of any
// field falls back to its default when the converter is created.
type Options struct {
	// Registry supplies the legal unit, precision-class and target tables.
	Registry *chrono.Registry
	// Layout is the format pattern used for textual targets.
	Layout string
	// Unit is the time unit for offset and vector-stamp targets.
	Unit chrono.Unit
	// FloatClass is the float precision class for numeric targets.
	FloatClass string
	// IntClass is the integer precision class for tick-counting targets.
	IntClass string
	// Now supplies the date when anchoring a bare time of day onto a
	// calendar day.
	Now func() time.Time
	// OnColumnError, if set, observes columns skipped by the tabular
	// best-effort policy. Skipped columns are returned unmodified.
	OnColumnError func(column string, err error)
}

// Option mutates per-call conversion options.
type Option func(*Options)

// WithLayout overrides the format pattern for a single conversion.
func WithLayout(layout string) Option {
	return func(o *Options) {
		o.Layout = layout
	}
}

// WithUnit overrides the target time unit for a single conversion.
func WithUnit(unit chrono.Unit) Option {
	return func(o *Options) {
		o.Unit = unit
	}
}

// WithFloatClass overrides the float precision class.
func WithFloatClass(class string) Option {
	return func(o *Options) {
		o.FloatClass = class
	}
}

// WithIntClass overrides the integer precision class.
func WithIntClass(class string) Option {
	return func(o *Options) {
		o.IntClass = class
	}
}

// WithNow overrides the system-time provider.
func WithNow(now func() time.Time) Option {
	return func(o *Options) {
		o.Now = now
	}
}

// WithColumnErrorHandler sets the diagnostic callback for skipped columns.
func WithColumnErrorHandler(fn func(column string, err error)) Option {
	return func(o *Options) {
		o.OnColumnError = fn
	}
}

// DefaultOptions returns the default conversion options.
func DefaultOptions() Options {
	return Options{
		Registry:   chrono.DefaultRegistry(),
		Layout:     parse.DefaultLayout,
		Unit:       chrono.UnitSecond,
		FloatClass: "d",
		IntClass:   "int",
		Now:        time.Now,
	}
}

// convFunc converts one (source, target) kind pair.
type convFunc func(c *Converter, v chrono.Value, opts *Options) (chrono.Value, error)

// Converter converts temporal values between representations.
type Converter struct {
	options Options
	table   map[chrono.Kind]map[chrono.Kind]convFunc
}

// New creates a converter with the provided options. Zero-valued option
// fields are filled with their defaults.
func New(options Options) *Converter {
	if options.Registry == nil {
		options.Registry = chrono.DefaultRegistry()
	}
	if options.Layout == "" {
		options.Layout = parse.DefaultLayout
	}
	if options.Unit == "" {
		options.Unit = chrono.UnitSecond
	}
	if options.FloatClass == "" {
		options.FloatClass = "d"
	}
	if options.IntClass == "" {
		options.IntClass = "int"
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Converter{
		options: options,
		table:   conversionTable(),
	}
}

// conversionTable enumerates every legal (source, target) pair. It mirrors
// the registry's target matrix exactly; the registry rejects anything not
// listed here before dispatch is attempted.
func conversionTable() map[chrono.Kind]map[chrono.Kind]convFunc {
	return map[chrono.Kind]map[chrono.Kind]convFunc{
		chrono.KindInstant: {
			chrono.KindOffset:      toOffset,
			chrono.KindClockTime:   instantToClockTime,
			chrono.KindBroken:      toBroken,
			chrono.KindStamp:       toStamp,
			chrono.KindVectorStamp: toVectorStamp,
			chrono.KindText:        toText,
		},
		chrono.KindVectorStamp: {
			chrono.KindOffset:  toOffset,
			chrono.KindInstant: toInstant,
			chrono.KindBroken:  toBroken,
			chrono.KindStamp:   toStamp,
			chrono.KindText:    toText,
		},
		chrono.KindClockTime: {
			chrono.KindOffset:      clockTimeToOffset,
			chrono.KindInstant:     toInstant,
			chrono.KindBroken:      toBroken,
			chrono.KindStamp:       toStamp,
			chrono.KindVectorStamp: toVectorStamp,
			chrono.KindText:        toText,
		},
		chrono.KindStamp: {
			chrono.KindOffset:      toOffset,
			chrono.KindInstant:     toInstant,
			chrono.KindBroken:      toBroken,
			chrono.KindVectorStamp: toVectorStamp,
			chrono.KindText:        toText,
		},
		chrono.KindBroken: {
			chrono.KindOffset:      toOffset,
			chrono.KindInstant:     toInstant,
			chrono.KindStamp:       toStamp,
			chrono.KindVectorStamp: toVectorStamp,
		},
		chrono.KindTable: {
			chrono.KindOffset: tableTo(chrono.KindOffset),
			chrono.KindStamp:  tableTo(chrono.KindStamp),
			chrono.KindText:   tableTo(chrono.KindText),
		},
	}
}

// Convert converts value to the target kind. The target is validated
// against the registry for the value's kind before any work; unit and
// precision classes are validated regardless of whether the target consumes
// them. Failures inside a conversion function are wrapped into
// *chrono.ConversionError.
func (c *Converter) Convert(value chrono.Value, target chrono.Kind, opts ...Option) (chrono.Value, error) {
	if value == nil {
		return nil, errors.New("value cannot be nil")
	}
	if target == "" {
		return nil, errors.New("conversion target not provided")
	}
	eff := c.options
	for _, opt := range opts {
		opt(&eff)
	}
	reg := eff.Registry

	if err := reg.ValidateTarget(value.Kind(), target); err != nil {
		return nil, err
	}
	if _, err := chrono.Factor(eff.Unit); err != nil {
		return nil, err
	}
	if err := reg.ValidateFloatClass(eff.FloatClass); err != nil {
		return nil, err
	}
	if err := reg.ValidateIntClass(eff.IntClass); err != nil {
		return nil, err
	}

	fn := c.table[value.Kind()][target]
	if fn == nil {
		return nil, &chrono.UnsupportedOptionError{
			Explanation: "conversion target for source kind " + string(value.Kind()),
			Option:      string(target),
			Allowed:     kindNames(reg.Targets(value.Kind())),
		}
	}
	out, err := fn(c, value, &eff)
	if err != nil {
		return nil, &chrono.ConversionError{Target: target, Err: err}
	}
	return out, nil
}

// convertCell converts a single table cell without wrapping; cell failures
// stay internal to the best-effort column policy.
func (c *Converter) convertCell(cell chrono.Value, target chrono.Kind, opts *Options) (chrono.Value, error) {
	if cell == nil {
		return nil, errors.New("cell is nil")
	}
	if err := opts.Registry.ValidateTarget(cell.Kind(), target); err != nil {
		return nil, err
	}
	fn := c.table[cell.Kind()][target]
	if fn == nil {
		return nil, &chrono.UnsupportedOptionError{
			Explanation: "conversion target for cell kind " + string(cell.Kind()),
			Option:      string(target),
			Allowed:     kindNames(opts.Registry.Targets(cell.Kind())),
		}
	}
	return fn(c, cell, opts)
}

// calendarTime extracts the calendar time of a scalar value, stripping
// timezone semantics first. A bare time of day is anchored on today's date
// from the options' time provider.
func calendarTime(v chrono.Value, opts *Options) (time.Time, error) {
	switch tv := v.(type) {
	case chrono.Instant:
		return tv.StripZone().Time, nil
	case chrono.Stamp:
		return tv.Time(), nil
	case chrono.Broken:
		return tv.Time(), nil
	case chrono.VectorStamp:
		seconds, err := tv.Seconds()
		if err != nil {
			return time.Time{}, err
		}
		return epochTime(seconds), nil
	case chrono.ClockTime:
		return tv.On(opts.Now()).Time, nil
	default:
		return time.Time{}, unsupportedScalarKind(v.Kind())
	}
}

func toOffset(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	factor, err := chrono.Factor(opts.Unit)
	if err != nil {
		return nil, err
	}
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	value := applyFloatClass(seconds/factor, opts.FloatClass)
	return chrono.Offset{Value: value, Unit: opts.Unit, Origin: chrono.OriginUnix}, nil
}

// clockTimeToOffset measures a bare time of day as elapsed time since
// midnight rather than anchoring it to a date first.
func clockTimeToOffset(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	ct := v.(chrono.ClockTime)
	factor, err := chrono.Factor(opts.Unit)
	if err != nil {
		return nil, err
	}
	value := applyFloatClass(ct.SecondsOfDay()/factor, opts.FloatClass)
	return chrono.Offset{Value: value, Unit: opts.Unit, Origin: chrono.OriginArbitrary}, nil
}

func toInstant(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	return chrono.NewInstant(t), nil
}

func instantToClockTime(_ *Converter, v chrono.Value, _ *Options) (chrono.Value, error) {
	t := v.(chrono.Instant).StripZone().Time
	return chrono.ClockTime{
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
		Nanos:  t.Nanosecond(),
	}, nil
}

func toBroken(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	return chrono.BrokenOf(t), nil
}

func toStamp(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	return chrono.Stamp{Nanos: t.UnixNano()}, nil
}

func toVectorStamp(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	factor, err := chrono.Factor(opts.Unit)
	if err != nil {
		return nil, err
	}
	seconds := float64(t.Unix()) + float64(t.Nanosecond())/1e9
	// Round to the nearest tick, matching the textual vector parser.
	ticks := applyIntClass(int64(math.Round(seconds/factor)), opts.IntClass)
	return chrono.VectorStamp{Ticks: ticks, Unit: opts.Unit}, nil
}

func toText(_ *Converter, v chrono.Value, opts *Options) (chrono.Value, error) {
	t, err := calendarTime(v, opts)
	if err != nil {
		return nil, err
	}
	return chrono.Text{Value: t.Format(opts.Layout), Layout: opts.Layout}, nil
}

// applyFloatClass narrows the result to the requested float precision
// class; 64-bit classes are the identity.
func applyFloatClass(value float64, class string) float64 {
	switch class {
	case "f", "float32":
		return float64(float32(value))
	default:
		return value
	}
}

// applyIntClass narrows a tick count to the requested integer precision
// class; 64-bit classes are the identity.
func applyIntClass(ticks int64, class string) int64 {
	switch class {
	case "int8":
		return int64(int8(ticks))
	case "int16":
		return int64(int16(ticks))
	case "i", "int32":
		return int64(int32(ticks))
	default:
		return ticks
	}
}

func unsupportedScalarKind(kind chrono.Kind) error {
	return &chrono.UnsupportedOptionError{
		Explanation: "scalar source kind",
		Option:      string(kind),
		Allowed: []string{
			string(chrono.KindInstant), string(chrono.KindStamp),
			string(chrono.KindBroken), string(chrono.KindVectorStamp),
			string(chrono.KindClockTime),
		},
	}
}

func kindNames(kinds []chrono.Kind) []string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return names
}

// epochTime splits fractional epoch seconds into whole seconds plus
// nanoseconds.
func epochTime(seconds float64) time.Time {
	sec := int64(seconds)
	nanos := int64((seconds - float64(sec)) * 1e9)
	return time.Unix(sec, nanos).UTC()
}
