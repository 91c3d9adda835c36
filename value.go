package chrono

import "time"

// Kind identifies the concrete representation a Value carries.
type Kind string

const (
	KindInstant     Kind = "instant"
	KindOffset      Kind = "offset"
	KindText        Kind = "text"
	KindClockTime   Kind = "clocktime"
	KindBroken      Kind = "broken"
	KindStamp       Kind = "stamp"
	KindVectorStamp Kind = "vectorstamp"
	KindTable       Kind = "table"
	KindRaw         Kind = "raw"
)

// Value is a temporal value in one of the supported representations.
// The kind is decided at construction time and never re-derived.
type Value interface {
	Kind() Kind
}

// Instant is a calendar date plus time of day. Zoned reports whether the
// wrapped time carries timezone semantics; zone-free targets require an
// explicit strip first.
type Instant struct {
	Time  time.Time
	Zoned bool
}

func (Instant) Kind() Kind { return KindInstant }

// Offset is a signed count of Unit since Origin.
type Offset struct {
	Value  float64
	Unit   Unit
	Origin Origin
}

func (Offset) Kind() Kind { return KindOffset }

// Text is a rendered temporal string together with the layout that
// produced it (or will parse it back).
type Text struct {
	Value  string
	Layout string
}

func (Text) Kind() Kind { return KindText }

// ClockTime is a time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
	Nanos  int
}

func (ClockTime) Kind() Kind { return KindClockTime }

// Broken is the fixed nine-field broken-down representation. It has no
// sub-second precision; Weekday, YearDay and DST are computed fields.
type Broken struct {
	Year    int
	Month   int
	Day     int
	Hour    int
	Minute  int
	Second  int
	Weekday int // days since Sunday, [0,6]
	YearDay int // [1,366]
	DST     int // -1 unknown, 0 no, 1 yes
}

func (Broken) Kind() Kind { return KindBroken }

// Stamp is the columnar backend's scalar timestamp: nanoseconds since the
// Unix epoch.
type Stamp struct {
	Nanos int64
}

func (Stamp) Kind() Kind { return KindStamp }

// VectorStamp is the vectorized backend's scalar instant: an integer tick
// count since the Unix epoch in a fixed unit.
type VectorStamp struct {
	Ticks int64
	Unit  Unit
}

func (VectorStamp) Kind() Kind { return KindVectorStamp }

// Raw is an opaque non-temporal cell. It has no legal conversion targets;
// a column of Raw values therefore fails conversion and is passed through
// untouched by the tabular adapter.
type Raw struct {
	Data interface{}
}

func (Raw) Kind() Kind { return KindRaw }

// Column is an ordered, named sequence of values.
type Column struct {
	Name   string
	Values []Value
}

// Table is an ordered collection of columns whose cells may each be any
// Value. Conversion never changes the row count or the column set.
type Table struct {
	Columns []Column
}

func (Table) Kind() Kind { return KindTable }

// NewInstant wraps t as a zone-free instant.
func NewInstant(t time.Time) Instant {
	return Instant{Time: t}
}

// NewZonedInstant wraps t keeping its timezone semantics.
func NewZonedInstant(t time.Time) Instant {
	return Instant{Time: t, Zoned: true}
}

// StripZone returns i with timezone semantics removed. The wall-clock
// fields are preserved and rebound to UTC, the same way the original
// representations drop tzinfo rather than shifting the clock.
func (i Instant) StripZone() Instant {
	if !i.Zoned {
		return i
	}
	t := i.Time
	return Instant{Time: time.Date(
		t.Year(), t.Month(), t.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.UTC,
	)}
}

// BrokenOf computes the broken-down representation of t.
func BrokenOf(t time.Time) Broken {
	return Broken{
		Year:    t.Year(),
		Month:   int(t.Month()),
		Day:     t.Day(),
		Hour:    t.Hour(),
		Minute:  t.Minute(),
		Second:  t.Second(),
		Weekday: int(t.Weekday()),
		YearDay: t.YearDay(),
		DST:     -1,
	}
}

// Time reassembles the six used fields into a UTC time. The computed
// fields are ignored, matching the six-field reassembly of the original.
func (b Broken) Time() time.Time {
	return time.Date(b.Year, time.Month(b.Month), b.Day, b.Hour, b.Minute, b.Second, 0, time.UTC)
}

// Time returns the stamp as a UTC time.
func (s Stamp) Time() time.Time {
	return time.Unix(0, s.Nanos).UTC()
}

// Seconds returns the stamp as fractional seconds since the Unix epoch.
func (s Stamp) Seconds() float64 {
	return float64(s.Nanos) / 1e9
}

// Seconds returns the tick count scaled to seconds since the Unix epoch.
func (v VectorStamp) Seconds() (float64, error) {
	f, err := Factor(v.Unit)
	if err != nil {
		return 0, err
	}
	return float64(v.Ticks) * f, nil
}

// SecondsOfDay returns the clock time as fractional seconds since midnight.
func (c ClockTime) SecondsOfDay() float64 {
	return float64(c.Hour)*3600 + float64(c.Minute)*60 + float64(c.Second) + float64(c.Nanos)/1e9
}

// On anchors the clock time onto the date of t, producing a zone-free
// instant.
func (c ClockTime) On(t time.Time) Instant {
	return Instant{Time: time.Date(
		t.Year(), t.Month(), t.Day(),
		c.Hour, c.Minute, c.Second, c.Nanos,
		time.UTC,
	)}
}
