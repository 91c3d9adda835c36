package chrono

// Unit is a fixed time unit an epoch offset or vector stamp is expressed in.
type Unit string

const (
	UnitDay         Unit = "day"
	UnitSecond      Unit = "second"
	UnitMillisecond Unit = "millisecond"
	UnitMicrosecond Unit = "microsecond"
	UnitNanosecond  Unit = "nanosecond"
)

// Origin tags what an epoch offset counts from.
type Origin string

const (
	// OriginUnix counts from 1970-01-01T00:00:00Z.
	OriginUnix Origin = "unix"
	// OriginArbitrary counts elapsed time from an unanchored zero point,
	// so it carries no calendar date.
	OriginArbitrary Origin = "arbitrary"
)

// Backend identifiers for the concrete temporal representations bridged here.
const (
	// BackendClock is the calendar/clock struct representation (Instant).
	BackendClock = "clock"
	// BackendColumnar is the nanosecond-capable bulk timestamp (Stamp).
	BackendColumnar = "columnar"
	// BackendVector is the fixed-unit vectorized instant (VectorStamp).
	BackendVector = "vector"
	// BackendHuman is the human-readable, zone-carrying timestamp style.
	BackendHuman = "human"
	// BackendCTime is the legacy broken-down struct (Broken).
	BackendCTime = "ctime"
	// BackendFlexible is a parse-only backend with lenient layout matching.
	BackendFlexible = "flexible"
)

// unitFactors maps a unit to its length in seconds.
var unitFactors = map[Unit]float64{
	UnitDay:         86400,
	UnitSecond:      1,
	UnitMillisecond: 1e-3,
	UnitMicrosecond: 1e-6,
	UnitNanosecond:  1e-9,
}

// Factor returns the number of seconds per unit. Unknown units fail with
// *UnsupportedOptionError carrying the legal unit set.
func Factor(u Unit) (float64, error) {
	f, ok := unitFactors[u]
	if !ok {
		return 0, &UnsupportedOptionError{
			Explanation: "time unit factor",
			Option:      string(u),
			Allowed:     unitNames(unitFactors),
		}
	}
	return f, nil
}

func unitNames(m map[Unit]float64) []string {
	names := make([]string, 0, len(m))
	for _, u := range []Unit{UnitDay, UnitSecond, UnitMillisecond, UnitMicrosecond, UnitNanosecond} {
		if _, ok := m[u]; ok {
			names = append(names, string(u))
		}
	}
	return names
}
