package chrono

import (
	"math"
	"strconv"
)

// PrecisionNative selects the value's own fractional precision instead of a
// fixed digit count. It sits far outside the legal [0,9] range so that every
// plausible digit count, including -1, is validated as a digit count.
const PrecisionNative = math.MinInt

const (
	minPrecision = 0
	maxPrecision = 9
	// nanoPrecision is the lowest precision that needs a nanosecond-capable
	// backend.
	nanoPrecision = 7
)

// ValidateBackend fails unless backend is registered.
func (r *Registry) ValidateBackend(backend string) error {
	if _, ok := r.units[backend]; !ok {
		return &UnsupportedOptionError{
			Explanation: "backend",
			Option:      backend,
			Allowed:     r.Backends(),
		}
	}
	return nil
}

// ValidateUnit fails unless unit is in the backend's legal set.
func (r *Registry) ValidateUnit(unit Unit, backend string) error {
	if err := r.ValidateBackend(backend); err != nil {
		return err
	}
	if !r.units[backend][unit] {
		allowed := r.Units(backend)
		names := make([]string, len(allowed))
		for i, u := range allowed {
			names[i] = string(u)
		}
		return &UnsupportedOptionError{
			Explanation: "date unit for backend " + strconv.Quote(backend),
			Option:      string(unit),
			Allowed:     names,
		}
	}
	return nil
}

// ValidatePrecision fails if precision is outside [0,9], or if it is in the
// nanosecond range [7,9] and backend is not the nanosecond-capable one.
// PrecisionNative always passes.
func (r *Registry) ValidatePrecision(precision int, backend string) error {
	if precision == PrecisionNative {
		return nil
	}
	if precision < minPrecision || precision > maxPrecision {
		return &UnsupportedOptionError{
			Explanation: "fractional precision",
			Option:      strconv.Itoa(precision),
			Allowed:     []string{"0..9"},
		}
	}
	if precision >= nanoPrecision && backend != r.nanoBackend {
		return &PrecisionUnsupportedError{Precision: precision, Backend: backend}
	}
	return nil
}

// ValidateTarget fails unless targetKind is a legal destination for
// sourceKind. Self-conversion is never legal.
func (r *Registry) ValidateTarget(sourceKind, targetKind Kind) error {
	if !r.targets[sourceKind][targetKind] {
		allowed := r.Targets(sourceKind)
		names := make([]string, len(allowed))
		for i, k := range allowed {
			names[i] = string(k)
		}
		return &UnsupportedOptionError{
			Explanation: "conversion target for source kind " + strconv.Quote(string(sourceKind)),
			Option:      string(targetKind),
			Allowed:     names,
		}
	}
	return nil
}

// ValidateFloatClass fails unless class is a registered float precision
// class.
func (r *Registry) ValidateFloatClass(class string) error {
	if !r.floatClasses[class] {
		return &UnsupportedOptionError{
			Explanation: "float precision class",
			Option:      class,
			Allowed:     sortedKeys(r.floatClasses),
		}
	}
	return nil
}

// ValidateIntClass fails unless class is a registered integer precision
// class.
func (r *Registry) ValidateIntClass(class string) error {
	if !r.intClasses[class] {
		return &UnsupportedOptionError{
			Explanation: "integer precision class",
			Option:      class,
			Allowed:     sortedKeys(r.intClasses),
		}
	}
	return nil
}
