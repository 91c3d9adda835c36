package chrono

import (
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

// Registry is the immutable lookup table of legal units per backend, legal
// numeric precision classes, nanosecond capability, and legal conversion
// targets per source kind. It is constructed once and passed explicitly to
// the validators, parsers and converters; there is no package-level mutable
// state.
type Registry struct {
	units        map[string]map[Unit]bool
	nanoBackend  string
	floatClasses map[string]bool
	intClasses   map[string]bool
	targets      map[Kind]map[Kind]bool
}

// DefaultRegistry returns the registry for the built-in backends.
//
// The two vectorized backends accept every unit; clock and human top out at
// microsecond resolution; the legacy broken-down backend has no sub-second
// field and accepts seconds only. Only the columnar backend is
// nanosecond-capable.
func DefaultRegistry() *Registry {
	return &Registry{
		units: map[string]map[Unit]bool{
			BackendClock:    unitSet(UnitSecond, UnitMicrosecond),
			BackendHuman:    unitSet(UnitSecond, UnitMicrosecond),
			BackendCTime:    unitSet(UnitSecond),
			BackendColumnar: unitSet(UnitDay, UnitSecond, UnitMillisecond, UnitMicrosecond, UnitNanosecond),
			BackendVector:   unitSet(UnitDay, UnitSecond, UnitMillisecond, UnitMicrosecond, UnitNanosecond),
			BackendFlexible: unitSet(UnitSecond, UnitMicrosecond),
		},
		nanoBackend:  BackendColumnar,
		floatClasses: stringSet("f", "d", "float", "float32", "float64"),
		intClasses:   stringSet("i", "int", "int8", "int16", "int32", "int64"),
		targets:      defaultTargets(),
	}
}

// defaultTargets is the legal source-to-target matrix. Self-conversion is
// absent for every kind, broken-down time has no direct textual renderer
// (route through an instant), and tables support only the three element-wise
// targets.
func defaultTargets() map[Kind]map[Kind]bool {
	return map[Kind]map[Kind]bool{
		KindInstant:     kindSet(KindOffset, KindClockTime, KindBroken, KindStamp, KindVectorStamp, KindText),
		KindVectorStamp: kindSet(KindOffset, KindInstant, KindBroken, KindStamp, KindText),
		KindClockTime:   kindSet(KindOffset, KindInstant, KindBroken, KindStamp, KindVectorStamp, KindText),
		KindStamp:       kindSet(KindOffset, KindInstant, KindBroken, KindVectorStamp, KindText),
		KindBroken:      kindSet(KindOffset, KindInstant, KindStamp, KindVectorStamp),
		KindTable:       kindSet(KindOffset, KindStamp, KindText),
	}
}

// registryConfig is the YAML shape accepted by LoadRegistry.
type registryConfig struct {
	Backends map[string]struct {
		Units []string `yaml:"units"`
	} `yaml:"backends"`
	Nanosecond   string   `yaml:"nanosecond"`
	FloatClasses []string `yaml:"floatClasses"`
	IntClasses   []string `yaml:"intClasses"`
}

// LoadRegistry builds a registry from a YAML document, for embedders and
// tests that need alternate unit tables. Omitted precision-class lists fall
// back to the defaults; the target matrix is not overridable.
func LoadRegistry(r io.Reader) (*Registry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	var cfg registryConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("invalid registry document: %w", err)
	}
	if len(cfg.Backends) == 0 {
		return nil, fmt.Errorf("registry document defines no backends")
	}

	reg := DefaultRegistry()
	units := make(map[string]map[Unit]bool, len(cfg.Backends))
	for name, b := range cfg.Backends {
		set := make(map[Unit]bool, len(b.Units))
		for _, u := range b.Units {
			if _, err := Factor(Unit(u)); err != nil {
				return nil, fmt.Errorf("backend %q: %w", name, err)
			}
			set[Unit(u)] = true
		}
		units[name] = set
	}
	reg.units = units
	if cfg.Nanosecond != "" {
		if _, ok := units[cfg.Nanosecond]; !ok {
			return nil, fmt.Errorf("nanosecond backend %q is not a defined backend", cfg.Nanosecond)
		}
		reg.nanoBackend = cfg.Nanosecond
	}
	if len(cfg.FloatClasses) > 0 {
		reg.floatClasses = stringSet(cfg.FloatClasses...)
	}
	if len(cfg.IntClasses) > 0 {
		reg.intClasses = stringSet(cfg.IntClasses...)
	}
	return reg, nil
}

// Backends returns the registered backend names, sorted.
func (r *Registry) Backends() []string {
	names := make([]string, 0, len(r.units))
	for name := range r.units {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units returns the legal unit set for a backend, sorted by magnitude.
func (r *Registry) Units(backend string) []Unit {
	set := r.units[backend]
	units := make([]Unit, 0, len(set))
	for _, u := range []Unit{UnitDay, UnitSecond, UnitMillisecond, UnitMicrosecond, UnitNanosecond} {
		if set[u] {
			units = append(units, u)
		}
	}
	return units
}

// NanoBackend returns the one backend capable of nanosecond-scale
// representation.
func (r *Registry) NanoBackend() string { return r.nanoBackend }

// Targets returns the legal destination kinds for a source kind, sorted.
func (r *Registry) Targets(source Kind) []Kind {
	set := r.targets[source]
	kinds := make([]Kind, 0, len(set))
	for k := range set {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func unitSet(units ...Unit) map[Unit]bool {
	set := make(map[Unit]bool, len(units))
	for _, u := range units {
		set[u] = true
	}
	return set
}

func stringSet(values ...string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func kindSet(kinds ...Kind) map[Kind]bool {
	set := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		set[k] = true
	}
	return set
}
