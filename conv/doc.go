// Package conv converts temporal values between representations. A
// Converter holds an immutable registry and a two-level dispatch table keyed
// by source and target kind; every conversion failure is wrapped into a
// chrono.ConversionError so backend internals never cross the boundary.
package conv
