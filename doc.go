// Package chrono defines the temporal value variants, unit and backend
// registries, and the error taxonomy shared by the parse and conv packages.
// A value's kind is fixed at construction; converters dispatch on it rather
// than inspecting runtime shape.
package chrono
