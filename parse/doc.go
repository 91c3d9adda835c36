// Package parse turns textual and numeric epoch-offset inputs into temporal
// values, and renders offsets back to strings. Dispatch is keyed by backend
// name; every entry validates its inputs against the registry before doing
// any work.
package parse
