// Package domain holds the pure types of the frequency pipeline: language
// codes, sources, count tables and frequency tables, along with the
// sentinel errors shared across the core. It has no dependencies outside
// the standard library and performs no I/O.
package domain
