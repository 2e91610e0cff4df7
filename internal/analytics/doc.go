// Package analytics derives reports from normalized holiday and policing
// records. Everything here is pure: no I/O, no shared state, safe for
// concurrent use over independent inputs.
package analytics
