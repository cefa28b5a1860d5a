// Package correlate joins and aggregates independently fetched portal
// collections. Record identifiers arrive in inconsistent shapes (numeric id
// vs. username, year as numeral, word or ordinal), so lookups go through key
// normalization before indexing. Every function is pure: inputs are never
// mutated, no package state is shared between calls, and malformed records
// are skipped and counted instead of raising errors.
package correlate
