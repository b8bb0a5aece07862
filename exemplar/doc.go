// Package exemplar implements the Exemplar/Cohort record format: a typed
// property bag keyed by a 32-bit ID, with an 8-byte signature distinguishing
// cohorts from ordinary exemplars, and an optional parent cohort reference.
//
// Records round-trip through a binary form (read and write) and a text form
// (read only — the format is emitted binary-only). Properties iterate in
// ascending order by ID; this order is required for bit-exact re-encoding.
package exemplar
