// Package export writes stored papers out as CSV.
package export
