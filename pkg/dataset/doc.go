// Package dataset loads sankey input data and diagram configuration.
//
// Records come from CSV files with one observation per row: a left
// label, a right label, and up to two optional weight columns. Diagram
// appearance and ordering options load from a TOML config file, so
// repeated renders of the same dataset stay reproducible without long
// flag lists.
package dataset
