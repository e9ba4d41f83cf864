// Package tabular moves data between tab-separated files and vector.Point
// datasets.
//
// Read parses a TSV stream whose first row names the columns. ExtractPoints
// turns selected columns into points: numbers parse as float64, "true" and
// "false" become 1 and 0, and a field missing from a row counts as 0. Write
// echoes the table with an extra 1-based cluster column.
//
// Open and Create handle "-" (stdin/stdout) and transparently compress by
// file extension: .gz, .zst/.zstd and .lz4.
package tabular
