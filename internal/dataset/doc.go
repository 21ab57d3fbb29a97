// Package dataset loads, filters and sorts the records shown by the table.
//
// This package contains the data plumbing that runs before a table is mounted:
//   - Load / LoadFiles: JSON Lines, JSON, CSV and YAML readers
//   - Processor: concurrent batch decoding for large JSON Lines files
//   - Sorter: "field:asc|desc" sorting over column keys
//   - Filter: substring queries and boolean expressions over records
//   - ColumnSpec: YAML column definitions and column inference
//   - Demo: the generated demonstration dataset
//
// The whole dataset is resident in memory and addressed by index.
package dataset
