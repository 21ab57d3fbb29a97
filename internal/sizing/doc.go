// Package sizing provides prefix-sum offset axes for virtualized rendering.
//
// An Axis describes a sequence of items (rows or columns) with individual sizes
// and answers two questions cheaply:
//   - where does item i start (Offset), amortized O(1) once measured
//   - which item covers a given offset (IndexAt), O(log n)
//
// Offsets are measured lazily and cached. A size change at index k only
// invalidates the cached prefix from k onward (ResetAfter), so offsets of
// earlier items are never recomputed.
package sizing
