// Package layout maps logical text onto terminal rows.
//
// Wrap hard-wraps text at a column width; ToCoordinate and ToOffset convert
// between absolute grapheme offsets and (row, col) positions in the wrapped
// rows. Soft wrap boundaries carry no separator, hard ones ('\n') count as
// one offset unit.
package layout
