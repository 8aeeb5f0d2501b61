// Package buffer implements the pure text model behind the editor.
//
// Offsets are 0-based and counted in grapheme clusters. The cursor is a
// single absolute offset into the logical text; line structure is derived
// from '\n' separators.
package buffer
