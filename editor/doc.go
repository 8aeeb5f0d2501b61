// Package editor provides a multiline terminal input editor with an inline
// autocomplete overlay, backed by the buffer and layout packages.
//
// The package is responsible for key dispatch, line-aware navigation over
// wrapped rows, suggestion filtering and insertion, viewport scrolling with
// an optional scrollbar gutter, and frame rendering. Model adapts an Editor
// to Bubble Tea.
package editor
