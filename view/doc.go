// Package view renders hnmd documents for reading in a terminal.
//
// Unlike encode, the output is not meant to be parsed again: markup
// characters are replaced by styles, paragraphs are wrapped to the terminal
// width, and element content is indented under its tags.
//
// # Usage
//
//	err := view.View(doc, os.Stdout,
//		view.ViewWidth(view.TermWidth(os.Stdout)),
//		view.ViewColor(true))
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/encode - Canonical text rendering
package view
