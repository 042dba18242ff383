// Package encode renders a parsed hnmd document back to canonical text.
//
// Rendering normalizes the surface syntax: blocks are separated by one blank
// line, thematic breaks are written `***`, hard breaks use a trailing
// backslash, emphasis markers are chosen so they cannot merge with their
// neighbours, and literal attribute values are double quoted unless they
// contain a double quote. Parsing the result gives a document equal to the
// one rendered under [ir.Equal].
//
// A document that has no textual form, such as an attribute value holding
// both quote characters, fails with [ErrEncoding].
//
// # Usage
//
//	doc := parse.Parse(src)
//	out, err := encode.Render(doc)
//
//	// highlight for a terminal
//	err = encode.Encode(doc, os.Stdout, encode.EncodeColors(encode.NewColors()))
//
// # Related Packages
//
//   - github.com/hnmd-format/go-hnmd/parse - Parse text to a document
//   - github.com/hnmd-format/go-hnmd/ir - Document representation
package encode
