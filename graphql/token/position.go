package token

import "fmt"

// Position describes an arbitrary source position
// including the document, line, and column location.
// A Position is valid if the line number is > 0.
//
type Position struct {
	Filename string // document name, if any
	Offset   int    // byte offset within the declaration text, starting at 0
	Line     int    // line number, starting at 1
	Column   int    // column number, starting at 1 (byte count)
}

// IsValid reports whether the position is valid.
func (pos *Position) IsValid() bool { return pos.Line > 0 }

// String returns a string in one of several forms:
//
//	file:line:column    valid position with document name
//	file:line           valid position with document name but no column (column == 0)
//	line:column         valid position without document name
//	line                valid position without document name and no column (column == 0)
//	file                invalid position with document name
//	-                   invalid position without document name
//
func (pos Position) String() string {
	s := pos.Filename
	if pos.IsValid() {
		if s != "" {
			s += ":"
		}
		s += fmt.Sprintf("%d", pos.Line)
		if pos.Column != 0 {
			s += fmt.Sprintf(":%d", pos.Column)
		}
	}
	if s == "" {
		s = "-"
	}
	return s
}

// Pos is a compact encoding of a source position within a single
// declaration's text: the byte offset of the token, starting at 1
// so the zero value stays invalid. Declarations are parsed one at a
// time, so no document-set machinery is needed to interpret a Pos.
//
type Pos int

// The zero value for Pos is NoPos; there is no offset or line
// information associated with it, and NoPos.IsValid() is false.
const NoPos Pos = 0

// IsValid reports whether the position is valid.
func (p Pos) IsValid() bool {
	return p != NoPos
}
