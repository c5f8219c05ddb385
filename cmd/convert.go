// convert.go contains a converter from JSON introspection results to doc sources.

package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type inputValue struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	DefaultValue string `json:"defaultValue"`
	Type         *typ   `json:"type"`
}

type field struct {
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Args              []*inputValue `json:"args"`
	Type              *typ          `json:"type"`
	IsDeprecated      bool          `json:"isDeprecated"`
	DeprecationReason string        `json:"deprecationReason"`
}

type enum struct {
	Name              string `json:"name"`
	Description       string `json:"description"`
	IsDeprecated      bool   `json:"isDeprecated"`
	DeprecationReason string `json:"deprecationReason"`
}

type typ struct {
	Kind          string        `json:"kind"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	OfType        *typ          `json:"ofType"`
	Fields        []*field      `json:"fields"`
	Interfaces    []*typ        `json:"interfaces"`
	PossibleTypes []*typ        `json:"possibleTypes"`
	EnumValues    []*enum       `json:"enumValues"`
	InputFields   []*inputValue `json:"inputFields"`
}

type directive struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Locations   []string      `json:"locations"`
	Args        []*inputValue `json:"args"`
}

type decodeTyp uint8

const (
	decodeDirs decodeTyp = iota
	decodeTypes
)

// converter converts a JSON GraphQL introspection response to a
// Markdown doc source: descriptions become prose, entities become
// tagged declaration blocks.
type converter struct {
	src   *json.Decoder
	close func() error

	// buffer doc source in case it doesn't fit in p
	buf      bytes.Buffer
	decoding decodeTyp
}

func newConverter(rc io.ReadCloser) (*converter, error) {
	c := &converter{
		src:   json.NewDecoder(rc),
		close: rc.Close,
	}

	terr := c.init()
	return c, terr
}

func (c *converter) init() error {
	c.src.Token()

	tok, terr := c.src.Token()
	if terr != nil {
		return terr
	}

	fieldName := tok.(string)
	if fieldName != "__schema" {
		return fmt.Errorf("expected field: \"__schema\", but got: %s", fieldName)
	}
	c.src.Token()

	tok, terr = c.src.Token()
	if terr != nil {
		return terr
	}

	fieldName = tok.(string)
	switch fieldName {
	case "directives":
		c.decoding = decodeDirs
	case "types":
		c.decoding = decodeTypes
	}
	c.src.Token()
	return nil
}

func (c *converter) Read(p []byte) (n int, err error) {
	if c.buf.Len() > 0 {
		return c.buf.Read(p)
	}

	if !c.src.More() {
		return c.readMore(p)
	}

	switch c.decoding {
	case decodeDirs:
		d := directive{}
		err = c.src.Decode(&d)
		if err != nil {
			return 0, err
		}

		// Skip builtin directives
		if isBuiltinDirective(d.Name) {
			return c.Read(p)
		}

		writeProse(&c.buf, d.Description)

		var sb strings.Builder
		sb.WriteByte('@')
		sb.WriteString(d.Name)
		if len(d.Args) > 0 {
			sb.WriteByte('(')
			for i, a := range d.Args {
				if i > 0 {
					sb.WriteString(", ")
				}
				sb.WriteString(argString(a))
			}
			sb.WriteByte(')')
		}
		sb.WriteString(" on ")
		sb.WriteString(strings.Join(d.Locations, " | "))

		writeBlock(&c.buf, "directive", sb.String())
	case decodeTypes:
		t := typ{}
		err = c.src.Decode(&t)
		if err != nil {
			return 0, err
		}

		// Skip introspection types and builtin types
		if strings.HasPrefix(t.Name, "__") || isBuiltinType(t.Name) {
			return c.Read(p)
		}

		writeProse(&c.buf, t.Description)
		writeTyp(&c.buf, t)
	}

	return c.buf.Read(p)
}

func (c *converter) readMore(p []byte) (int, error) {
	t, err := c.src.Token()
	if err != nil {
		return 0, err
	}

	if delim, ok := t.(json.Delim); !ok || delim != ']' {
		return 0, fmt.Errorf("expected array closing")
	}

	t, err = c.src.Token()
	if err != nil {
		return 0, err
	}
	_, ok := t.(json.Delim)
	if ok {
		return 0, io.EOF
	}

	v, ok := t.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected token: %v", t)
	}
	c.src.Token()

	switch v {
	case "directives":
		c.decoding = decodeDirs
	case "types":
		c.decoding = decodeTypes
	}

	return c.Read(p)
}

// writeProse writes a description as a prose paragraph.
func writeProse(b *bytes.Buffer, descr string) {
	if descr == "" {
		return
	}
	b.WriteString(descr)
	b.WriteString("\n\n")
}

// writeBlock writes one tagged declaration block.
func writeBlock(b *bytes.Buffer, tag, decl string) {
	b.WriteString("```gql:")
	b.WriteString(tag)
	b.WriteByte('\n')
	b.WriteString(decl)
	b.WriteString("\n```\n\n")
}

func writeFieldBlocks(b *bytes.Buffer, tag string, fields []*field) {
	for _, f := range fields {
		writeProse(b, f.Description)
		writeBlock(b, tag, fieldString(f))
	}
}

const (
	scalarKind      = "SCALAR"
	objectKind      = "OBJECT"
	interfaceKind   = "INTERFACE"
	unionKind       = "UNION"
	enumKind        = "ENUM"
	inputObjectKind = "INPUT_OBJECT"
	listKind        = "LIST"
	nonNullKind     = "NON_NULL"
)

func writeTyp(b *bytes.Buffer, t typ) {
	switch t.Kind {
	case scalarKind:
		writeBlock(b, "scalar", t.Name)
	case objectKind:
		decl := t.Name
		if len(t.Interfaces) > 0 {
			names := make([]string, len(t.Interfaces))
			for i, it := range t.Interfaces {
				names[i] = it.Name
			}
			decl += " implements " + strings.Join(names, " & ")
		}

		writeBlock(b, "type", decl)
		writeFieldBlocks(b, "type-field", t.Fields)
	case interfaceKind:
		writeBlock(b, "interface", t.Name)
		writeFieldBlocks(b, "interface-field", t.Fields)
	case unionKind:
		names := make([]string, len(t.PossibleTypes))
		for i, m := range t.PossibleTypes {
			names[i] = m.Name
		}

		writeBlock(b, "union", t.Name+" = "+strings.Join(names, " | "))
	case enumKind:
		writeBlock(b, "enum", t.Name)
		for _, v := range t.EnumValues {
			writeProse(b, v.Description)
			writeBlock(b, "enum-value", v.Name+deprecation(v.IsDeprecated, v.DeprecationReason))
		}
	case inputObjectKind:
		writeBlock(b, "input", t.Name)
		for _, a := range t.InputFields {
			writeProse(b, a.Description)
			writeBlock(b, "input-field", argString(a))
		}
	}
}

func fieldString(f *field) string {
	var sb strings.Builder
	sb.WriteString(f.Name)

	if len(f.Args) > 0 {
		sb.WriteByte('(')
		for i, a := range f.Args {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(argString(a))
		}
		sb.WriteByte(')')
	}

	sb.WriteString(": ")
	sb.WriteString(typString(f.Type))
	sb.WriteString(deprecation(f.IsDeprecated, f.DeprecationReason))
	return sb.String()
}

func argString(a *inputValue) string {
	var sb strings.Builder
	sb.WriteString(a.Name)
	sb.WriteString(": ")
	sb.WriteString(typString(a.Type))

	if a.DefaultValue != "" {
		v := a.DefaultValue
		if a.Type.Name != "String" {
			v = strings.Trim(v, "\"")
		}
		sb.WriteString(" = ")
		sb.WriteString(v)
	}
	return sb.String()
}

func typString(t *typ) string {
	switch t.Kind {
	case nonNullKind:
		return typString(t.OfType) + "!"
	case listKind:
		return "[" + typString(t.OfType) + "]"
	default:
		return t.Name
	}
}

func deprecation(deprecated bool, reason string) string {
	if !deprecated {
		return ""
	}
	if reason == "" {
		return " @deprecated"
	}
	return fmt.Sprintf(" @deprecated(reason: %s)", strconv.Quote(reason))
}

func (c *converter) Close() error {
	return c.close()
}

func isBuiltinType(name string) bool {
	return name == "ID" || name == "Int" || name == "Float" || name == "String" || name == "Boolean"
}

func isBuiltinDirective(name string) bool {
	return name == "skip" || name == "deprecated" || name == "include"
}
