// Package codegen renders a schema document into Go source: a schema file
// (enums and the scalar registry type), a codec file (one codec or encoder
// per object type), and a one-time client stub the user owns afterwards.
package codegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	schema "github.com/glacierql/glacier/internal/schema"
)

// Options controls rendering and placement of the generated files.
type Options struct {
	// Package is the Go package name of the generated files.
	Package string
	// Runtime is the import path of the codec runtime module.
	Runtime string
	// Indent is the indent unit, usually a tab.
	Indent string
	// LineBreak terminates generated lines.
	LineBreak string
}

// Generator renders one schema document.
type Generator struct {
	doc  *schema.Document
	opts Options
}

func New(doc *schema.Document, opts Options) *Generator {
	return &Generator{doc: doc, opts: opts}
}

// Generate renders and writes the three files into dir. schema.go and
// codec.go are rewritten when their content changes; client.go is created
// once and never touched again.
func Generate(doc *schema.Document, dir string, opts Options) ([]FileResult, error) {
	if err := ensureDir(dir); err != nil {
		return nil, err
	}
	g := New(doc, opts)

	var results []FileResult
	schemaStatus, err := writeOnDiff(join(dir, "schema.go"), g.SchemaFile(), opts.LineBreak)
	if err != nil {
		return nil, err
	}
	results = append(results, FileResult{Name: "schema.go", Status: schemaStatus})

	codecStatus, err := writeOnDiff(join(dir, "codec.go"), g.CodecFile(), opts.LineBreak)
	if err != nil {
		return nil, err
	}
	results = append(results, FileResult{Name: "codec.go", Status: codecStatus})

	clientStatus, err := writeOnce(join(dir, "client.go"), g.ClientFile())
	if err != nil {
		return nil, err
	}
	results = append(results, FileResult{Name: "client.go", Status: clientStatus})
	return results, nil
}

// SchemaFile renders enum types and the Scalars registry struct.
func (g *Generator) SchemaFile() string {
	w := g.writer()
	g.header(w)

	for _, e := range g.doc.Enums {
		name := export(e.Name)
		w.Linef("// %s enumerates the schema's %s values.", name, e.Name)
		w.Linef("type %s string", name)
		w.Blank()
		w.In("const (")
		for _, v := range e.Values {
			w.Linef("%s%s %s = %q", name, v, name, v)
		}
		w.Out(")")
		w.Blank()
	}

	w.Line("// Scalars holds one wire/domain conversion pair per schema scalar.")
	w.In("type Scalars struct {")
	for _, s := range g.doc.Scalars {
		w.Linef("%s glacier.Scalar", export(s))
	}
	w.Out("}")
	return w.String()
}

// CodecFile renders the SchemaCodec with one method per object type:
// encoders for input objects, codecs for output objects.
func (g *Generator) CodecFile() string {
	w := g.writer()
	g.header(w)

	w.Line("// SchemaCodec binds the generated codecs to one scalar registry. Codec")
	w.Line("// methods are cheap; sub-codecs are reached through method values, so")
	w.Line("// mutually recursive types need no construction order.")
	w.In("type SchemaCodec struct {")
	w.Line("scalars Scalars")
	w.Out("}")
	w.Blank()
	w.Line("// NewSchemaCodec builds the codec set on top of scalars.")
	w.In("func NewSchemaCodec(scalars Scalars) *SchemaCodec {")
	w.Line("return &SchemaCodec{scalars: scalars}")
	w.Out("}")

	for _, obj := range g.doc.Inputs {
		w.Blank()
		w.Linef("// %s encodes %s input values.", export(obj.Name), obj.Name)
		w.In(fmt.Sprintf("func (c *SchemaCodec) %s() glacier.Encoder {", export(obj.Name)))
		w.In("return glacier.Encoder{")
		for _, f := range obj.Fields {
			w.Linef("%q: %s,", f.Name, g.encodeFn(f.Type))
		}
		w.Out("}")
		w.Out("}")
	}

	for _, obj := range g.doc.Outputs {
		w.Blank()
		w.Linef("// %s decodes %s objects.", export(obj.Name), obj.Name)
		w.In(fmt.Sprintf("func (c *SchemaCodec) %s() glacier.Codec {", export(obj.Name)))
		w.In("return glacier.Codec{")
		for _, f := range obj.Fields {
			g.outputField(w, f)
		}
		w.Out("}")
		w.Out("}")
	}
	return w.String()
}

func (g *Generator) outputField(w *Writer, f schema.Field) {
	w.In(fmt.Sprintf("%q: {", f.Name))
	if target, ok := codecTarget(f.Type); ok {
		w.Linef("Codec: c.%s,", export(target))
	}
	w.Linef("Decode: %s,", g.decodeFn(f.Type))
	if f.Type.Kind == schema.KindFunc {
		w.In("Args: map[string]glacier.Arg{")
		for _, a := range f.Type.Args {
			w.In(fmt.Sprintf("%q: {", a.Name))
			w.Linef("Type: %q,", a.TypeName)
			w.Linef("Encode: %s,", g.encodeFn(a.Type))
			w.Out("},")
		}
		w.Out("},")
	}
	w.Out("},")
}

// ClientFile renders the user-owned entry point.
func (g *Generator) ClientFile() string {
	w := g.writer()
	w.Line("// This file was created by glacier as a starting point and is yours to")
	w.Line("// edit. It is never overwritten.")
	w.Blank()
	w.Linef("package %s", g.opts.Package)
	w.Blank()
	w.In("import (")
	w.Linef("glacier %q", g.opts.Runtime)
	w.Out(")")
	w.Blank()
	w.Line("// New wires passthrough scalar conversions into a client for url.")
	w.Line("// Replace individual Scalars entries to map custom scalars onto richer")
	w.Line("// domain types.")
	w.In("func New(url string, opts ...glacier.ClientOption) (*glacier.Client, *SchemaCodec) {")
	w.In("scalars := Scalars{")
	for _, s := range g.doc.Scalars {
		w.Linef("%s: glacier.Identity(),", export(s))
	}
	w.Out("}")
	w.Line("return glacier.NewClient(url, opts...), NewSchemaCodec(scalars)")
	w.Out("}")
	return w.String()
}

func (g *Generator) writer() *Writer {
	return NewWriter(g.opts.Indent, g.opts.LineBreak)
}

func (g *Generator) header(w *Writer) {
	w.Line("// Code generated by glacier from the project schema. DO NOT EDIT.")
	w.Blank()
	w.Linef("package %s", g.opts.Package)
	w.Blank()
	w.In("import (")
	w.Linef("glacier %q", g.opts.Runtime)
	w.Out(")")
	w.Blank()
}

// decodeFn renders a Go expression assignable to glacier.DecodeFunc for the
// given type.
func (g *Generator) decodeFn(t *schema.Type) string {
	switch t.Kind {
	case schema.KindScalar:
		return fmt.Sprintf("c.scalars.%s.Decode", export(t.Named))
	case schema.KindEnum:
		return "func(value any) (any, error) { return value, nil }"
	case schema.KindObject:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.DecodeObject(value, c.%s()) }", export(t.Named))
	case schema.KindNullable:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.DecodeNull(value, %s) }", g.decodeFn(t.Elem))
	case schema.KindList:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.DecodeList(value, %s) }", g.decodeFn(t.Elem))
	case schema.KindFunc:
		return g.decodeFn(t.Elem)
	}
	panic("unreachable")
}

// encodeFn renders a Go expression assignable to glacier.EncodeFunc. A
// function type can never appear inside an argument value.
func (g *Generator) encodeFn(t *schema.Type) string {
	switch t.Kind {
	case schema.KindScalar:
		return fmt.Sprintf("c.scalars.%s.Encode", export(t.Named))
	case schema.KindEnum:
		return "func(value any) (any, error) { return value, nil }"
	case schema.KindObject:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.EncodeObject(value, c.%s()) }", export(t.Named))
	case schema.KindNullable:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.EncodeNull(value, %s) }", g.encodeFn(t.Elem))
	case schema.KindList:
		return fmt.Sprintf("func(value any) (any, error) { return glacier.EncodeList(value, %s) }", g.encodeFn(t.Elem))
	case schema.KindFunc:
		panic("codegen: cannot encode a function type inside an argument")
	}
	panic("unreachable")
}

// codecTarget unwraps nullable/list/function layers and reports the named
// object type a field's sub-codec must come from, if any.
func codecTarget(t *schema.Type) (string, bool) {
	switch t.Kind {
	case schema.KindObject:
		return t.Named, true
	case schema.KindNullable, schema.KindList, schema.KindFunc:
		return codecTarget(t.Elem)
	default:
		return "", false
	}
}

// export upper-cases the first rune so generated identifiers are exported.
func export(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}
	return string(unicode.ToUpper(r)) + name[size:]
}
