package schema

import (
	"fmt"
	"sort"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

// FromSDL parses a schema-definition document and extracts its Document.
// Interfaces and unions carry no codec shape and are skipped. A field type
// naming an undeclared type is an error.
func FromSDL(source string) (*Document, error) {
	doc, err := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: source})
	if err != nil {
		return nil, err
	}

	b := newSDLBuilder()
	for _, scalar := range BuiltinScalars {
		b.scalars[scalar] = struct{}{}
	}
	b.classify(doc.Definitions)
	return b.build()
}

// sdlBuilder classifies all named types before converting any field type,
// since a named type reference can appear before its declaration.
type sdlBuilder struct {
	scalars map[string]struct{}
	enums   map[string]*ast.Definition
	inputs  map[string]*ast.Definition
	outputs map[string]*ast.Definition
}

func newSDLBuilder() *sdlBuilder {
	return &sdlBuilder{
		scalars: map[string]struct{}{},
		enums:   map[string]*ast.Definition{},
		inputs:  map[string]*ast.Definition{},
		outputs: map[string]*ast.Definition{},
	}
}

func (b *sdlBuilder) classify(defs ast.DefinitionList) {
	for _, def := range defs {
		switch def.Kind {
		case ast.Scalar:
			b.scalars[def.Name] = struct{}{}
		case ast.Enum:
			b.enums[def.Name] = def
		case ast.Object:
			b.outputs[def.Name] = def
		case ast.InputObject:
			b.inputs[def.Name] = def
		case ast.Interface, ast.Union:
			// No codec shape; selection through abstract types is out of scope.
		}
	}
}

func (b *sdlBuilder) build() (*Document, error) {
	doc := &Document{}

	for _, name := range sortedKeys(b.outputs) {
		obj, err := b.outputObject(b.outputs[name])
		if err != nil {
			return nil, err
		}
		doc.Outputs = append(doc.Outputs, obj)
	}
	for _, name := range sortedKeys(b.inputs) {
		obj, err := b.inputObject(b.inputs[name])
		if err != nil {
			return nil, err
		}
		doc.Inputs = append(doc.Inputs, obj)
	}
	for _, name := range sortedKeys(b.enums) {
		def := b.enums[name]
		e := Enum{Name: def.Name}
		for _, v := range def.EnumValues {
			e.Values = append(e.Values, v.Name)
		}
		doc.Enums = append(doc.Enums, e)
	}
	for name := range b.scalars {
		doc.Scalars = append(doc.Scalars, name)
	}
	sort.Strings(doc.Scalars)
	return doc, nil
}

func (b *sdlBuilder) outputObject(def *ast.Definition) (Object, error) {
	obj := Object{Name: def.Name}
	for _, field := range def.Fields {
		output, err := b.convert(field.Type)
		if err != nil {
			return Object{}, err
		}
		if len(field.Arguments) == 0 {
			obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: output})
			continue
		}
		args := make([]Argument, 0, len(field.Arguments))
		for _, arg := range field.Arguments {
			argType, err := b.convert(arg.Type)
			if err != nil {
				return Object{}, err
			}
			args = append(args, Argument{Name: arg.Name, Type: argType, TypeName: arg.Type.String()})
		}
		obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: FuncOf(args, output)})
	}
	return obj, nil
}

func (b *sdlBuilder) inputObject(def *ast.Definition) (Object, error) {
	obj := Object{Name: def.Name}
	for _, field := range def.Fields {
		t, err := b.convert(field.Type)
		if err != nil {
			return Object{}, err
		}
		obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: t})
	}
	return obj, nil
}

// convert maps an SDL type expression to the model, wrapping with Nullable
// unless the expression carries a non-null marker.
func (b *sdlBuilder) convert(t *ast.Type) (*Type, error) {
	var inner *Type
	if t.NamedType != "" {
		named, err := b.named(t.NamedType)
		if err != nil {
			return nil, err
		}
		inner = named
	} else {
		elem, err := b.convert(t.Elem)
		if err != nil {
			return nil, err
		}
		inner = ListOf(elem)
	}
	if !t.NonNull {
		inner = NullableOf(inner)
	}
	return inner, nil
}

func (b *sdlBuilder) named(name string) (*Type, error) {
	if _, ok := b.scalars[name]; ok {
		return ScalarType(name), nil
	}
	if _, ok := b.enums[name]; ok {
		return EnumType(name), nil
	}
	if _, ok := b.inputs[name]; ok {
		return ObjectType(name), nil
	}
	if _, ok := b.outputs[name]; ok {
		return ObjectType(name), nil
	}
	return nil, fmt.Errorf("schema: unknown type %q", name)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
