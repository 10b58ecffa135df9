// Package schema extracts a codec-oriented document model from a GraphQL
// schema, supplied either as SDL text or as a live endpoint's introspection
// result. The model is deliberately narrower than an executable schema: it
// keeps exactly what the code generator needs — input and output object
// shapes, enums, scalar names, and per-field argument wire types.
package schema

// Document is the extracted schema: everything the generator emits codecs
// for. Objects and enums are name-sorted; fields keep declaration order.
type Document struct {
	Inputs  []Object
	Outputs []Object
	Enums   []Enum
	Scalars []string
}

// Object is one input or output object type.
type Object struct {
	Name   string
	Fields []Field
}

// Field is one field of an object.
type Field struct {
	Name string
	Type *Type
}

// Enum is one enum type with its member names in declaration order.
type Enum struct {
	Name   string
	Values []string
}

// Kind discriminates the Type tree.
type Kind string

const (
	KindScalar   Kind = "SCALAR"
	KindEnum     Kind = "ENUM"
	KindObject   Kind = "OBJECT"
	KindList     Kind = "LIST"
	KindNullable Kind = "NULLABLE"
	KindFunc     Kind = "FUNC"
)

// Type is a field or argument type expression. Named is set for scalar,
// enum, and object kinds; Elem holds the list or nullable element, or a
// function's output; Args holds a function's ordered inputs.
type Type struct {
	Kind  Kind
	Named string
	Elem  *Type
	Args  []Argument
}

// Argument is one input of a function-typed field. TypeName is the SDL
// rendering of the declared wire type, e.g. "Int" or "[ID!]!", as it must
// appear in a variable declaration header.
type Argument struct {
	Name     string
	Type     *Type
	TypeName string
}

func ScalarType(name string) *Type { return &Type{Kind: KindScalar, Named: name} }
func EnumType(name string) *Type   { return &Type{Kind: KindEnum, Named: name} }
func ObjectType(name string) *Type { return &Type{Kind: KindObject, Named: name} }
func ListOf(elem *Type) *Type      { return &Type{Kind: KindList, Elem: elem} }
func NullableOf(elem *Type) *Type  { return &Type{Kind: KindNullable, Elem: elem} }

func FuncOf(args []Argument, output *Type) *Type {
	return &Type{Kind: KindFunc, Args: args, Elem: output}
}

// BuiltinScalars are always part of a Document's scalar list, whether or not
// the source schema declares them.
var BuiltinScalars = []string{"Boolean", "Float", "ID", "Int", "String"}
