package glacier

import (
	"fmt"
	"strings"
)

// OperationKind is the keyword a request opens with.
type OperationKind string

const (
	Query        OperationKind = "query"
	Mutation     OperationKind = "mutation"
	Subscription OperationKind = "subscription"
)

// Request is an encoded outgoing operation: the query document text and the
// extracted variable bag. Variables is nil when the selection carried no
// arguments.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// EncodeRequest walks sel against codec and assembles the outgoing request.
// Field order in the query text follows sel's own order; variables are named
// v1, v2, ... in depth-first, left-to-right traversal order, so encoding a
// structurally identical selection twice produces an identical request.
func EncodeRequest(kind OperationKind, sel Sel, codec Codec) (*Request, error) {
	enc := &requestEncoder{}
	root, err := enc.encodeObject(sel, codec)
	if err != nil {
		return nil, err
	}
	return &Request{
		Query:     string(kind) + enc.supplyList() + " " + root,
		Variables: enc.variables(),
	}, nil
}

// variable is one extracted argument value: generated name, declared wire
// type, already-encoded value.
type variable struct {
	name  string
	typ   string
	value any
}

// requestEncoder holds the mutable state of one EncodeRequest call. It is
// never shared between calls.
type requestEncoder struct {
	vars []variable
}

func (e *requestEncoder) fresh(typ string, value any) string {
	name := fmt.Sprintf("v%d", len(e.vars)+1)
	e.vars = append(e.vars, variable{name: name, typ: typ, value: value})
	return name
}

func (e *requestEncoder) encodeObject(sel Sel, codec Codec) (string, error) {
	fragments := make([]string, len(sel))
	for i, field := range sel {
		descriptor, ok := codec[field.Name]
		if !ok {
			return "", &Error{Code: ErrUnknownField, Name: field.Name}
		}
		fragment, err := e.encodeField(field.Name, field.Value, descriptor)
		if err != nil {
			return "", err
		}
		fragments[i] = fragment
	}
	return "{ " + strings.Join(fragments, " ") + " }", nil
}

// encodeField dispatches on the selection value's shape, not on any declared
// schema type: sentinel first, then tuple, then object. The generated
// call-site types have already proven shape conformance; these checks catch
// drift between a codec and the schema it was generated from.
func (e *requestEncoder) encodeField(name string, value any, descriptor Field) (string, error) {
	switch v := value.(type) {
	case int:
		return name, nil
	case Call:
		return e.encodeFunction(name, v.Args, v.Sel, descriptor)
	case Sel:
		if descriptor.Codec == nil {
			return "", &Error{Code: ErrMissingSubCodec, Name: name}
		}
		nested, err := e.encodeObject(v, descriptor.Codec())
		if err != nil {
			return "", err
		}
		return name + " " + nested, nil
	default:
		return "", &Error{Code: ErrInvalidSelectionShape, Name: name, Value: value}
	}
}

func (e *requestEncoder) encodeFunction(name string, args Args, sub any, descriptor Field) (string, error) {
	if descriptor.Args == nil {
		return "", &Error{Code: ErrMissingArgsCodec, Name: name}
	}
	var rendered []string
	for _, arg := range args {
		if arg.Value == nil {
			continue
		}
		argCodec, ok := descriptor.Args[arg.Name]
		if !ok {
			return "", &Error{Code: ErrUnknownArgument, Name: arg.Name}
		}
		encoded, err := argCodec.Encode(arg.Value)
		if err != nil {
			return "", err
		}
		varName := e.fresh(argCodec.Type, encoded)
		rendered = append(rendered, arg.Name+": $"+varName)
	}

	head := name
	if len(rendered) > 0 {
		head += "(" + strings.Join(rendered, ", ") + ")"
	}

	switch v := sub.(type) {
	case int:
		return head, nil
	case Sel:
		if descriptor.Codec == nil {
			return "", &Error{Code: ErrMissingSubCodec, Name: name}
		}
		nested, err := e.encodeObject(v, descriptor.Codec())
		if err != nil {
			return "", err
		}
		return head + " " + nested, nil
	default:
		return "", &Error{Code: ErrInvalidSelectionShape, Name: name, Value: sub}
	}
}

// supplyList renders the operation's variable declaration header, or the
// empty string when no variables were extracted.
func (e *requestEncoder) supplyList() string {
	if len(e.vars) == 0 {
		return ""
	}
	decls := make([]string, len(e.vars))
	for i, v := range e.vars {
		decls[i] = "$" + v.name + ": " + v.typ
	}
	return "(" + strings.Join(decls, ", ") + ")"
}

func (e *requestEncoder) variables() map[string]any {
	if len(e.vars) == 0 {
		return nil
	}
	bag := make(map[string]any, len(e.vars))
	for _, v := range e.vars {
		bag[v.name] = v.value
	}
	return bag
}
