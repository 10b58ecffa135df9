package schema

import (
	"fmt"
	"sort"
	"strings"

	"encoding/json"
)

// FromIntrospection extracts a Document from the JSON body of an
// introspection query response. The meta types (__Schema, __Type, ...) are
// skipped; interfaces and unions are skipped for the same reason as in
// FromSDL.
func FromIntrospection(body []byte) (*Document, error) {
	var res introspectionResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("schema: invalid introspection response: %w", err)
	}
	if res.Data == nil || res.Data.Schema == nil {
		return nil, fmt.Errorf("schema: introspection response has no data.__schema")
	}

	doc := &Document{}
	scalars := map[string]struct{}{}
	for _, scalar := range BuiltinScalars {
		scalars[scalar] = struct{}{}
	}

	for _, t := range res.Data.Schema.Types {
		if strings.HasPrefix(t.Name, "__") {
			continue
		}
		switch t.Kind {
		case "SCALAR":
			scalars[t.Name] = struct{}{}
		case "ENUM":
			e := Enum{Name: t.Name}
			for _, v := range t.EnumValues {
				e.Values = append(e.Values, v.Name)
			}
			doc.Enums = append(doc.Enums, e)
		case "OBJECT":
			obj, err := introspectedOutput(t)
			if err != nil {
				return nil, err
			}
			doc.Outputs = append(doc.Outputs, obj)
		case "INPUT_OBJECT":
			obj, err := introspectedInput(t)
			if err != nil {
				return nil, err
			}
			doc.Inputs = append(doc.Inputs, obj)
		case "INTERFACE", "UNION":
			// No codec shape.
		}
	}

	for name := range scalars {
		doc.Scalars = append(doc.Scalars, name)
	}
	sort.Strings(doc.Scalars)
	sort.Slice(doc.Outputs, func(i, j int) bool { return doc.Outputs[i].Name < doc.Outputs[j].Name })
	sort.Slice(doc.Inputs, func(i, j int) bool { return doc.Inputs[i].Name < doc.Inputs[j].Name })
	sort.Slice(doc.Enums, func(i, j int) bool { return doc.Enums[i].Name < doc.Enums[j].Name })
	return doc, nil
}

func introspectedOutput(t introspectionType) (Object, error) {
	obj := Object{Name: t.Name}
	for _, field := range t.Fields {
		output, err := convertTypeRef(field.Type, true)
		if err != nil {
			return Object{}, fmt.Errorf("schema: field %s.%s: %w", t.Name, field.Name, err)
		}
		if len(field.Args) == 0 {
			obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: output})
			continue
		}
		args := make([]Argument, 0, len(field.Args))
		for _, arg := range field.Args {
			argType, err := convertTypeRef(arg.Type, true)
			if err != nil {
				return Object{}, fmt.Errorf("schema: argument %s.%s(%s): %w", t.Name, field.Name, arg.Name, err)
			}
			typeName, err := renderTypeRef(arg.Type)
			if err != nil {
				return Object{}, fmt.Errorf("schema: argument %s.%s(%s): %w", t.Name, field.Name, arg.Name, err)
			}
			args = append(args, Argument{Name: arg.Name, Type: argType, TypeName: typeName})
		}
		obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: FuncOf(args, output)})
	}
	return obj, nil
}

func introspectedInput(t introspectionType) (Object, error) {
	obj := Object{Name: t.Name}
	for _, field := range t.InputFields {
		ft, err := convertTypeRef(field.Type, true)
		if err != nil {
			return Object{}, fmt.Errorf("schema: input field %s.%s: %w", t.Name, field.Name, err)
		}
		obj.Fields = append(obj.Fields, Field{Name: field.Name, Type: ft})
	}
	return obj, nil
}

// convertTypeRef maps an introspected type reference to the model. nullable
// tracks whether the current position may still receive a Nullable wrapper;
// a NON_NULL wrapper clears it for the type it wraps.
func convertTypeRef(ref *introspectionTypeRef, nullable bool) (*Type, error) {
	if ref == nil {
		return nil, fmt.Errorf("type reference nested too deep or missing")
	}
	wrap := func(t *Type) *Type {
		if nullable {
			return NullableOf(t)
		}
		return t
	}
	switch ref.Kind {
	case "NON_NULL":
		return convertTypeRef(ref.OfType, false)
	case "LIST":
		elem, err := convertTypeRef(ref.OfType, true)
		if err != nil {
			return nil, err
		}
		return wrap(ListOf(elem)), nil
	case "SCALAR":
		return wrap(ScalarType(ref.Name)), nil
	case "ENUM":
		return wrap(EnumType(ref.Name)), nil
	case "OBJECT", "INPUT_OBJECT", "INTERFACE", "UNION":
		return wrap(ObjectType(ref.Name)), nil
	default:
		return nil, fmt.Errorf("unsupported type kind %q", ref.Kind)
	}
}

// renderTypeRef reproduces the SDL spelling of a declared argument type.
func renderTypeRef(ref *introspectionTypeRef) (string, error) {
	if ref == nil {
		return "", fmt.Errorf("type reference nested too deep or missing")
	}
	switch ref.Kind {
	case "NON_NULL":
		inner, err := renderTypeRef(ref.OfType)
		if err != nil {
			return "", err
		}
		return inner + "!", nil
	case "LIST":
		inner, err := renderTypeRef(ref.OfType)
		if err != nil {
			return "", err
		}
		return "[" + inner + "]", nil
	default:
		return ref.Name, nil
	}
}

// ------------------ Response envelope ------------------

type introspectionResponse struct {
	Data *struct {
		Schema *introspectionSchema `json:"__schema"`
	} `json:"data"`
}

type introspectionSchema struct {
	Types []introspectionType `json:"types"`
}

type introspectionType struct {
	Kind        string                    `json:"kind"`
	Name        string                    `json:"name"`
	Fields      []introspectionField      `json:"fields"`
	InputFields []introspectionInputValue `json:"inputFields"`
	EnumValues  []introspectionEnumValue  `json:"enumValues"`
}

type introspectionField struct {
	Name string                    `json:"name"`
	Args []introspectionInputValue `json:"args"`
	Type *introspectionTypeRef     `json:"type"`
}

type introspectionInputValue struct {
	Name string                `json:"name"`
	Type *introspectionTypeRef `json:"type"`
}

type introspectionEnumValue struct {
	Name string `json:"name"`
}

type introspectionTypeRef struct {
	Kind   string                `json:"kind"`
	Name   string                `json:"name"`
	OfType *introspectionTypeRef `json:"ofType"`
}
