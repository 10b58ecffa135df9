package glacier

import "reflect"

// DecodeFunc converts a wire value into its domain representation.
type DecodeFunc func(value any) (any, error)

// EncodeFunc converts a domain value into its wire representation.
type EncodeFunc func(value any) (any, error)

// Scalar holds the wire/domain conversion pair for one GraphQL scalar type.
// Scalars are constructed once at client setup and shared by all codecs.
type Scalar struct {
	Encode EncodeFunc
	Decode DecodeFunc
}

// ScalarOf builds a Scalar from typed conversion functions. The type
// parameters pin the wire and domain representations at the boundary; the
// returned Scalar fails with a WrongScalarType error when handed a value of
// any other dynamic type.
func ScalarOf[W, D any](encode func(D) (W, error), decode func(W) (D, error)) Scalar {
	return Scalar{
		Encode: func(value any) (any, error) {
			d, ok := value.(D)
			if !ok {
				return nil, &Error{Code: ErrWrongScalarType, Name: typeName[D](), Value: value}
			}
			return encode(d)
		},
		Decode: func(value any) (any, error) {
			w, ok := value.(W)
			if !ok {
				return nil, &Error{Code: ErrWrongScalarType, Name: typeName[W](), Value: value}
			}
			return decode(w)
		},
	}
}

// Identity returns a Scalar that passes values through unchanged in both
// directions. Useful for scalars whose wire and domain forms coincide.
func Identity() Scalar {
	pass := func(value any) (any, error) { return value, nil }
	return Scalar{Encode: pass, Decode: pass}
}

// Scalars maps scalar type names to their conversion pairs. It validates
// nothing at construction time; lookups simply return the pair unchanged.
type Scalars map[string]Scalar

// Scalar returns the conversion pair registered under name. The boolean
// reports whether the registry knows the name.
func (s Scalars) Scalar(name string) (Scalar, bool) {
	sc, ok := s[name]
	return sc, ok
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// Passthrough returns a registry with identity conversions for the five
// built-in GraphQL scalars. Generated client stubs start from this and
// override or extend entries for custom scalars.
func Passthrough() Scalars {
	return Scalars{
		"Int":     Identity(),
		"Float":   Identity(),
		"String":  Identity(),
		"Boolean": Identity(),
		"ID":      Identity(),
	}
}
