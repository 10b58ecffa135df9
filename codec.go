package glacier

// Field describes one field's shape within a Codec: how to decode its wire
// value, where its object sub-codec lives, and how to encode its arguments.
// Fields are built by the code generator and never mutated afterwards.
type Field struct {
	// Decode converts the field's wire value to its domain value.
	Decode DecodeFunc

	// Codec supplies the sub-codec for object-typed fields. It is a function
	// rather than a value so mutually recursive object types can reference
	// each other without a construction order.
	Codec func() Codec

	// Args maps argument names to their encoders for fields that accept
	// call-style arguments. Nil for plain fields.
	Args map[string]Arg
}

// Arg describes one argument a field accepts: the declared wire type name as
// it appears in the variable declaration header (for example "Int" or
// "[ID!]!") and the encoder for its value.
type Arg struct {
	Type   string
	Encode EncodeFunc
}

// Codec maps an object type's field names to their descriptors. One Codec
// exists per schema object type; it is read-only after construction.
type Codec map[string]Field

// Encoder maps an input object type's field names to value encoders. It is
// the input-side counterpart of Codec.
type Encoder map[string]EncodeFunc
