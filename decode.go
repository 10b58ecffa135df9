package glacier

// DecodeObject decodes a wire response object against a codec. Every key
// present in value must have a codec entry; keys the caller never selected
// are simply not present in a well-formed response, so an unknown key means
// the codec and the schema have drifted and decoding fails with
// ErrMissingDecoder naming the key. A non-object value fails with
// ErrExpectedObject.
func DecodeObject(value any, codec Codec) (map[string]any, error) {
	obj, ok := value.(map[string]any)
	if !ok || obj == nil {
		return nil, &Error{Code: ErrExpectedObject, Value: value}
	}
	result := make(map[string]any, len(obj))
	for name, fieldValue := range obj {
		field, ok := codec[name]
		if !ok {
			return nil, &Error{Code: ErrMissingDecoder, Name: name}
		}
		decoded, err := field.Decode(fieldValue)
		if err != nil {
			return nil, err
		}
		result[name] = decoded
	}
	return result, nil
}

// DecodeList decodes a wire array by applying elem to every element,
// preserving order and length. A non-array value fails with ErrExpectedArray.
func DecodeList(value any, elem DecodeFunc) ([]any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &Error{Code: ErrExpectedArray, Value: value}
	}
	result := make([]any, len(list))
	for i, item := range list {
		decoded, err := elem(item)
		if err != nil {
			return nil, err
		}
		result[i] = decoded
	}
	return result, nil
}

// DecodeNull passes an explicit null through unchanged and applies inner to
// anything else.
func DecodeNull(value any, inner DecodeFunc) (any, error) {
	if value == nil {
		return nil, nil
	}
	return inner(value)
}

// EncodeObject encodes an input object value field by field against an
// Encoder. Failure modes mirror DecodeObject: ErrExpectedObject for a
// non-object value, ErrMissingEncoder for a field the encoder has no entry
// for.
func EncodeObject(value any, enc Encoder) (map[string]any, error) {
	obj, ok := value.(map[string]any)
	if !ok || obj == nil {
		return nil, &Error{Code: ErrExpectedObject, Value: value}
	}
	result := make(map[string]any, len(obj))
	for name, fieldValue := range obj {
		encode, ok := enc[name]
		if !ok {
			return nil, &Error{Code: ErrMissingEncoder, Name: name}
		}
		encoded, err := encode(fieldValue)
		if err != nil {
			return nil, err
		}
		result[name] = encoded
	}
	return result, nil
}

// EncodeList encodes an input list by applying elem to every element.
func EncodeList(value any, elem EncodeFunc) ([]any, error) {
	list, ok := value.([]any)
	if !ok {
		return nil, &Error{Code: ErrExpectedArray, Value: value}
	}
	result := make([]any, len(list))
	for i, item := range list {
		encoded, err := elem(item)
		if err != nil {
			return nil, err
		}
		result[i] = encoded
	}
	return result, nil
}

// EncodeNull passes nil through unchanged and applies inner to anything else.
func EncodeNull(value any, inner EncodeFunc) (any, error) {
	if value == nil {
		return nil, nil
	}
	return inner(value)
}
