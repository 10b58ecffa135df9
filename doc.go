// Package glacier implements the runtime half of a typed GraphQL client: a
// schema-shaped codec that turns selection values into query documents with
// extracted variables, and wire responses back into decoded values.
//
// # Model
//
// Three kinds of data drive the runtime:
//   - Scalars: per-scalar encode/decode pairs shared by every codec.
//   - Codecs: one Codec per object type, mapping field names to a decode
//     function, an optional lazy sub-codec, and optional argument encoders.
//     Codecs are produced by the glacier code generator from an SDL document
//     or a live endpoint's introspection result.
//   - Selections: caller-authored trees describing what to fetch. A selection
//     value has one of exactly three shapes, checked in this order: an int
//     sentinel (Pick) selects a scalar or enum leaf; a Call invokes a field
//     with arguments; a Sel nests an object sub-selection.
//
// EncodeRequest walks a selection against the root Codec and produces the
// outgoing query text plus a variable bag with names v1, v2, ... assigned in
// depth-first traversal order. DecodeObject walks a response value against
// the same Codec and produces the decoded result. Both are pure, synchronous
// traversals; every mismatch between selection, codec, and wire value aborts
// the call with a descriptive *Error.
//
// Client wraps the two walks around an HTTP POST of the standard
// {query, variables} envelope. Encoding and decoding never perform I/O
// themselves, so they are safe to call concurrently from any number of
// goroutines.
package glacier
