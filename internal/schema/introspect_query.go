package schema

// IntrospectionQuery is the document sent to a live endpoint to extract its
// schema. It asks for exactly the shape FromIntrospection parses; the TypeRef
// fragment unwraps up to seven nesting levels, enough for any practical
// combination of list and non-null wrappers.
const IntrospectionQuery = `query IntrospectionQuery {
  __schema {
    types {
      kind
      name
      fields(includeDeprecated: true) {
        name
        args {
          name
          type { ...TypeRef }
        }
        type { ...TypeRef }
      }
      inputFields {
        name
        type { ...TypeRef }
      }
      enumValues(includeDeprecated: true) {
        name
      }
    }
  }
}
fragment TypeRef on __Type {
  kind
  name
  ofType {
    kind
    name
    ofType {
      kind
      name
      ofType {
        kind
        name
        ofType {
          kind
          name
          ofType {
            kind
            name
            ofType {
              kind
              name
              ofType {
                kind
                name
              }
            }
          }
        }
      }
    }
  }
}`
