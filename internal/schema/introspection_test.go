package schema_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/glacierql/glacier/internal/schema"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestFromIntrospection(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "introspection.json"))
	require.NoError(t, err)

	doc, err := schema.FromIntrospection(body)
	require.NoError(t, err)

	want := &schema.Document{
		Outputs: []schema.Object{
			{
				Name: "Query",
				Fields: []schema.Field{
					{Name: "getUser", Type: schema.FuncOf(
						[]schema.Argument{
							{Name: "id", Type: schema.NullableOf(schema.ScalarType("Int")), TypeName: "Int"},
						},
						schema.NullableOf(schema.ObjectType("User")),
					)},
					{Name: "users", Type: schema.FuncOf(
						[]schema.Argument{
							{Name: "filter", Type: schema.ObjectType("UserFilter"), TypeName: "UserFilter!"},
						},
						schema.ListOf(schema.ObjectType("User")),
					)},
					{Name: "version", Type: schema.ScalarType("String")},
				},
			},
			{
				Name: "User",
				Fields: []schema.Field{
					{Name: "name", Type: schema.ScalarType("String")},
					{Name: "email", Type: schema.NullableOf(schema.ScalarType("String"))},
					{Name: "role", Type: schema.EnumType("Role")},
					{Name: "friends", Type: schema.NullableOf(schema.ListOf(schema.ObjectType("User")))},
				},
			},
		},
		Inputs: []schema.Object{
			{
				Name: "UserFilter",
				Fields: []schema.Field{
					{Name: "role", Type: schema.NullableOf(schema.EnumType("Role"))},
					{Name: "createdAfter", Type: schema.NullableOf(schema.ScalarType("Date"))},
				},
			},
		},
		Enums: []schema.Enum{
			{Name: "Role", Values: []string{"ADMIN", "MEMBER"}},
		},
		Scalars: []string{"Boolean", "Date", "Float", "ID", "Int", "String"},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("Document mismatch (-want +got):\n%s", diff)
	}
}

// The SDL path and the introspection path must agree on the extracted model,
// so generated code does not depend on which source the profile used.
func TestIntrospectionMatchesSDL(t *testing.T) {
	body, err := os.ReadFile(filepath.Join("testdata", "introspection.json"))
	require.NoError(t, err)
	fromIntrospection, err := schema.FromIntrospection(body)
	require.NoError(t, err)

	fromSDL, err := schema.FromSDL(userSDL)
	require.NoError(t, err)

	if diff := cmp.Diff(fromSDL, fromIntrospection); diff != "" {
		t.Fatalf("extraction paths disagree (-sdl +introspection):\n%s", diff)
	}
}

func TestFromIntrospection_Invalid(t *testing.T) {
	_, err := schema.FromIntrospection([]byte(`not json`))
	require.Error(t, err)

	_, err = schema.FromIntrospection([]byte(`{"data": {}}`))
	require.Error(t, err)
	require.Contains(t, err.Error(), "__schema")
}
