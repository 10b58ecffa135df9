package glacier_test

import (
	"testing"

	glacier "github.com/glacierql/glacier"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDecodeObject(t *testing.T) {
	codec := userCodec()

	t.Run("nested objects and lists", func(t *testing.T) {
		wire := map[string]any{
			"getUser": map[string]any{
				"name": "ada",
				"friends": []any{
					map[string]any{"email": "g@example.com"},
					map[string]any{"email": "b@example.com"},
				},
			},
			"version": "7",
		}

		got, err := glacier.DecodeObject(wire, codec)
		require.NoError(t, err)

		want := map[string]any{
			"getUser": map[string]any{
				"name": "ada",
				"friends": []any{
					map[string]any{"email": "g@example.com"},
					map[string]any{"email": "b@example.com"},
				},
			},
			"version": "7",
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("decoded value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := glacier.DecodeObject("not an object", codec)
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrExpectedObject, cerr.Code)
	})

	t.Run("nil is not an object", func(t *testing.T) {
		_, err := glacier.DecodeObject(nil, codec)
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrExpectedObject, cerr.Code)
	})

	t.Run("missing decoder names the extra field", func(t *testing.T) {
		wire := map[string]any{"version": "7", "extraField": true}
		_, err := glacier.DecodeObject(wire, codec)
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrMissingDecoder, cerr.Code)
		require.Equal(t, "extraField", cerr.Name)
	})
}

// TestDecodeNullableListComposition exercises the nullable-list-of-object
// wrapper stack the generator emits for a field typed [User]!-style.
func TestDecodeNullableListComposition(t *testing.T) {
	user := glacier.Codec{"name": {Decode: glacier.Identity().Decode}}
	decode := func(value any) (any, error) {
		return glacier.DecodeNull(value, func(value any) (any, error) {
			return glacier.DecodeList(value, func(value any) (any, error) {
				return glacier.DecodeObject(value, user)
			})
		})
	}

	t.Run("null passes through", func(t *testing.T) {
		got, err := decode(nil)
		require.NoError(t, err)
		require.Nil(t, got)
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := decode([]any{})
		require.NoError(t, err)
		require.Equal(t, []any{}, got)
	})

	t.Run("two elements in order", func(t *testing.T) {
		got, err := decode([]any{
			map[string]any{"name": "first"},
			map[string]any{"name": "second"},
		})
		require.NoError(t, err)
		want := []any{
			map[string]any{"name": "first"},
			map[string]any{"name": "second"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("decoded list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("not a list", func(t *testing.T) {
		_, err := decode(map[string]any{})
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrExpectedArray, cerr.Code)
	})

	t.Run("element failure aborts", func(t *testing.T) {
		_, err := decode([]any{map[string]any{"name": "ok"}, "broken"})
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrExpectedObject, cerr.Code)
	})
}

func TestEncodeObject(t *testing.T) {
	filter := glacier.Encoder{
		"nameLike": func(value any) (any, error) {
			return glacier.EncodeNull(value, glacier.Identity().Encode)
		},
		"limit": func(value any) (any, error) {
			return glacier.EncodeNull(value, glacier.Identity().Encode)
		},
	}

	t.Run("encodes present fields", func(t *testing.T) {
		got, err := glacier.EncodeObject(map[string]any{"nameLike": "a%", "limit": nil}, filter)
		require.NoError(t, err)
		want := map[string]any{"nameLike": "a%", "limit": nil}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("encoded value mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("missing encoder", func(t *testing.T) {
		_, err := glacier.EncodeObject(map[string]any{"nope": 1}, filter)
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrMissingEncoder, cerr.Code)
		require.Equal(t, "nope", cerr.Name)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := glacier.EncodeObject([]any{}, filter)
		var cerr *glacier.Error
		require.ErrorAs(t, err, &cerr)
		require.Equal(t, glacier.ErrExpectedObject, cerr.Code)
	})
}

func TestEncodeListAndNull(t *testing.T) {
	double := func(value any) (any, error) { return value.(int) * 2, nil }

	got, err := glacier.EncodeList([]any{1, 2, 3}, double)
	require.NoError(t, err)
	require.Equal(t, []any{2, 4, 6}, got)

	_, err = glacier.EncodeList("nope", double)
	var cerr *glacier.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, glacier.ErrExpectedArray, cerr.Code)

	v, err := glacier.EncodeNull(nil, double)
	require.NoError(t, err)
	require.Nil(t, v)

	v, err = glacier.EncodeNull(4, double)
	require.NoError(t, err)
	require.Equal(t, 8, v)
}
