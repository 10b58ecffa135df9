package glacier_test

import (
	"strconv"
	"testing"
	"time"

	glacier "github.com/glacierql/glacier"
	"github.com/stretchr/testify/require"
)

func dateScalar() glacier.Scalar {
	return glacier.ScalarOf(
		func(d time.Time) (string, error) { return d.Format(time.RFC3339), nil },
		func(w string) (time.Time, error) { return time.Parse(time.RFC3339, w) },
	)
}

func bigIDScalar() glacier.Scalar {
	return glacier.ScalarOf(
		func(d int64) (string, error) { return strconv.FormatInt(d, 10), nil },
		func(w string) (int64, error) { return strconv.ParseInt(w, 10, 64) },
	)
}

func TestScalarRoundTrip(t *testing.T) {
	scalars := glacier.Scalars{
		"Date":  dateScalar(),
		"BigID": bigIDScalar(),
	}
	domain := map[string]any{
		"Date":  time.Date(2024, 5, 17, 9, 30, 0, 0, time.UTC),
		"BigID": int64(1 << 40),
	}

	for name, value := range domain {
		sc, ok := scalars.Scalar(name)
		require.True(t, ok, name)

		wire, err := sc.Encode(value)
		require.NoError(t, err, name)
		back, err := sc.Decode(wire)
		require.NoError(t, err, name)
		require.Equal(t, value, back, name)
	}
}

func TestScalarOfRejectsWrongType(t *testing.T) {
	sc := bigIDScalar()

	_, err := sc.Encode("not an int64")
	var cerr *glacier.Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, glacier.ErrWrongScalarType, cerr.Code)

	_, err = sc.Decode(12.5)
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, glacier.ErrWrongScalarType, cerr.Code)
}

func TestPassthrough(t *testing.T) {
	scalars := glacier.Passthrough()
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID"} {
		sc, ok := scalars.Scalar(name)
		require.True(t, ok, name)

		v, err := sc.Encode("unchanged")
		require.NoError(t, err)
		require.Equal(t, "unchanged", v)
		v, err = sc.Decode(42)
		require.NoError(t, err)
		require.Equal(t, 42, v)
	}

	_, ok := scalars.Scalar("Date")
	require.False(t, ok)
}
