package main

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestRunUnknownCommand(t *testing.T) {
	err := run([]string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "frobnicate")
}

func TestRunMissingCommand(t *testing.T) {
	err := run(nil)
	require.Error(t, err)
}

func TestRunHelp(t *testing.T) {
	require.NoError(t, run([]string{"help"}))
	require.NoError(t, run([]string{"help", "generate"}))
	require.NoError(t, run([]string{"help", "introspect"}))
	require.Error(t, run([]string{"help", "frobnicate"}))
}

func TestGenerateFromFileProfile(t *testing.T) {
	dir := t.TempDir()
	sdlPath := filepath.Join(dir, "schema.graphql")
	require.NoError(t, os.WriteFile(sdlPath, []byte(`
		type Query {
			version: String!
		}
	`), 0644))

	configPath := filepath.Join(dir, "glacier.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"profiles": {"default": {"method": "file", "path": "`+sdlPath+`"}},
		"output": "`+filepath.Join(dir, "api")+`"
	}`), 0644))

	require.NoError(t, run([]string{"generate", "-config", configPath}))

	for _, name := range []string{"schema.go", "codec.go", "client.go"} {
		_, err := os.Stat(filepath.Join(dir, "api", name))
		require.NoError(t, err, name)
	}

	codec, err := os.ReadFile(filepath.Join(dir, "api", "codec.go"))
	require.NoError(t, err)
	require.Contains(t, string(codec), "package api")
	require.Contains(t, string(codec), "func (c *SchemaCodec) Query() glacier.Codec {")
}

func TestGenerateUnknownProfile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "glacier.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"profiles": {"default": {"method": "pipe-sdl"}},
		"output": "`+filepath.Join(dir, "api")+`"
	}`), 0644))

	err := run([]string{"generate", "-config", configPath, "-profile", "staging"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "staging")
}

func TestGenerateFromEndpointProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"__schema": {"types": [
			{"kind": "OBJECT", "name": "Query", "fields": [
				{"name": "version", "args": [], "type": {"kind": "NON_NULL", "name": null, "ofType": {"kind": "SCALAR", "name": "String", "ofType": null}}}
			], "inputFields": null, "enumValues": null}
		]}}}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "glacier.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{
		"profiles": {"default": {"method": "endpoint", "url": "`+srv.URL+`"}},
		"output": "`+filepath.Join(dir, "api")+`"
	}`), 0644))

	require.NoError(t, run([]string{"generate", "-config", configPath}))

	schemaSrc, err := os.ReadFile(filepath.Join(dir, "api", "schema.go"))
	require.NoError(t, err)
	require.Contains(t, string(schemaSrc), "String glacier.Scalar")
}

func TestIntrospectRequiresURL(t *testing.T) {
	err := run([]string{"introspect"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "-url")
}

func TestIntrospectSpan(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": {"__schema": {"types": []}}}`))
	}))
	defer srv.Close()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	before := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	require.NoError(t, run([]string{"introspect", "-url", srv.URL, "-otel-service", "ci"}))

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Equal(t, "graphql.introspection", spans[0].Name)
	require.Contains(t, spans[0].Attributes, attribute.String("graphql.endpoint", srv.URL))
}
