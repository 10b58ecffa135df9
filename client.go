package glacier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

// Client sends encoded requests to a GraphQL endpoint and decodes the
// responses. The codec walks themselves never block; all I/O happens here,
// governed by the caller's context.
type Client struct {
	url    string
	http   *http.Client
	header http.Header
	tracer trace.Tracer
}

type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client, e.g. to set timeouts
// or a custom transport.
func WithHTTPClient(h *http.Client) ClientOption { return func(c *Client) { c.http = h } }

// WithHeader adds a header to every outgoing request, e.g. an Authorization
// token.
func WithHeader(key, value string) ClientOption {
	return func(c *Client) { c.header.Set(key, value) }
}

// WithTracerProvider sets the provider used for request spans. The global
// provider is used otherwise.
func WithTracerProvider(tp trace.TracerProvider) ClientOption {
	return func(c *Client) { c.tracer = tp.Tracer("glacier") }
}

// NewClient creates a client for the endpoint at url.
func NewClient(url string, opts ...ClientOption) *Client {
	c := &Client{
		url:    url,
		http:   http.DefaultClient,
		header: http.Header{},
		tracer: otel.Tracer("glacier"),
	}
	for _, f := range opts {
		f(c)
	}
	return c
}

// Query encodes sel as a query operation, sends it, and decodes the result.
func (c *Client) Query(ctx context.Context, sel Sel, codec Codec) (map[string]any, error) {
	return c.Do(ctx, Query, sel, codec)
}

// Mutate encodes sel as a mutation operation, sends it, and decodes the
// result.
func (c *Client) Mutate(ctx context.Context, sel Sel, codec Codec) (map[string]any, error) {
	return c.Do(ctx, Mutation, sel, codec)
}

// response is the standard GraphQL response envelope.
type response struct {
	Data   any                 `json:"data"`
	Errors []ResponseErrorItem `json:"errors"`
}

// Do encodes sel against codec, posts the {query, variables} envelope, and
// decodes the response's data against the same codec. Errors the server
// returned surface as a *ResponseError; a malformed response surfaces as a
// codec *Error.
func (c *Client) Do(ctx context.Context, kind OperationKind, sel Sel, codec Codec) (map[string]any, error) {
	req, err := EncodeRequest(kind, sel, codec)
	if err != nil {
		return nil, err
	}

	ctx, span := c.tracer.Start(ctx, "graphql.request")
	defer span.End()
	span.SetAttributes(attribute.String("graphql.operation.type", string(kind)))

	res, err := c.post(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("graphql.error_count", len(res.Errors)))

	if len(res.Errors) > 0 {
		rerr := &ResponseError{Errors: res.Errors}
		span.RecordError(rerr)
		span.SetStatus(codes.Error, rerr.Error())
		return nil, rerr
	}

	decoded, err := DecodeObject(res.Data, codec)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return decoded, nil
}

func (c *Client) post(ctx context.Context, req *Request) (*response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	for k, vs := range c.header {
		for _, v := range vs {
			hreq.Header.Add(k, v)
		}
	}
	hreq.Header.Set("Content-Type", "application/json")

	hres, err := c.http.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hres.Body.Close()

	span := trace.SpanFromContext(ctx)
	span.SetAttributes(semconv.HTTPStatusCodeKey.Int(hres.StatusCode))

	resBody, err := io.ReadAll(hres.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if hres.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("glacier: endpoint returned status %d", hres.StatusCode)
	}
	var res response
	if err := json.Unmarshal(resBody, &res); err != nil {
		return nil, fmt.Errorf("invalid response JSON: %w", err)
	}
	return &res, nil
}
