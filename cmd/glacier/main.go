package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	glacier "github.com/glacierql/glacier"
	"github.com/glacierql/glacier/internal/codegen"
	"github.com/glacierql/glacier/internal/config"
	"github.com/glacierql/glacier/internal/schema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const rootUsage = `glacier — typed GraphQL client codegen

USAGE:
  glacier <command> [flags]

COMMANDS:
  generate         Generate the client package from a configured schema source
  introspect       Print a live endpoint's introspection response as JSON
  help             Show help for any command
`

const generateUsage = `generate FLAGS:
  -config <file>            Path to the JSON configuration file (default: glacier.json)
  -profile <name>           Profile to use from the config file (default: default)
  -otel-endpoint <address>  OTLP gRPC collector to export trace spans to (optional)
  -otel-service <name>      Service name on exported spans (default: glacier)
`

const introspectUsage = `introspect FLAGS:
  -url <url>                GraphQL endpoint to introspect (required)
  -otel-endpoint <address>  OTLP gRPC collector to export trace spans to (optional)
  -otel-service <name>      Service name on exported spans (default: glacier)

The raw response is printed to stdout so it can be piped into a
"pipe-response" profile of glacier generate.
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("missing command")
	}
	cmd := args[0]
	cmdArgs := args[1:]
	switch cmd {
	case "generate":
		return cmdGenerate(cmdArgs)
	case "introspect":
		return cmdIntrospect(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(os.Stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Print(rootUsage)
		return nil
	}
	switch args[0] {
	case "generate":
		fmt.Print(generateUsage)
	case "introspect":
		fmt.Print(introspectUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func cmdGenerate(args []string) error {
	configPath := config.DefaultFile
	profileName := "default"
	var tracing tracingFlags

	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&configPath, "config", configPath, "Path to JSON configuration file")
	fs.StringVar(&profileName, "profile", profileName, "Profile to use from the config file")
	tracing.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, generateUsage)
		return err
	}

	stop, err := tracing.setup()
	if err != nil {
		return err
	}
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	profile, err := cfg.Profile(profileName)
	if err != nil {
		return err
	}

	doc, err := extract(profile)
	if err != nil {
		return err
	}

	results, err := codegen.Generate(doc, cfg.Output, codegen.Options{
		Package:   cfg.Package,
		Runtime:   cfg.Runtime,
		Indent:    cfg.Indent,
		LineBreak: cfg.LineBreak,
	})
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%s - %s\n", r.Name, r.Status)
	}
	return nil
}

func extract(profile config.Profile) (*schema.Document, error) {
	switch profile.Method {
	case config.MethodEndpoint:
		body, err := introspect(profile.URL)
		if err != nil {
			return nil, err
		}
		return schema.FromIntrospection(body)
	case config.MethodFile:
		sdl, err := os.ReadFile(profile.Path)
		if err != nil {
			return nil, fmt.Errorf("read schema file: %w", err)
		}
		return schema.FromSDL(string(sdl))
	case config.MethodPipeResponse:
		body, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return schema.FromIntrospection(body)
	case config.MethodPipeSDL:
		sdl, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return schema.FromSDL(string(sdl))
	}
	return nil, fmt.Errorf("unsupported profile method %q", profile.Method)
}

func cmdIntrospect(args []string) error {
	url := ""
	var tracing tracingFlags
	fs := flag.NewFlagSet("introspect", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&url, "url", url, "GraphQL endpoint to introspect")
	tracing.register(fs)
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(os.Stderr, introspectUsage)
		return err
	}
	if url == "" {
		fmt.Fprint(os.Stderr, introspectUsage)
		return fmt.Errorf("-url is required")
	}

	stop, err := tracing.setup()
	if err != nil {
		return err
	}
	defer stop()

	body, err := introspect(url)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(body)
	return err
}

// tracingFlags carries the span export options shared by the networked
// subcommands.
type tracingFlags struct {
	endpoint string
	service  string
}

func (t *tracingFlags) register(fs *flag.FlagSet) {
	t.service = "glacier"
	fs.StringVar(&t.endpoint, "otel-endpoint", t.endpoint, "OTLP gRPC collector to export trace spans to")
	fs.StringVar(&t.service, "otel-service", t.service, "Service name on exported spans")
}

func (t *tracingFlags) setup() (stop func(), err error) {
	shutdown, err := glacier.SetupTracing(context.Background(), t.endpoint, t.service)
	if err != nil {
		return nil, err
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			log.Printf("flush trace spans: %v", err)
		}
	}, nil
}

// introspect posts the introspection query and returns the raw response
// body.
func introspect(url string) ([]byte, error) {
	ctx, span := otel.Tracer("glacier").Start(context.Background(), "graphql.introspection")
	defer span.End()
	span.SetAttributes(attribute.String("graphql.endpoint", url))

	payload, err := json.Marshal(map[string]string{"query": schema.IntrospectionQuery})
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", url, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("introspect %s: %w", url, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("introspect %s: endpoint returned status %d", url, res.StatusCode)
	}
	return body, nil
}
