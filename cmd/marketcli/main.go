package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"coinone-mcp/internal/config"
	"coinone-mcp/internal/domain"
	mcpserver "coinone-mcp/internal/mcp"
	"coinone-mcp/internal/provider"
	"coinone-mcp/internal/service"
	"coinone-mcp/internal/tui"

	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/trace/noop"
)

const defaultTimeout = 15 * time.Second

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
)

type toolCaller interface {
	Call(ctx context.Context, name string, rawArgs json.RawMessage) (any, error)
	Names() []string
}

type options struct {
	tool    string
	args    json.RawMessage
	raw     bool
	timeout time.Duration
}

func main() {
	loadEnvFunc()

	opts, err := parseOptions(os.Args[1:])
	if err != nil {
		log.Fatalf("parse options: %v", err)
	}

	cfg := loadConfigFunc()
	tracer := noop.NewTracerProvider().Tracer("marketcli")
	upstreamTimeout := time.Duration(cfg.UpstreamTimeoutSecs) * time.Second
	markets := service.NewMarketService(tracer, provider.NewCoinoneProvider(tracer, provider.ClientConfig{
		BaseURL: cfg.CoinoneBaseURL,
		Timeout: upstreamTimeout,
	}))
	charts := service.NewChartService(tracer, provider.NewBybitProvider(tracer, provider.ClientConfig{
		BaseURL: cfg.BybitBaseURL,
		Timeout: upstreamTimeout,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	if err := run(ctx, mcpserver.NewDispatcher(markets, charts), opts, os.Stdout); err != nil {
		log.Fatal(tui.ErrorStyle.Render(err.Error()))
	}
}

func run(ctx context.Context, tools toolCaller, opts options, out io.Writer) error {
	result, err := tools.Call(ctx, opts.tool, opts.args)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownTool) {
			return fmt.Errorf("%w (available: %s)", err, strings.Join(tools.Names(), ", "))
		}
		return err
	}

	var text string
	if opts.raw {
		b, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		text = string(b)
	} else if text, err = tui.Render(result); err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

// parseOptions accepts a tool name followed by either one JSON object or
// key=value pairs.
func parseOptions(args []string) (options, error) {
	fs := flag.NewFlagSet("marketcli", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: marketcli [-json] [-timeout 15s] <tool> [{json} | key=value ...]")
		fs.PrintDefaults()
	}

	raw := fs.Bool("json", false, "print the raw JSON result instead of a table")
	timeout := fs.Duration("timeout", defaultTimeout, "overall deadline for the call")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *timeout <= 0 {
		return options{}, fmt.Errorf("timeout must be > 0")
	}
	rest := fs.Args()
	if len(rest) == 0 || strings.TrimSpace(rest[0]) == "" {
		return options{}, fmt.Errorf("tool name is required")
	}

	toolArgs, err := buildArguments(rest[1:])
	if err != nil {
		return options{}, err
	}
	return options{
		tool:    strings.TrimSpace(rest[0]),
		args:    toolArgs,
		raw:     *raw,
		timeout: *timeout,
	}, nil
}

func buildArguments(parts []string) (json.RawMessage, error) {
	if len(parts) == 1 && strings.HasPrefix(strings.TrimSpace(parts[0]), "{") {
		b := []byte(strings.TrimSpace(parts[0]))
		if !json.Valid(b) {
			return nil, fmt.Errorf("arguments are not valid JSON")
		}
		return b, nil
	}

	args := make(map[string]string, len(parts))
	for _, p := range parts {
		k, v, ok := strings.Cut(p, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("expected key=value, got %q", p)
		}
		args[k] = strings.TrimSpace(v)
	}
	return json.Marshal(args)
}
