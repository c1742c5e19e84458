package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/deploymenttheory/go-graph-explorer/cache"
	"github.com/deploymenttheory/go-graph-explorer/explorer"
	"github.com/deploymenttheory/go-graph-explorer/headers"
	"github.com/deploymenttheory/go-graph-explorer/httpclient"
	"github.com/deploymenttheory/go-graph-explorer/msgraph"
	"github.com/deploymenttheory/go-graph-explorer/response"
	"github.com/deploymenttheory/go-graph-explorer/version"
	"github.com/peterbourgon/ff/v3"
)

// envVarPrefix matches the prefix httpclient.LoadConfigFromEnv reads, so flags and client
// settings can live in the same .env file.
const envVarPrefix = "GRAPH_EXPLORER"

// Options contains program options that can be set via command-line flags or environment variables.
type Options struct {
	EnvFile        string
	ConfigFile     string
	Token          string
	GraphVersion   string
	URL            string
	Method         string
	Body           string
	Headers        string
	Out            string
	LastCallFailed bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "graphexplorer: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) < 1 {
		return errors.New("missing command. Available commands: resolve, query, metadata, version")
	}

	switch args[0] {
	case "resolve":
		return runResolve(ctx, args[1:], stdout)
	case "query":
		return runQuery(ctx, args[1:], stdout)
	case "metadata":
		return runMetadata(ctx, args[1:], stdout)
	case "version":
		fmt.Fprintln(stdout, version.UserAgent())
		return nil
	default:
		return fmt.Errorf("unknown command %q. Available commands: resolve, query, metadata, version", args[0])
	}
}

func commonFlags(name string, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet("graphexplorer "+name, flag.ContinueOnError)
	fs.StringVar(&opts.EnvFile, "env-file", "", "Path to a .env file with GRAPH_EXPLORER_* client settings (default: ./.env if present)")
	fs.StringVar(&opts.ConfigFile, "config", "", "Path to a JSON client configuration file, used instead of the environment")
	fs.StringVar(&opts.Token, "token", "", "Bearer token for authenticated requests")
	fs.StringVar(&opts.GraphVersion, "graph-version", msgraph.DefaultVersion, "Graph API version (v1.0 or beta)")
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := ff.Parse(fs, args, ff.WithEnvVarPrefix(envVarPrefix)); err != nil {
		return fmt.Errorf("flag error: %w", err)
	}
	return nil
}

// loadConfig reads the client configuration from -config when given, otherwise from the environment.
func loadConfig(opts Options) (*httpclient.ClientConfig, error) {
	if opts.ConfigFile != "" {
		return httpclient.LoadConfigFromFile(opts.ConfigFile)
	}

	var envFiles []string
	if opts.EnvFile != "" {
		envFiles = append(envFiles, opts.EnvFile)
	}
	return httpclient.LoadConfigFromEnv(envFiles...)
}

// newSession builds the client and a session on the requested version with its metadata loaded.
func newSession(ctx context.Context, opts Options) (*explorer.Session, *httpclient.Client, error) {
	config, err := loadConfig(opts)
	if err != nil {
		return nil, nil, err
	}

	client, err := httpclient.BuildClient(*config, true)
	if err != nil {
		return nil, nil, err
	}
	if opts.Token != "" {
		client.SetAuthToken(opts.Token)
	}

	session, err := explorer.NewSession(cache.NewMemoryStore(), client.Logger, client.APIHandler)
	if err != nil {
		return nil, nil, err
	}
	session.SelectedVersion = opts.GraphVersion
	session.Text = client.APIHandler.ServiceRoot(opts.GraphVersion)

	if err := session.LoadMetadata(ctx, client); err != nil {
		return nil, nil, err
	}
	return session, client, nil
}

// setURL accepts either a full URL or a path below the version root.
func setURL(session *explorer.Session, target string) {
	if strings.Contains(target, "://") {
		session.Text = target
		return
	}
	session.HandleQueryString("", "", target, false)
}

func runResolve(ctx context.Context, args []string, stdout io.Writer) error {
	var opts Options
	fs := commonFlags("resolve", &opts)
	fs.StringVar(&opts.URL, "url", "", "URL or path below the version root to resolve")
	fs.BoolVar(&opts.LastCallFailed, "last-call-failed", false, "Resolve as if the previous call had failed")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	session, _, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	setURL(session, opts.URL)

	res := session.SetEntity(!opts.LastCallFailed)
	if !res.Resolved() {
		fmt.Fprintf(stdout, "url: %s\nentity: <unresolved>\n", session.Text)
		return nil
	}

	fmt.Fprintf(stdout, "url: %s\n", session.Text)
	fmt.Fprintf(stdout, "entity: %s\n", res.Entity.Name)
	fmt.Fprintf(stdout, "entity_set: %t\n", res.Entity.IsEntitySet)
	fmt.Fprintf(stdout, "is_id: %t\n", res.IsID)
	if options := session.URLOptions(); len(options) > 0 {
		fmt.Fprintf(stdout, "options: %s\n", strings.Join(options, ", "))
	}
	return nil
}

func runQuery(ctx context.Context, args []string, stdout io.Writer) error {
	var opts Options
	fs := commonFlags("query", &opts)
	fs.StringVar(&opts.URL, "url", "", "URL or path below the version root to call")
	fs.StringVar(&opts.Method, "method", string(httpclient.VerbGet), "HTTP method: GET, POST, PATCH, PUT or DELETE")
	fs.StringVar(&opts.Body, "body", "", "Request body for POST, PATCH and PUT")
	fs.StringVar(&opts.Headers, "headers", "", "Request headers, one \"Key: value\" per line")
	fs.StringVar(&opts.Out, "out", "", "File to write image responses to")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	verb, err := httpclient.ParseVerb(opts.Method)
	if err != nil {
		return err
	}

	session, client, err := newSession(ctx, opts)
	if err != nil {
		return err
	}
	session.HandleQueryString(string(verb), "", "", client.IsAuthenticated())
	setURL(session, opts.URL)
	session.RequestBody = opts.Body
	if opts.Headers != "" {
		session.RequestHeaders = opts.Headers
	} else if verb.HasBody() && session.RequestHeaders == "" {
		session.RequestHeaders = headers.DefaultRequestHeaders
	}

	display, err := session.Run(ctx, client)
	if display == nil {
		return err
	}

	fmt.Fprintf(stdout, "%s\n", display.Headers)
	if display.Kind == response.KindImage {
		if opts.Out == "" {
			fmt.Fprintf(stdout, "<%d bytes of %s, use -out to save>\n", len(display.Image), display.MediaType)
		} else if writeErr := os.WriteFile(opts.Out, display.Image, 0o644); writeErr != nil {
			return fmt.Errorf("failed to write image: %w", writeErr)
		}
	} else {
		fmt.Fprintln(stdout, display.Body)
	}
	fmt.Fprintf(stdout, "duration: %s\n", display.Duration)
	return err
}

func runMetadata(ctx context.Context, args []string, stdout io.Writer) error {
	var opts Options
	fs := commonFlags("metadata", &opts)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	session, _, err := newSession(ctx, opts)
	if err != nil {
		return err
	}

	sets, _ := cache.EntitySets(session.Store, session.SelectedVersion)
	types, _ := cache.EntityTypes(session.Store, session.SelectedVersion)
	fmt.Fprintf(stdout, "entity sets (%d): %s\n", len(sets), strings.Join(sortedNames(sets), ", "))
	fmt.Fprintf(stdout, "entity types: %d\n", len(types))
	return nil
}

func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
