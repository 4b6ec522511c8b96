package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mark3labs/statsapi"
	"github.com/mark3labs/statsapi/internal/endpoint"
)

// Execute runs the statsapi CLI.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// NewRootCmd constructs the root command so tests can exercise the CLI easily.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "statsapi",
		Short: "Query the MLB Stats API",
		Long: "statsapi resolves and calls MLB Stats API endpoints from a declarative endpoint catalog, " +
			"renders common summaries and exports the catalog as Markdown or OpenAPI.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringP("config", "c", "", "Config file path (YAML or JSON)")
	pf.BoolP("verbose", "v", false, "Enable verbose logging output")
	pf.String("catalog", "", "Path or URL of an endpoint catalog (defaults to the embedded catalog)")
	pf.String("base-url", "", "Override the catalog base URL")
	pf.Duration("timeout", 0, "HTTP timeout (default 30s)")
	pf.String("user-agent", "", "User-Agent header sent with requests")
	pf.StringP("output", "o", "", "Output format: json, yaml or text")

	for _, sub := range []*cobra.Command{
		newGetCmd(),
		newURLCmd(),
		newNotesCmd(),
		newEndpointsCmd(),
		newMetaCmd(),
		newDocsCmd(),
		newScheduleCmd(),
		newLinescoreCmd(),
		newBoxscoreCmd(),
		newStandingsCmd(),
		newRosterCmd(),
		newLeadersCmd(),
		newMCPCmd(),
		newInitCmd(),
	} {
		cmd.AddCommand(sub)
	}

	// Convert Cobra flag errors (like unknown flags) into friendly usage errors
	// that also show the command's help text.
	setFlagErrorFunc(cmd)
	return cmd
}

func setFlagErrorFunc(cmd *cobra.Command) {
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return newUsageError(fmt.Sprintf("%v\n\n%s", err, c.UsageString()))
	})
	for _, sub := range cmd.Commands() {
		setFlagErrorFunc(sub)
	}
}

// session bundles what a command needs after config resolution.
type session struct {
	cfg    *Config
	logger *slog.Logger
	client *statsapi.Client
	out    io.Writer
}

func newSession(cmd *cobra.Command) (*session, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
	client, err := buildClient(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{cfg: cfg, logger: logger, client: client, out: cmd.OutOrStdout()}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func buildClient(ctx context.Context, cfg *Config, logger *slog.Logger) (*statsapi.Client, error) {
	opts := []statsapi.Option{statsapi.WithLogger(logger)}
	if cfg.UserAgent != "" {
		opts = append(opts, statsapi.WithUserAgent(cfg.UserAgent))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, statsapi.WithTimeout(cfg.Timeout))
	}
	switch {
	case cfg.Catalog != "":
		c, err := endpoint.Load(ctx, cfg.Catalog, endpoint.WithBaseURL(cfg.BaseURL))
		if err != nil {
			return nil, friendlyError(err)
		}
		logger.Debug("catalog loaded", "source", cfg.Catalog, "endpoints", c.Len())
		opts = append(opts, statsapi.WithCatalog(c))
	case cfg.BaseURL != "":
		opts = append(opts, statsapi.WithBaseURL(cfg.BaseURL))
	}
	client, err := statsapi.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}

func (s *session) print(v any) error {
	return writeValue(s.out, s.cfg.Output, v)
}
