package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mark3labs/statsapi"
	"github.com/mark3labs/statsapi/internal/docs"
)

// DocsConfig captures the docs command inputs after merging.
type DocsConfig struct {
	Formats []docs.Format
	Out     string
	Title   string
	Version string
	DryRun  bool
	Force   bool
	Verbose bool
}

var docsRunner = runDocs

func newDocsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Export the endpoint catalog as Markdown or OpenAPI",
		Long: "Export the endpoint catalog. Without --out the first format is printed to stdout; " +
			"with --out every format is written into that directory.",
		Example: strings.TrimSpace(`  statsapi docs --format markdown
  statsapi docs --format markdown,openapi --out ./docs --force`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			dc, err := newDocsConfig(cmd, cfg)
			if err != nil {
				return err
			}
			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			client, err := buildClient(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			return docsRunner(cmd.Context(), client, dc, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringSlice("format", nil, "Formats: markdown, openapi, openapi-json (default markdown on stdout, all with --out)")
	flags.String("out", "", "Output directory")
	flags.String("title", "", "OpenAPI info title")
	flags.String("api-version", "", "OpenAPI info version")
	flags.Bool("dry-run", false, "Preview planned outputs without writing files")
	flags.Bool("force", false, "Overwrite existing files")
	return cmd
}

func newDocsConfig(cmd *cobra.Command, cfg *Config) (*DocsConfig, error) {
	flags := cmd.Flags()
	dc := &DocsConfig{Out: cfg.DocsOut, Title: cfg.DocsTitle, Verbose: cfg.Verbose}
	dc.Version, _ = flags.GetString("api-version")
	dc.DryRun, _ = flags.GetBool("dry-run")
	dc.Force, _ = flags.GetBool("force")

	for _, name := range cfg.DocsFormats {
		f, err := docs.ParseFormat(name)
		if err != nil {
			return nil, newUsageError(err.Error())
		}
		dc.Formats = append(dc.Formats, f)
	}
	if dc.Out == "" && len(dc.Formats) == 0 {
		dc.Formats = []docs.Format{docs.Markdown}
	}
	if dc.DryRun && dc.Out == "" {
		return nil, newUsageError("docs: --dry-run requires --out")
	}
	return dc, nil
}

func runDocs(ctx context.Context, client *statsapi.Client, cfg *DocsConfig, stdout io.Writer) error {
	opts := docs.Options{
		OutDir:  cfg.Out,
		Formats: cfg.Formats,
		Title:   cfg.Title,
		Version: cfg.Version,
		Force:   cfg.Force,
		DryRun:  cfg.DryRun,
	}
	if cfg.Out == "" {
		data, err := docs.Render(ctx, client.Catalog(), cfg.Formats[0], opts)
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	res, err := docs.Emit(ctx, client.Catalog(), opts)
	if err != nil {
		return wrapOutputError(err, cfg.Out)
	}
	absOut := cfg.Out
	if ap, err := filepath.Abs(cfg.Out); err == nil {
		absOut = ap
	}
	verb := "Wrote"
	if cfg.DryRun {
		verb = "Planned writes to"
	}
	fmt.Fprintf(stdout, "%s %s (%d files):\n", verb, absOut, len(res.Planned))
	for _, p := range res.Planned {
		fmt.Fprintf(stdout, "- %s (%d bytes)\n", p.RelPath, p.Size)
	}
	return nil
}

func wrapOutputError(err error, outDir string) error {
	lower := strings.ToLower(err.Error())
	if strings.Contains(lower, "permission") || strings.Contains(lower, "read-only") ||
		strings.Contains(lower, "mkdir") || strings.Contains(lower, "already exists") {
		return newUsageError(fmt.Sprintf("output error for %s: %v\nHint: choose a different --out or use --force when appropriate.", outDir, err))
	}
	return err
}
