// Package docs renders an endpoint catalog as human-readable Markdown or as
// an OpenAPI 3 document.
package docs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/statsapi/internal/endpoint"
)

// Format selects an output document.
type Format string

const (
	Markdown    Format = "markdown"
	OpenAPIYAML Format = "openapi"
	OpenAPIJSON Format = "openapi-json"
)

// Formats lists every supported format.
var Formats = []Format{Markdown, OpenAPIYAML, OpenAPIJSON}

// ParseFormat accepts a format name, case-insensitively. "md" and
// "openapi-yaml" are aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return Markdown, nil
	case "openapi", "openapi-yaml", "yaml":
		return OpenAPIYAML, nil
	case "openapi-json", "json":
		return OpenAPIJSON, nil
	default:
		return "", fmt.Errorf("docs: unknown format %q (want markdown, openapi or openapi-json)", s)
	}
}

// FileName is the file each format is written to.
func (f Format) FileName() string {
	switch f {
	case OpenAPIYAML:
		return "openapi.yaml"
	case OpenAPIJSON:
		return "openapi.json"
	default:
		return "ENDPOINTS.md"
	}
}

// Options controls Emit.
type Options struct {
	OutDir  string   // required; target directory
	Formats []Format // defaults to all formats
	Title   string   // OpenAPI info title
	Version string   // OpenAPI info version
	Force   bool     // overwrite existing files
	DryRun  bool     // don't write, only plan
}

// PlannedFile describes a file Emit intends to write.
type PlannedFile struct {
	RelPath string
	Size    int
	Mode    os.FileMode
}

// Result lists the planned files in name order.
type Result struct {
	Planned []PlannedFile
}

// Render produces one document.
func Render(ctx context.Context, c *endpoint.Catalog, f Format, opts Options) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("docs: nil catalog")
	}
	switch f {
	case Markdown:
		return RenderMarkdown(c), nil
	case OpenAPIYAML, OpenAPIJSON:
		doc, err := BuildOpenAPI(ctx, c, opts.Title, opts.Version)
		if err != nil {
			return nil, err
		}
		if f == OpenAPIJSON {
			return marshalJSON(doc)
		}
		return marshalYAML(doc)
	default:
		return nil, fmt.Errorf("docs: unknown format %q", f)
	}
}

// Emit renders the requested formats into OutDir. Existing files are only
// replaced with Force.
func Emit(ctx context.Context, c *endpoint.Catalog, opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("docs: OutDir is required")
	}
	formats := opts.Formats
	if len(formats) == 0 {
		formats = Formats
	}

	files := make(map[string][]byte, len(formats))
	for _, f := range formats {
		data, err := Render(ctx, c, f, opts)
		if err != nil {
			return nil, err
		}
		files[f.FileName()] = data
	}

	rels := make([]string, 0, len(files))
	for rel := range files {
		rels = append(rels, rel)
	}
	sort.Strings(rels)
	planned := make([]PlannedFile, 0, len(rels))
	for _, rel := range rels {
		planned = append(planned, PlannedFile{RelPath: rel, Size: len(files[rel]), Mode: 0o644})
	}

	if !opts.DryRun {
		if err := writeFiles(opts.OutDir, files, opts.Force); err != nil {
			return nil, err
		}
	}
	return &Result{Planned: planned}, nil
}

func writeFiles(outDir string, files map[string][]byte, force bool) error {
	abs, err := filepath.Abs(outDir)
	if err != nil {
		return fmt.Errorf("resolve out dir: %w", err)
	}
	if !force {
		for rel := range files {
			if _, err := os.Stat(filepath.Join(abs, rel)); err == nil {
				return fmt.Errorf("docs: %s already exists (use --force to overwrite)", filepath.Join(abs, rel))
			}
		}
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	for rel, content := range files {
		p := filepath.Join(abs, rel)
		tmp := p + ".tmp-" + time.Now().Format("20060102150405")
		if err := os.WriteFile(tmp, content, 0o644); err != nil {
			return fmt.Errorf("write temp %s: %w", rel, err)
		}
		if err := os.Rename(tmp, p); err != nil {
			_ = os.Remove(tmp)
			return fmt.Errorf("rename %s: %w", rel, err)
		}
	}
	return nil
}
