// Package mcpserver exposes the Stats API client as MCP tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mark3labs/statsapi"
)

const (
	serverName    = "statsapi-mcp"
	serverVersion = "0.1.0"
)

// RequestArgs is the input schema shared by statsapi_get and statsapi_url.
type RequestArgs struct {
	Endpoint string         `json:"endpoint" jsonschema:"Endpoint name, see statsapi_endpoints (required)"`
	Params   map[string]any `json:"params,omitempty" jsonschema:"Path and query parameters by name"`
	Force    bool           `json:"force,omitempty" jsonschema:"Pass undeclared parameters through and skip required checks"`
}

// NotesArgs is the input schema for statsapi_notes.
type NotesArgs struct {
	Endpoint string `json:"endpoint" jsonschema:"Endpoint name (required)"`
}

// EndpointsArgs is the input schema for statsapi_endpoints (no parameters).
type EndpointsArgs struct{}

// ToolInfo describes one registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Server holds the tool handlers.
type Server struct {
	client *statsapi.Client
	logger *slog.Logger
	srv    *mcp.Server
	tools  []ToolInfo
}

// New registers every tool on a fresh MCP server.
func New(client *statsapi.Client, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, nil)
	s := &Server{client: client, logger: logger, srv: srv}

	addTool(s, &mcp.Tool{
		Name:        "statsapi_get",
		Description: "Call an MLB Stats API endpoint and return the JSON response",
	}, s.get)
	addTool(s, &mcp.Tool{
		Name:        "statsapi_url",
		Description: "Resolve the request URL for an endpoint without calling it",
	}, s.url)
	addTool(s, &mcp.Tool{
		Name:        "statsapi_notes",
		Description: "Describe the parameters an endpoint accepts and requires",
	}, s.notes)
	addTool(s, &mcp.Tool{
		Name:        "statsapi_endpoints",
		Description: "List every endpoint name",
	}, s.endpoints)
	return s
}

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo { return s.tools }

// Run serves over stdin/stdout until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio", "tools", len(s.tools))
	return s.srv.Run(ctx, &mcp.StdioTransport{})
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.tools = append(s.tools, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.srv, tool, handler)
}

func (s *Server) get(ctx context.Context, _ *mcp.CallToolRequest, args RequestArgs) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Endpoint)
	if name == "" {
		return toolError(fmt.Errorf("endpoint is required")), nil, nil
	}
	body, err := s.client.Get(ctx, name, statsapi.FromMap(args.Params), callOptions(args)...)
	if err != nil {
		s.logger.Debug("statsapi_get failed", "endpoint", name, "err", err)
		return toolError(err), nil, nil
	}
	return toolJSON(json.MarshalIndent(body, "", "  "))
}

func (s *Server) url(ctx context.Context, _ *mcp.CallToolRequest, args RequestArgs) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Endpoint)
	if name == "" {
		return toolError(fmt.Errorf("endpoint is required")), nil, nil
	}
	req, err := s.client.ResolveContext(ctx, name, statsapi.FromMap(args.Params), callOptions(args)...)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(req.URL), nil, nil
}

func (s *Server) notes(_ context.Context, _ *mcp.CallToolRequest, args NotesArgs) (*mcp.CallToolResult, any, error) {
	text, err := s.client.Notes(strings.TrimSpace(args.Endpoint))
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(text), nil, nil
}

func (s *Server) endpoints(_ context.Context, _ *mcp.CallToolRequest, _ EndpointsArgs) (*mcp.CallToolResult, any, error) {
	return toolJSON(json.MarshalIndent(map[string]any{"endpoints": s.client.Endpoints()}, "", "  "))
}

func callOptions(args RequestArgs) []statsapi.CallOption {
	if args.Force {
		return []statsapi.CallOption{statsapi.Force()}
	}
	return nil
}

func toolJSON(res []byte, err error) (*mcp.CallToolResult, any, error) {
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolText(string(res)), nil, nil
}

func toolText(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
