package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/openmotif/motif"
	"github.com/openmotif/motif/pkg/bridge"
	"github.com/openmotif/motif/pkg/ports"
)

// Server exposes the bridge as an MCP server: one tool per bridge method, so
// an AI agent can inspect and reshape the primitive trees through its normal
// tool-calling interface.
type Server struct {
	handler   ports.RequestHandler
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance over the given request handler.
func NewServer(handler ports.RequestHandler) *Server {
	s := &Server{
		handler:   handler,
		mcpServer: server.NewMCPServer("motif-bridge", strings.TrimSpace(motif.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool(bridge.MethodGetComponentTree,
		mcp.WithDescription("Get the serialized primitive tree of a registered component."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered component name")),
	))

	s.addTool(mcp.NewTool(bridge.MethodGetComponentList,
		mcp.WithDescription("List the names of all registered components."),
	))

	s.addTool(mcp.NewTool(bridge.MethodModifyComponent,
		mcp.WithDescription("Merge prop modifications onto the node at a path."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered component name")),
		mcp.WithString("path", mcp.Required(), mcp.Description("JSON array of type tags from the root (e.g. [\"Container\",\"Button\"])")),
		mcp.WithString("modifications", mcp.Required(), mcp.Description("JSON object of shape {\"props\": {...}}")),
	))

	s.addTool(mcp.NewTool(bridge.MethodInsertComponent,
		mcp.WithDescription("Instantiate a primitive definition and insert it under the node at parentPath."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered component name")),
		mcp.WithString("parentPath", mcp.Required(), mcp.Description("JSON array of type tags addressing the parent")),
		mcp.WithString("primitive", mcp.Required(), mcp.Description("JSON object {type, props, children, renderStrategy}")),
		mcp.WithNumber("index", mcp.Description("Position among the parent's children (default: append)")),
	))

	s.addTool(mcp.NewTool(bridge.MethodRemoveComponent,
		mcp.WithDescription("Detach the node at a path from its parent. The root cannot be removed."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Registered component name")),
		mcp.WithString("path", mcp.Required(), mcp.Description("JSON array of type tags from the root")),
	))

	s.addTool(mcp.NewTool(bridge.MethodInvokeMotifHandler,
		mcp.WithDescription("Invoke a registered interaction handler by id."),
		mcp.WithString("handlerId", mcp.Required(), mcp.Description("Registered handler id")),
		mcp.WithString("args", mcp.Description("JSON array of positional arguments")),
	))
}

// addTool binds a tool whose name is a bridge method to the shared dispatch
// path. The tool name doubles as the envelope method, which keeps the
// binding a pure table.
func (s *Server) addTool(tool mcp.Tool) {
	method := tool.Name
	s.mcpServer.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.callMethod(ctx, method, request.GetArguments())
	})
}

func (s *Server) callMethod(ctx context.Context, method string, args map[string]any) (*mcp.CallToolResult, error) {
	params, err := envelopeParams(method, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", bridge.CodeInvalidParams, err)), nil
	}

	resp := s.handler.HandleRequest(ctx, bridge.Request{Method: method, Params: params})
	if !resp.Success {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %s", resp.Code, resp.Error)), nil
	}

	data, err := json.Marshal(resp.Data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("result encode failed: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// envelopeParams converts MCP tool arguments into envelope params. Complex
// values (paths, primitives, modifications, args) travel as JSON strings on
// the MCP side and are parsed here; scalars pass through untouched.
func envelopeParams(method string, args map[string]any) (map[string]any, error) {
	jsonFields := map[string][]string{
		bridge.MethodModifyComponent:    {"path", "modifications"},
		bridge.MethodInsertComponent:    {"parentPath", "primitive"},
		bridge.MethodRemoveComponent:    {"path"},
		bridge.MethodInvokeMotifHandler: {"args"},
	}

	params := make(map[string]any, len(args))
	for key, value := range args {
		params[key] = value
	}
	for _, field := range jsonFields[method] {
		raw, present := params[field]
		if !present {
			continue
		}
		str, isString := raw.(string)
		if !isString {
			return nil, fmt.Errorf("argument %q: expected a JSON string, got %T", field, raw)
		}
		var parsed any
		if err := json.Unmarshal([]byte(str), &parsed); err != nil {
			return nil, fmt.Errorf("argument %q: invalid JSON: %w", field, err)
		}
		params[field] = parsed
	}
	return params, nil
}

func (s *Server) registerResources() {
	// EXPOSE: motif://components
	s.mcpServer.AddResource(mcp.NewResource("motif://components", "Registered Component Names",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		resp := s.handler.HandleRequest(ctx, bridge.Request{
			Method: bridge.MethodGetComponentList,
			Params: map[string]any{},
		})
		if !resp.Success {
			return nil, fmt.Errorf("component list failed: %s", resp.Error)
		}
		jsonBytes, err := json.Marshal(resp.Data)
		if err != nil {
			return nil, err
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "motif://components",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
