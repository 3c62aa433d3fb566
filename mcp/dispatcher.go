package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
)

// acceptedVersionPrefixes are the protocol year series this server
// negotiates. A client offering any version dated within these years gets
// the server's latest revision back.
var acceptedVersionPrefixes = []string{"2024-", "2025-"}

// Dispatcher routes JSON-RPC requests to MCP method implementations. It is
// stateless: no handshake ordering is enforced and no per-client state is
// kept, so a single Dispatcher serves all clients concurrently.
type Dispatcher struct {
	registry   *Registry
	serverInfo ImplementationInfo
	logger     *slog.Logger
}

// NewDispatcher creates a Dispatcher serving the given registry. A nil
// logger disables internal logging.
func NewDispatcher(registry *Registry, serverInfo ImplementationInfo, logger *slog.Logger) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		registry:   registry,
		serverInfo: serverInfo,
		logger:     logger,
	}
}

// Dispatch handles one request message and returns the response to send.
// Panics from tool handlers or method branches are recovered and converted
// to internal-error responses so a single bad call cannot take down the
// server.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *AnyMessage) (resp *Response) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("panic during dispatch",
				"method", msg.Method,
				"panic", fmt.Sprintf("%v", r))
			resp = NewErrorResponse(msg.ID, ErrorCodeInternalError, "internal error", nil)
		}
	}()

	switch msg.Method {
	case MethodInitialize:
		return d.handleInitialize(msg)
	case MethodToolsList:
		return d.handleToolsList(msg)
	case MethodToolsCall:
		return d.handleToolsCall(ctx, msg)
	case MethodPing:
		return d.handlePing(msg)
	default:
		return NewErrorResponse(msg.ID, ErrorCodeMethodNotFound,
			fmt.Sprintf("method not found: %s", msg.Method), nil)
	}
}

func (d *Dispatcher) handleInitialize(msg *AnyMessage) *Response {
	var req InitializeRequest
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &req); err != nil {
			return NewErrorResponse(msg.ID, ErrorCodeInvalidParams,
				fmt.Sprintf("invalid initialize params: %v", err), nil)
		}
	}

	if !versionSupported(req.ProtocolVersion) {
		return NewErrorResponse(msg.ID, ErrorCodeInvalidParams,
			fmt.Sprintf("unsupported protocol version: %q", req.ProtocolVersion), nil)
	}

	d.logger.Debug("client initialized",
		"client_name", req.ClientInfo.Name,
		"client_version", req.ClientInfo.Version,
		"protocol_version", req.ProtocolVersion)

	result := InitializeResult{
		ProtocolVersion: LatestProtocolVersion,
		Capabilities: ServerCapabilities{
			Tools: &struct {
				ListChanged bool `json:"listChanged"`
			}{ListChanged: false},
		},
		ServerInfo: d.serverInfo,
	}
	return mustResultResponse(msg.ID, result)
}

func (d *Dispatcher) handleToolsList(msg *AnyMessage) *Response {
	return mustResultResponse(msg.ID, ListToolsResult{Tools: d.registry.List()})
}

func (d *Dispatcher) handleToolsCall(ctx context.Context, msg *AnyMessage) *Response {
	var req CallToolRequest
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &req); err != nil {
			return NewErrorResponse(msg.ID, ErrorCodeInvalidParams,
				fmt.Sprintf("invalid tools/call params: %v", err), nil)
		}
	}

	if req.Name == "" {
		return NewErrorResponse(msg.ID, ErrorCodeInvalidParams, "tool name is required", nil)
	}

	handler, ok := d.registry.Lookup(req.Name)
	if !ok {
		return NewErrorResponse(msg.ID, ErrorCodeInvalidParams,
			fmt.Sprintf("unknown tool: %s", req.Name), nil)
	}

	result, err := handler(ctx, req.Arguments)
	if err != nil {
		d.logger.Warn("tool execution failed", "tool", req.Name, "error", err)
		return NewErrorResponse(msg.ID, ErrorCodeInternalError,
			fmt.Sprintf("tool execution failed: %v", err), nil)
	}
	if result == nil {
		result = &CallToolResult{Content: []ContentBlock{}}
	}
	return mustResultResponse(msg.ID, result)
}

func (d *Dispatcher) handlePing(msg *AnyMessage) *Response {
	return mustResultResponse(msg.ID, struct{}{})
}

func versionSupported(version string) bool {
	for _, prefix := range acceptedVersionPrefixes {
		if strings.HasPrefix(version, prefix) {
			return true
		}
	}
	return false
}

// mustResultResponse marshals locally constructed results, which cannot
// fail. The panic path is covered by Dispatch's recover.
func mustResultResponse(id *RequestID, result any) *Response {
	resp, err := NewResultResponse(id, result)
	if err != nil {
		panic(fmt.Sprintf("marshal response: %v", err))
	}
	return resp
}
