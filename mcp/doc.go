// Package mcp implements the JSON-RPC 2.0 message envelope and the MCP
// tool-invocation protocol served behind bearer authentication.
//
// The package has two layers. The envelope layer (AnyMessage, Response,
// RequestID, ErrorCode) validates and represents raw JSON-RPC 2.0 messages.
// The protocol layer (Registry, Dispatcher) implements the MCP methods the
// server supports: initialize, tools/list, tools/call, and ping. The
// Dispatcher is stateless; every message is handled on its own with no
// session tracking, so any authenticated client may call any method in any
// order.
package mcp
