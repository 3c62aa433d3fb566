// Package gate implements a self-issuing OAuth 2.1 authorization server
// paired with a stateless MCP tool dispatcher.
//
// The package is the HTTP adapter layer: it parses requests, enforces
// rate limits and bearer authentication, and delegates to the server,
// mcp, token and events subpackages for the actual flow logic. Embedders
// construct a Handler and mount its routes on their own mux:
//
//	store := memory.New()
//	srv, _ := server.New(store, &server.Config{Issuer: issuer, Secret: secret}, logger)
//	registry := mcp.NewRegistry()
//	dispatcher := mcp.NewDispatcher(registry, mcp.ImplementationInfo{Name: "mcp-gate"}, logger)
//	handler, _ := gate.NewHandler(srv, dispatcher, &gate.Config{Issuer: issuer})
//	mux := http.NewServeMux()
//	handler.Routes(mux)
//
// The server issues its own HS256 access tokens; there is no upstream
// identity provider, no refresh tokens and no client registration.
package gate
