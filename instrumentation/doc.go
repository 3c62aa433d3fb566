// Package instrumentation provides OpenTelemetry (OTEL) instrumentation for mcp-gate.
//
// This package enables observability across the server's layers through:
// - Metrics: Counters, histograms, and gauges for grant, token, and dispatch operations
// - Traces: Spans for request flows across components
//
// # Quick Start
//
//	import "github.com/giantswarm/mcp-gate/instrumentation"
//
//	inst, err := instrumentation.New(instrumentation.Config{
//		ServiceName:    "my-gate",
//		ServiceVersion: "1.0.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer inst.Shutdown(context.Background())
//
// # Available Metrics
//
// HTTP Layer:
//   - gate.http.requests.total{method, endpoint, status} - Total HTTP requests
//   - gate.http.request.duration{endpoint} - Request duration in milliseconds
//
// Credential Flows:
//   - gate.grants.issued{client_id} - Authorization grants issued
//   - gate.grants.redeemed{client_id} - Grants redeemed for tokens
//   - gate.grants.rejected{reason} - Redemption attempts rejected
//   - gate.tokens.issued{client_id} - Access tokens issued
//   - gate.tokens.verified - Successful bearer verifications
//   - gate.tokens.auth_failures{endpoint} - Bearer authentication failures
//
// Security:
//   - gate.rate_limit.exceeded{limiter_type} - Rate limit violations
//   - gate.pkce.validation_failed{method} - PKCE validation failures
//   - gate.audit.events.total{event_type} - Audit events emitted
//
// Protocol Dispatch:
//   - gate.mcp.dispatch.total{rpc_method, error} - Messages dispatched
//   - gate.mcp.dispatch.duration{rpc_method} - Dispatch duration in milliseconds
//
// Storage:
//   - gate.storage.operation.total{operation, result} - Storage operations
//   - gate.storage.operation.duration{operation} - Operation duration in milliseconds
//   - gate.storage.grants.count - Pending grants currently stored
//
// # Privacy
//
// Client IP addresses may be PII. Set Config.LogClientIPs to false to keep
// them out of traces and metrics; call sites consult ShouldLogClientIPs.
//
// # Zero Overhead When Disabled
//
// With Enabled set to false the package wires no-op providers, so all
// recording calls compile to near-nothing and no data leaves the process.
package instrumentation
