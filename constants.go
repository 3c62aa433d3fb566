package gate

// Endpoint paths registered by Handler.Routes.
const (
	// PathAuthorize is the OAuth authorization endpoint
	PathAuthorize = "/authorize"

	// PathToken is the OAuth token endpoint
	PathToken = "/token"

	// PathMCP is the bearer-gated MCP JSON-RPC endpoint
	PathMCP = "/mcp"

	// PathEvents is the bearer-gated SSE event stream endpoint
	PathEvents = "/events"

	// MetadataPathAuthorizationServer is the RFC 8414 discovery path
	MetadataPathAuthorizationServer = "/.well-known/oauth-authorization-server"

	// MetadataPathOpenIDConfiguration is an alias many clients probe for
	MetadataPathOpenIDConfiguration = "/.well-known/openid-configuration"

	// MetadataPathProtectedResource is the RFC 9728 discovery path
	MetadataPathProtectedResource = "/.well-known/oauth-protected-resource"
)

const tokenTypeBearer = "Bearer"
