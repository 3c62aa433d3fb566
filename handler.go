package gate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-gate/events"
	"github.com/giantswarm/mcp-gate/instrumentation"
	"github.com/giantswarm/mcp-gate/mcp"
	"github.com/giantswarm/mcp-gate/security"
	"github.com/giantswarm/mcp-gate/server"
	"github.com/giantswarm/mcp-gate/token"
)

// maxMCPBodyBytes caps the size of a single JSON-RPC request body.
const maxMCPBodyBytes = 1 << 20

// Handler is the HTTP adapter for the authorization server and the MCP
// dispatcher. It handles HTTP requests and delegates to the server and
// dispatcher for business logic.
type Handler struct {
	server      *server.Server
	dispatcher  *mcp.Dispatcher
	verifier    *token.Verifier
	broker      *events.Broker
	rateLimiter *security.RateLimiter
	config      *Config
	logger      *slog.Logger
	tracer      trace.Tracer
}

// NewHandler creates the HTTP handler. The server carries the flow logic
// and signing identity; the dispatcher carries the tool registry.
func NewHandler(srv *server.Server, dispatcher *mcp.Dispatcher, config *Config) (*Handler, error) {
	if srv == nil {
		return nil, fmt.Errorf("server is required")
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("dispatcher is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	config.applyDefaults()

	h := &Handler{
		server:     srv,
		dispatcher: dispatcher,
		verifier: token.NewVerifier(srv.Config.Secret, srv.Config.Issuer,
			srv.Config.Audience, config.Logger),
		broker: events.NewBroker(),
		config: config,
		logger: config.Logger,
	}

	if config.RateLimit.Rate > 0 {
		h.rateLimiter = security.NewRateLimiter(config.RateLimit.Rate, config.RateLimit.Burst, config.Logger)
	}

	if config.EnableAuditLogging && srv.Auditor == nil {
		srv.SetAuditor(security.NewAuditor(config.Logger, true))
	}

	// Initialize tracer if instrumentation is enabled
	if srv.Instrumentation != nil {
		h.tracer = srv.Instrumentation.Tracer("http")
	}

	return h, nil
}

// Broker returns the event broker. Embedders publish domain events through
// it; authenticated clients receive them on the SSE endpoint.
func (h *Handler) Broker() *events.Broker {
	return h.broker
}

// Close releases the handler's background resources.
func (h *Handler) Close() {
	if h.rateLimiter != nil {
		h.rateLimiter.Stop()
	}
	h.broker.Close()
}

// Routes registers all endpoints on the given mux.
func (h *Handler) Routes(mux *http.ServeMux) {
	mux.Handle(PathAuthorize, security.RequestIDMiddleware(http.HandlerFunc(h.ServeAuthorization)))
	mux.Handle(PathToken, security.RequestIDMiddleware(http.HandlerFunc(h.ServeToken)))
	mux.HandleFunc(MetadataPathAuthorizationServer, h.ServeAuthorizationServerMetadata)
	mux.HandleFunc(MetadataPathOpenIDConfiguration, h.ServeAuthorizationServerMetadata)
	mux.HandleFunc(MetadataPathProtectedResource, h.ServeProtectedResourceMetadata)
	mux.Handle(PathMCP, security.RequestIDMiddleware(h.RequireAuth(http.HandlerFunc(h.ServeMCP))))
	mux.Handle(PathEvents, security.RequestIDMiddleware(h.RequireAuth(http.HandlerFunc(h.ServeEvents))))
}

// ServeAuthorization handles the OAuth authorization endpoint.
//
// Errors in the authorization parameters are delivered as 302 redirects
// back to the client's redirect_uri with an error query parameter, per
// RFC 6749 Section 4.1.2.1. When the redirect_uri itself is missing or
// unparseable there is nowhere safe to redirect, so the error is returned
// as a 400 JSON body instead.
func (h *Handler) ServeAuthorization(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	ctx := r.Context()
	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.Start(ctx, "gate.http.authorization")
		defer span.End()
	}

	if r.Method != http.MethodGet {
		h.recordHTTPMetrics("authorization", r.Method, http.StatusMethodNotAllowed, startTime)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.setCORSHeaders(w)

	clientIP := h.clientIP(r)
	if h.checkIPRateLimit(w, r, clientIP) {
		h.recordHTTPMetrics("authorization", r.Method, http.StatusTooManyRequests, startTime)
		return
	}

	q := r.URL.Query()
	req := server.AuthorizationRequest{
		ResponseType:        q.Get("response_type"),
		ClientID:            q.Get("client_id"),
		RedirectURI:         q.Get("redirect_uri"),
		Scope:               q.Get("scope"),
		State:               q.Get("state"),
		CodeChallenge:       q.Get("code_challenge"),
		CodeChallengeMethod: q.Get("code_challenge_method"),
		ClientIP:            clientIP,
	}

	instrumentation.SetSpanAttributes(span,
		attribute.String(instrumentation.AttrClientID, req.ClientID),
		attribute.String(instrumentation.AttrPKCEMethod, req.CodeChallengeMethod),
	)

	redirectURI, redirectable := parseRedirectURI(req.RedirectURI)

	code, flowErr := h.server.BeginAuthorization(ctx, req)
	if flowErr != nil {
		instrumentation.SetSpanError(span, flowErr.Code)
		if flowErr.Code == server.ErrorCodeServerError {
			h.recordHTTPMetrics("authorization", r.Method, http.StatusInternalServerError, startTime)
			h.writeError(w, flowErr.Code, flowErr.Description, http.StatusInternalServerError)
			return
		}
		if !redirectable {
			h.recordHTTPMetrics("authorization", r.Method, http.StatusBadRequest, startTime)
			h.writeError(w, flowErr.Code, flowErr.Description, http.StatusBadRequest)
			return
		}
		h.recordHTTPMetrics("authorization", r.Method, http.StatusFound, startTime)
		h.redirectError(w, r, redirectURI, flowErr, req.State)
		return
	}
	if !redirectable {
		instrumentation.SetSpanError(span, ErrorCodeInvalidRequest)
		h.recordHTTPMetrics("authorization", r.Method, http.StatusBadRequest, startTime)
		h.writeError(w, ErrorCodeInvalidRequest, "redirect_uri scheme is not allowed", http.StatusBadRequest)
		return
	}

	instrumentation.SetSpanSuccess(span)
	h.recordHTTPMetrics("authorization", r.Method, http.StatusFound, startTime)

	// Redirect back to the client with the grant code and echoed state
	target := *redirectURI
	params := target.Query()
	params.Set("code", code)
	if req.State != "" {
		params.Set("state", req.State)
	}
	target.RawQuery = params.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

// tokenRequestBody is the JSON shape of a token request. Form-encoded
// requests carry the same fields as form values.
type tokenRequestBody struct {
	GrantType    string `json:"grant_type"`
	Code         string `json:"code"`
	RedirectURI  string `json:"redirect_uri"`
	ClientID     string `json:"client_id"`
	CodeVerifier string `json:"code_verifier"`
}

// ServeToken handles the OAuth token endpoint. It accepts both
// form-encoded and JSON request bodies.
func (h *Handler) ServeToken(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	ctx := r.Context()
	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.Start(ctx, "gate.http.token_exchange")
		defer span.End()
	}

	if r.Method == http.MethodOptions {
		h.setCORSHeaders(w)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if r.Method != http.MethodPost {
		h.recordHTTPMetrics("token", r.Method, http.StatusMethodNotAllowed, startTime)
		h.writeError(w, ErrorCodeInvalidRequest, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.setCORSHeaders(w)

	clientIP := h.clientIP(r)
	if h.checkIPRateLimit(w, r, clientIP) {
		h.recordHTTPMetrics("token", r.Method, http.StatusTooManyRequests, startTime)
		return
	}

	body, ok := h.parseTokenRequest(w, r)
	if !ok {
		h.recordHTTPMetrics("token", r.Method, http.StatusBadRequest, startTime)
		return
	}

	instrumentation.SetSpanAttributes(span,
		attribute.String(instrumentation.AttrClientID, body.ClientID),
		attribute.String(instrumentation.AttrGrantType, body.GrantType),
	)

	tok, scope, flowErr := h.server.ExchangeToken(ctx, server.TokenRequest{
		GrantType:    body.GrantType,
		Code:         body.Code,
		RedirectURI:  body.RedirectURI,
		ClientID:     body.ClientID,
		CodeVerifier: body.CodeVerifier,
		ClientIP:     clientIP,
	})
	if flowErr != nil {
		instrumentation.SetSpanError(span, flowErr.Code)
		status := http.StatusBadRequest
		if flowErr.Code == server.ErrorCodeServerError {
			status = http.StatusInternalServerError
		}
		h.recordHTTPMetrics("token", r.Method, status, startTime)
		h.writeError(w, flowErr.Code, flowErr.Description, status)
		return
	}

	h.logger.Info("Token exchange successful", "client_id", body.ClientID, "ip", clientIP)
	instrumentation.SetSpanSuccess(span)
	h.recordHTTPMetrics("token", r.Method, http.StatusOK, startTime)

	h.writeTokenResponse(w, tok, scope)
}

// parseTokenRequest reads the token request parameters from a JSON or
// form-encoded body. On failure it writes the error response and returns
// ok=false.
func (h *Handler) parseTokenRequest(w http.ResponseWriter, r *http.Request) (tokenRequestBody, bool) {
	var body tokenRequestBody

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMCPBodyBytes)).Decode(&body); err != nil {
			h.writeError(w, ErrorCodeInvalidRequest, "Failed to parse request body", http.StatusBadRequest)
			return body, false
		}
		return body, true
	}

	if err := r.ParseForm(); err != nil {
		h.writeError(w, ErrorCodeInvalidRequest, "Failed to parse request", http.StatusBadRequest)
		return body, false
	}
	body.GrantType = r.FormValue("grant_type")
	body.Code = r.FormValue("code")
	body.RedirectURI = r.FormValue("redirect_uri")
	body.ClientID = r.FormValue("client_id")
	body.CodeVerifier = r.FormValue("code_verifier")
	return body, true
}

// ServeAuthorizationServerMetadata serves RFC 8414 Authorization Server
// Metadata. The same document is served on the openid-configuration alias
// because many clients probe that path first.
func (h *Handler) ServeAuthorizationServerMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.setCORSHeaders(w)

	clientIP := h.clientIP(r)
	if h.checkIPRateLimit(w, r, clientIP) {
		return
	}

	issuer := h.server.Config.Issuer
	h.writeJSON(w, http.StatusOK, AuthorizationServerMetadata{
		Issuer:                            issuer,
		AuthorizationEndpoint:             issuer + PathAuthorize,
		TokenEndpoint:                     issuer + PathToken,
		ScopesSupported:                   h.config.SupportedScopes,
		ResponseTypesSupported:            []string{server.ResponseTypeCode},
		GrantTypesSupported:               []string{server.GrantTypeAuthorizationCode},
		TokenEndpointAuthMethodsSupported: []string{"none"},
		CodeChallengeMethodsSupported:     []string{security.PKCEMethodS256},
	})
}

// ServeProtectedResourceMetadata serves RFC 9728 Protected Resource
// Metadata for the MCP endpoint.
func (h *Handler) ServeProtectedResourceMetadata(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.setCORSHeaders(w)

	clientIP := h.clientIP(r)
	if h.checkIPRateLimit(w, r, clientIP) {
		return
	}

	h.writeJSON(w, http.StatusOK, ProtectedResourceMetadata{
		Resource:               h.server.Config.Audience,
		AuthorizationServers:   []string{h.server.Config.Issuer},
		BearerMethodsSupported: []string{"header"},
		ScopesSupported:        h.config.SupportedScopes,
	})
}

// RequireAuth wraps a handler with bearer token verification. Verified
// claims are stored in the request context for downstream handlers.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientIP := h.clientIP(r)
		if h.checkIPRateLimit(w, r, clientIP) {
			return
		}

		claims, err := h.verifier.VerifyAuthorizationHeader(r.Header.Get("Authorization"))
		if err != nil {
			h.logger.Warn("Token verification failed", "ip", clientIP, "path", r.URL.Path)
			if h.server.Auditor != nil {
				h.server.Auditor.LogAuthFailure("", clientIP, "invalid_token")
			}
			if m := h.metrics(); m != nil {
				m.RecordAuthFailure(r.Context(), r.URL.Path)
			}
			h.writeUnauthorizedError(w, ErrorCodeInvalidToken, "Token verification failed")
			return
		}

		if m := h.metrics(); m != nil {
			m.RecordTokenVerified(r.Context())
		}

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	})
}

// ServeMCP handles one JSON-RPC message per POST request. The endpoint is
// stateless: any client with a valid bearer token can send any method at
// any time.
func (h *Handler) ServeMCP(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	ctx := r.Context()
	var span trace.Span
	if h.tracer != nil {
		ctx, span = h.tracer.Start(ctx, "gate.http.mcp")
		defer span.End()
	}

	if r.Method != http.MethodPost {
		h.recordHTTPMetrics("mcp", r.Method, http.StatusMethodNotAllowed, startTime)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxMCPBodyBytes))
	if err != nil {
		h.recordHTTPMetrics("mcp", r.Method, http.StatusBadRequest, startTime)
		h.writeJSONRPCError(w, http.StatusBadRequest, mcp.ErrorCodeParseError, "failed to read request body")
		return
	}

	if !json.Valid(body) {
		h.recordHTTPMetrics("mcp", r.Method, http.StatusBadRequest, startTime)
		h.writeJSONRPCError(w, http.StatusBadRequest, mcp.ErrorCodeParseError, "invalid JSON")
		return
	}

	var msg mcp.AnyMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		h.recordHTTPMetrics("mcp", r.Method, http.StatusBadRequest, startTime)
		h.writeJSONRPCError(w, http.StatusBadRequest, mcp.ErrorCodeInvalidRequest, err.Error())
		return
	}
	if msg.Type() == "response" {
		h.recordHTTPMetrics("mcp", r.Method, http.StatusBadRequest, startTime)
		h.writeJSONRPCError(w, http.StatusBadRequest, mcp.ErrorCodeInvalidRequest, "expected a request message")
		return
	}

	instrumentation.SetSpanAttributes(span,
		attribute.String(instrumentation.AttrRPCMethod, msg.Method),
	)

	dispatchStart := time.Now()
	resp := h.dispatcher.Dispatch(ctx, &msg)
	if m := h.metrics(); m != nil {
		m.RecordDispatch(ctx, msg.Method, resp.Error != nil, float64(time.Since(dispatchStart).Milliseconds()))
	}

	if resp.Error != nil {
		instrumentation.SetSpanError(span, resp.Error.Message)
	} else {
		instrumentation.SetSpanSuccess(span)
	}

	h.recordHTTPMetrics("mcp", r.Method, http.StatusOK, startTime)
	h.writeJSON(w, http.StatusOK, resp)
}

// ServeEvents streams broker events to the client as Server-Sent Events.
// The stream opens with a "connected" event and emits keepalive comments
// so idle connections survive intermediaries.
func (h *Handler) ServeEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := h.broker.Subscribe()
	defer cancel()

	h.logger.Debug("Event stream opened", "subscribers", h.broker.Len())

	writeSSEEvent(w, events.Event{Type: "connected", Timestamp: time.Now().UTC()})
	flusher.Flush()

	ticker := time.NewTicker(h.config.HeartbeatInterval)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("Event stream closed by client")
			return
		case <-ticker.C:
			fmt.Fprint(w, ":ping\n\n")
			flusher.Flush()
		case ev, open := <-ch:
			if !open {
				h.logger.Debug("Event stream closed by broker")
				return
			}
			writeSSEEvent(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSEEvent(w io.Writer, ev events.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, data)
}

// ==================== Request context ====================

type contextKey string

const claimsContextKey contextKey = "gate.claims"

// ClaimsFromContext extracts verified token claims from the request context.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*token.Claims)
	return claims, ok
}

// ContextWithClaims stores verified token claims in the context.
func ContextWithClaims(ctx context.Context, claims *token.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ==================== Helpers ====================

func (h *Handler) clientIP(r *http.Request) string {
	return security.GetClientIP(r, h.server.Config.TrustProxy, h.server.Config.TrustedProxyCount)
}

func (h *Handler) metrics() *instrumentation.Metrics {
	if h.server.Instrumentation == nil {
		return nil
	}
	return h.server.Instrumentation.Metrics()
}

// checkIPRateLimit checks if the client IP is rate limited. Returns true if limited.
func (h *Handler) checkIPRateLimit(w http.ResponseWriter, r *http.Request, clientIP string) bool {
	if h.rateLimiter == nil || h.rateLimiter.Allow(clientIP) {
		return false
	}

	h.logger.Warn("Rate limit exceeded", "ip", clientIP)
	if m := h.metrics(); m != nil {
		m.RecordRateLimitExceeded(r.Context(), "ip")
	}
	if h.server.Auditor != nil {
		h.server.Auditor.LogRateLimitExceeded(clientIP, r.URL.Path)
	}
	w.Header().Set("Retry-After", "60")
	h.writeError(w, ErrorCodeRateLimitExceeded, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
	return true
}

// blockedRedirectSchemes lists URI schemes that must never receive a
// redirect. Sending a browser to javascript: or data: URIs enables XSS.
var blockedRedirectSchemes = []string{"javascript", "data", "file", "vbscript", "about"}

// parseRedirectURI validates that the redirect URI is a parseable absolute
// URI with a scheme that is safe to redirect to. Only then is it safe to
// deliver errors or grant codes by redirect.
func parseRedirectURI(raw string) (*url.URL, bool) {
	if raw == "" {
		return nil, false
	}
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return nil, false
	}
	scheme := strings.ToLower(parsed.Scheme)
	for _, blocked := range blockedRedirectSchemes {
		if scheme == blocked {
			return nil, false
		}
	}
	return parsed, true
}

func (h *Handler) redirectError(w http.ResponseWriter, r *http.Request, redirectURI *url.URL, flowErr *server.FlowError, state string) {
	target := *redirectURI
	params := target.Query()
	params.Set("error", flowErr.Code)
	if flowErr.Description != "" {
		params.Set("error_description", flowErr.Description)
	}
	if state != "" {
		params.Set("state", state)
	}
	target.RawQuery = params.Encode()
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (h *Handler) writeTokenResponse(w http.ResponseWriter, tok *oauth2.Token, scope string) {
	security.SetSecurityHeaders(w, h.server.Config.Issuer)

	tokenType := tok.TokenType
	if tokenType == "" {
		tokenType = tokenTypeBearer
	}

	h.writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: tok.AccessToken,
		TokenType:   tokenType,
		ExpiresIn:   h.server.Config.AccessTokenTTL,
		Scope:       scope,
	})
}

func (h *Handler) writeError(w http.ResponseWriter, code, description string, status int) {
	security.SetSecurityHeaders(w, h.server.Config.Issuer)

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", h.formatWWWAuthenticate(h.config.scopeString(), code, description))
	}

	h.writeJSON(w, status, ErrorResponse{
		Error:            code,
		ErrorDescription: description,
	})
}

// writeUnauthorizedError writes a 401 response with a WWW-Authenticate
// challenge pointing clients at the resource metadata document.
func (h *Handler) writeUnauthorizedError(w http.ResponseWriter, code, description string) {
	h.writeError(w, code, description, http.StatusUnauthorized)
}

// formatWWWAuthenticate formats the WWW-Authenticate header value per
// RFC 6750 and RFC 9728, including the resource_metadata URL so clients
// can discover the authorization server.
func (h *Handler) formatWWWAuthenticate(scope, errCode, errorDesc string) string {
	var params []string

	resourceMetadataURL := h.server.Config.Issuer + MetadataPathProtectedResource
	params = append(params, fmt.Sprintf(`resource_metadata="%s"`, resourceMetadataURL))

	// Escape backslashes first, then quotes, per RFC 7230 quoted-string rules
	if scope != "" {
		escaped := strings.ReplaceAll(scope, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		params = append(params, fmt.Sprintf(`scope="%s"`, escaped))
	}
	if errCode != "" {
		params = append(params, fmt.Sprintf(`error="%s"`, errCode))
	}
	if errorDesc != "" {
		escaped := strings.ReplaceAll(errorDesc, `\`, `\\`)
		escaped = strings.ReplaceAll(escaped, `"`, `\"`)
		params = append(params, fmt.Sprintf(`error_description="%s"`, escaped))
	}

	return "Bearer " + strings.Join(params, ", ")
}

func (h *Handler) writeJSONRPCError(w http.ResponseWriter, status int, code mcp.ErrorCode, message string) {
	h.writeJSON(w, status, mcp.NewErrorResponse(nil, code, message, nil))
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
}

func (h *Handler) recordHTTPMetrics(endpoint, method string, status int, startTime time.Time) {
	if m := h.metrics(); m != nil {
		m.RecordHTTPRequest(context.Background(), method, endpoint, status,
			float64(time.Since(startTime).Milliseconds()))
	}
}
