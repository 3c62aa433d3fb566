package server

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/giantswarm/mcp-gate/security"
	"github.com/giantswarm/mcp-gate/storage"
	"github.com/giantswarm/mcp-gate/token"
)

// OAuth 2.0 error codes from RFC 6749.
// Note: These are intentionally duplicated from the root package to avoid
// circular imports (the root package imports server). Keep in sync with
// errors.go at the root.
const (
	ErrorCodeInvalidRequest          = "invalid_request"
	ErrorCodeInvalidGrant            = "invalid_grant"
	ErrorCodeUnsupportedResponseType = "unsupported_response_type"
	ErrorCodeUnsupportedGrantType    = "unsupported_grant_type"
	ErrorCodeServerError             = "server_error"
)

const (
	// ResponseTypeCode is the only supported response_type value
	ResponseTypeCode = "code"

	// GrantTypeAuthorizationCode is the only supported grant_type value
	GrantTypeAuthorizationCode = "authorization_code"
)

// FlowError is a flow failure carrying the OAuth error code to return to
// the client. Description stays coarse; detailed causes go to the log only.
type FlowError struct {
	Code        string
	Description string
}

// Error implements the error interface
func (e *FlowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

func flowError(code, description string) *FlowError {
	return &FlowError{Code: code, Description: description}
}

// AuthorizationRequest carries the parsed parameters of an authorization
// request.
type AuthorizationRequest struct {
	ResponseType        string
	ClientID            string
	RedirectURI         string
	Scope               string
	State               string
	CodeChallenge       string
	CodeChallengeMethod string
	ClientIP            string
}

// TokenRequest carries the parsed parameters of a token exchange request.
type TokenRequest struct {
	GrantType    string
	Code         string
	RedirectURI  string
	ClientID     string
	CodeVerifier string
	ClientIP     string
}

// BeginAuthorization validates an authorization request and, when valid,
// mints and stores a single-use grant. The returned code goes back to the
// client on the redirect; on failure the FlowError's code becomes the
// redirect's error parameter.
//
// No user-consent step is modeled: any syntactically valid request is
// approved. That is a deliberate minimality choice for gating tool access
// behind possession of the flow, not a pattern for user-facing identity.
func (s *Server) BeginAuthorization(ctx context.Context, req AuthorizationRequest) (string, *FlowError) {
	if req.ResponseType != ResponseTypeCode {
		s.logAuthFailure(req.ClientID, req.ClientIP, "unsupported_response_type")
		return "", flowError(ErrorCodeUnsupportedResponseType, "only the 'code' response type is supported")
	}

	if req.ClientID == "" || req.RedirectURI == "" || req.CodeChallenge == "" {
		s.logAuthFailure(req.ClientID, req.ClientIP, "missing_required_parameter")
		return "", flowError(ErrorCodeInvalidRequest, "client_id, redirect_uri and code_challenge are required")
	}

	if req.CodeChallengeMethod != security.PKCEMethodS256 {
		s.logAuthFailure(req.ClientID, req.ClientIP, "unsupported_pkce_method")
		if m := s.metrics(); m != nil {
			m.RecordPKCEValidationFailed(ctx, req.CodeChallengeMethod)
		}
		return "", flowError(ErrorCodeInvalidRequest, "only the S256 code_challenge_method is supported")
	}

	scope := req.Scope
	if scope == "" {
		scope = s.Config.DefaultScope
	}

	code, err := security.GenerateGrantCode()
	if err != nil {
		s.Logger.Error("Failed to generate grant code", "error", err)
		return "", flowError(ErrorCodeServerError, "failed to process authorization request")
	}

	now := time.Now()
	grant := &storage.Grant{
		Code:                code,
		ClientID:            req.ClientID,
		RedirectURI:         req.RedirectURI,
		Scope:               scope,
		State:               req.State,
		CodeChallenge:       req.CodeChallenge,
		CodeChallengeMethod: req.CodeChallengeMethod,
		CreatedAt:           now,
		ExpiresAt:           now.Add(time.Duration(s.Config.GrantTTL) * time.Second),
	}
	if err := s.grantStore.Put(ctx, grant); err != nil {
		s.Logger.Error("Failed to store grant", "error", err, "client_id", req.ClientID)
		return "", flowError(ErrorCodeServerError, "failed to process authorization request")
	}

	if s.Auditor != nil {
		s.Auditor.LogGrantIssued(req.ClientID, req.ClientIP, scope)
	}
	if m := s.metrics(); m != nil {
		m.RecordGrantIssued(ctx, req.ClientID)
	}
	s.Logger.Info("Authorization grant issued",
		"client_id", req.ClientID,
		"scope", scope,
		"code_prefix", safeTruncate(code, 8))

	return code, nil
}

// ExchangeToken redeems a grant for a signed access token. The grant is
// consumed atomically: at most one exchange for a given code can succeed,
// and unknown, consumed, and expired codes are indistinguishable in the
// response.
func (s *Server) ExchangeToken(ctx context.Context, req TokenRequest) (*oauth2.Token, string, *FlowError) {
	if req.GrantType != GrantTypeAuthorizationCode {
		s.logAuthFailure(req.ClientID, req.ClientIP, "unsupported_grant_type")
		return nil, "", flowError(ErrorCodeUnsupportedGrantType, "only the 'authorization_code' grant type is supported")
	}

	if req.Code == "" || req.RedirectURI == "" || req.ClientID == "" || req.CodeVerifier == "" {
		s.logAuthFailure(req.ClientID, req.ClientIP, "missing_required_parameter")
		return nil, "", flowError(ErrorCodeInvalidRequest, "code, redirect_uri, client_id and code_verifier are required")
	}

	grant, err := s.grantStore.Take(ctx, req.Code)
	if err != nil {
		if !errors.Is(err, storage.ErrGrantNotFound) {
			s.Logger.Error("Grant store failure during exchange", "error", err)
			return nil, "", flowError(ErrorCodeServerError, "failed to process token request")
		}
		// Never issued, already consumed, or expired: all collapse to the
		// same generic response so the state cannot be probed.
		s.Logger.Debug("Grant redemption failed",
			"reason", "grant_not_found",
			"client_id", req.ClientID,
			"code_prefix", safeTruncate(req.Code, 8))
		return nil, "", s.rejectGrant(ctx, req, "grant_not_found")
	}

	if subtle.ConstantTimeCompare([]byte(grant.ClientID), []byte(req.ClientID)) != 1 {
		s.Logger.Debug("Grant redemption failed",
			"reason", "client_id_mismatch",
			"client_id", req.ClientID,
			"code_prefix", safeTruncate(req.Code, 8))
		return nil, "", s.rejectGrant(ctx, req, "client_id_mismatch")
	}

	if grant.RedirectURI != req.RedirectURI {
		s.Logger.Debug("Grant redemption failed",
			"reason", "redirect_uri_mismatch",
			"client_id", req.ClientID,
			"code_prefix", safeTruncate(req.Code, 8))
		return nil, "", s.rejectGrant(ctx, req, "redirect_uri_mismatch")
	}

	if err := security.VerifyPKCEChallenge(req.CodeVerifier, grant.CodeChallenge, grant.CodeChallengeMethod); err != nil {
		s.Logger.Debug("Grant redemption failed",
			"reason", "pkce_verification_failed",
			"error", err,
			"client_id", req.ClientID,
			"code_prefix", safeTruncate(req.Code, 8))
		if s.Auditor != nil {
			s.Auditor.LogPKCEFailure(req.ClientID, req.ClientIP)
		}
		if m := s.metrics(); m != nil {
			m.RecordPKCEValidationFailed(ctx, grant.CodeChallengeMethod)
		}
		return nil, "", s.rejectGrant(ctx, req, "pkce_verification_failed")
	}

	lifetime := time.Duration(s.Config.AccessTokenTTL) * time.Second
	claims := token.NewClaims(req.ClientID, s.Config.Issuer, s.Config.Audience, grant.Scope, lifetime)
	signed, err := token.Sign(claims, s.Config.Secret)
	if err != nil {
		s.Logger.Error("Failed to sign access token", "error", err, "client_id", req.ClientID)
		return nil, "", flowError(ErrorCodeServerError, "failed to process token request")
	}

	if s.Auditor != nil {
		s.Auditor.LogGrantRedeemed(req.ClientID, req.ClientIP, grant.Scope)
		s.Auditor.LogTokenIssued(req.ClientID, req.ClientID, req.ClientIP, grant.Scope)
	}
	if m := s.metrics(); m != nil {
		m.RecordGrantRedeemed(ctx, req.ClientID)
		m.RecordTokenIssued(ctx, req.ClientID)
	}
	s.Logger.Info("Access token issued",
		"client_id", req.ClientID,
		"scope", grant.Scope,
		"expires_in", int64(lifetime.Seconds()))

	accessToken := &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      claims.ExpiresAt.Time,
	}
	return accessToken, grant.Scope, nil
}

// rejectGrant records a failed redemption and returns the generic
// invalid_grant error mandated for all grant failures.
func (s *Server) rejectGrant(ctx context.Context, req TokenRequest, reason string) *FlowError {
	if s.Auditor != nil {
		s.Auditor.LogAuthFailure(req.ClientID, req.ClientIP, reason)
	}
	if m := s.metrics(); m != nil {
		m.RecordGrantRejected(ctx, reason)
	}
	return flowError(ErrorCodeInvalidGrant, "invalid grant")
}

func (s *Server) logAuthFailure(clientID, ip, reason string) {
	if s.Auditor != nil {
		s.Auditor.LogAuthFailure(clientID, ip, reason)
	}
}
