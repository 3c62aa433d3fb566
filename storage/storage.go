// Package storage defines the interface for persisting pending authorization
// grants. It supports in-memory and Redis backends.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrGrantNotFound is returned by Take when no live grant exists under a
// code. A grant that was never issued, already redeemed, or expired all
// surface as this same error.
var ErrGrantNotFound = errors.New("grant not found")

// Grant is a pending authorization awaiting redemption at the token
// endpoint. It carries everything needed to validate the exchange request
// that will follow.
type Grant struct {
	Code                string    `json:"code"`
	ClientID            string    `json:"client_id"`
	RedirectURI         string    `json:"redirect_uri"`
	Scope               string    `json:"scope,omitempty"`
	State               string    `json:"state,omitempty"`
	CodeChallenge       string    `json:"code_challenge"`
	CodeChallengeMethod string    `json:"code_challenge_method"`
	CreatedAt           time.Time `json:"created_at"`
	ExpiresAt           time.Time `json:"expires_at"`
}

// Expired reports whether the grant's lifetime has elapsed at instant now.
func (g *Grant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

// GrantStore persists pending authorization grants keyed by their code.
// All methods accept context.Context for tracing and cancellation.
type GrantStore interface {
	// Put saves a grant under its code until it expires or is taken.
	Put(ctx context.Context, grant *Grant) error

	// Take atomically retrieves and removes the grant stored under code.
	// At most one concurrent caller can receive a given grant; every other
	// caller, and any caller presenting an expired or unknown code, gets
	// ErrGrantNotFound.
	// SECURITY: This operation MUST be atomic to keep grants single-use
	// under concurrent redemption attempts.
	Take(ctx context.Context, code string) (*Grant, error)
}
