// Package storage provides the interface for authorization grant persistence.
//
// A Grant records a code issued by the authorization endpoint together with
// the PKCE challenge and binding parameters it must be redeemed against.
// Grants are short-lived and strictly single-use: the only read operation,
// Take, removes the grant as it retrieves it.
//
// Implementations are provided in subpackages:
//   - storage/memory: In-memory storage for development and single-instance deployments
//   - storage/redis: Redis-backed distributed storage for production
package storage
