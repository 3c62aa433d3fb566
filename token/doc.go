// Package token issues and verifies the self-contained bearer credentials
// minted by the token endpoint. Tokens are HS256-signed JWTs; verification is
// purely computational, the server keeps no record of issued tokens.
package token
