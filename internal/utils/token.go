package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"strings"
)

// tokenBytes is the amount of entropy in every issued bearer token.
const tokenBytes = 32

const bearerPrefix = "Bearer "

// TokenGenerator issues opaque bearer tokens.
type TokenGenerator interface {
	Generate() (string, error)
}

// RandomTokenGenerator issues URL-safe tokens made of 32 random bytes,
// base64url encoded without padding (43 characters).
type RandomTokenGenerator struct{}

// NewTokenGenerator returns the default [TokenGenerator].
func NewTokenGenerator() TokenGenerator {
	return RandomTokenGenerator{}
}

// Generate implements [TokenGenerator].
func (RandomTokenGenerator) Generate() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("error reading random bytes for token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// ParseBearerToken extracts the token from an authorization header value.
// The "Bearer " prefix is optional; surrounding whitespace is ignored.
// An empty result means no token was supplied.
//
// Example usage:
//
//	token := utils.ParseBearerToken(r.Header.Get("X-Authorization"))
func ParseBearerToken(header string) string {
	header = strings.TrimLeft(header, " \t")
	header = strings.TrimPrefix(header, bearerPrefix)
	return strings.TrimSpace(header)
}
