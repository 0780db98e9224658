package auth

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

// Role claim keys, checked in order. The namespaced keys are what ASP.NET
// Identity emits.
var roleClaimKeys = []string{
	"role",
	"roles",
	"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
	"http://schemas.microsoft.com/ws/2008/06/identity/claims/roles",
}

// Subject claim keys, checked in order.
var subjectClaimKeys = []string{"sub", "nameid", "userId", "id"}

// DecodeClaims returns the payload of token without verifying its signature.
// Only the second segment is read; the header is ignored, so any alg (or
// none) decodes. The payload may be unpadded or padded base64url.
func DecodeClaims(token string) (jwt.MapClaims, error) {
	parts := strings.Split(token, ".")
	if len(parts) < 2 {
		return nil, fmt.Errorf("token has %d segments, want at least 2", len(parts))
	}
	payload, err := base64.RawURLEncoding.DecodeString(strings.TrimRight(parts[1], "="))
	if err != nil {
		return nil, fmt.Errorf("decode token payload: %w", err)
	}

	claims := jwt.MapClaims{}
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("parse token payload: %w", err)
	}
	return claims, nil
}

// extractRoles normalizes the role claim to a sorted set. A single string, a
// list, and the namespaced keys are all accepted.
func extractRoles(claims jwt.MapClaims) []string {
	if claims == nil {
		return []string{}
	}
	var raw any
	for _, key := range roleClaimKeys {
		if v, ok := claims[key]; ok && v != nil && v != "" {
			raw = v
			break
		}
	}

	seen := map[string]struct{}{}
	switch v := raw.(type) {
	case string:
		seen[v] = struct{}{}
	case []any:
		for _, r := range v {
			if s, ok := r.(string); ok && s != "" {
				seen[s] = struct{}{}
			}
		}
	case []string:
		for _, s := range v {
			if s != "" {
				seen[s] = struct{}{}
			}
		}
	}

	roles := make([]string, 0, len(seen))
	for r := range seen {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

func stringClaim(claims jwt.MapClaims, keys ...string) string {
	for _, key := range keys {
		switch v := claims[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			return fmt.Sprintf("%.0f", v)
		}
	}
	return ""
}
