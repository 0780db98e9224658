package auth

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/a7med3yad/Cartify-Frontend/apperrors"
	"github.com/a7med3yad/Cartify-Frontend/storage"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

// Session is the persisted record of the signed-in identity.
type Session struct {
	Token  string     `json:"token"`
	Expiry *time.Time `json:"expiry"`
	UserID string     `json:"userId,omitempty"`
	Email  string     `json:"email,omitempty"`
	Roles  []string   `json:"roles"`
}

// Expired reports whether the session carries an expiry that is before now.
func (s *Session) Expired(now time.Time) bool {
	return s != nil && s.Expiry != nil && now.After(*s.Expiry)
}

// HasRole reports whether the session's role set contains role.
func (s *Session) HasRole(role string) bool {
	return s != nil && slices.Contains(s.Roles, role)
}

// AuthResponse is the body of a login or registration response. Exactly one
// of JWT, Token or AccessToken is expected; they are tried in that order.
type AuthResponse struct {
	JWT         string `json:"jwt,omitempty"`
	Token       string `json:"token,omitempty"`
	AccessToken string `json:"accessToken,omitempty"`
	JWTExpiry   string `json:"jwtExpiry,omitempty"`
	ExpiresAt   string `json:"expiresAt,omitempty"`
}

func (r AuthResponse) token() string {
	for _, t := range []string{r.JWT, r.Token, r.AccessToken} {
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

// TokenStore owns the single persisted session slot.
type TokenStore struct {
	store storage.Store
	log   *zap.Logger
}

func NewTokenStore(store storage.Store, log *zap.Logger) *TokenStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &TokenStore{store: store, log: log}
}

// SetSession normalizes resp into a Session and persists it, replacing any
// previous one. It fails with MissingCredential, without writing, when resp
// carries no token. A token whose payload cannot be decoded still produces a
// session, just without email, user id or roles.
func (t *TokenStore) SetSession(ctx context.Context, resp AuthResponse) (*Session, error) {
	token := resp.token()
	if token == "" {
		return nil, apperrors.MissingCredential()
	}

	claims, err := DecodeClaims(token)
	if err != nil {
		t.log.Warn("failed to decode token payload", zap.Error(err))
		claims = nil
	}

	session := &Session{
		Token:  token,
		Expiry: parseExpiry(resp, claims),
		Email:  stringClaim(claims, "email"),
		UserID: stringClaim(claims, subjectClaimKeys...),
		Roles:  extractRoles(claims),
	}

	if err := storage.SetJSON(ctx, t.store, storage.KeyAuth, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Session returns the persisted session, or nil. Unreadable or corrupt state
// counts as no session.
func (t *TokenStore) Session(ctx context.Context) *Session {
	var s Session
	found, err := storage.GetJSON(ctx, t.store, storage.KeyAuth, &s)
	if err != nil {
		t.log.Warn("unable to read auth", zap.Error(err))
		return nil
	}
	if !found || s.Token == "" {
		return nil
	}
	if s.Roles == nil {
		s.Roles = []string{}
	}
	return &s
}

// Token returns the current bearer token, or "".
func (t *TokenStore) Token(ctx context.Context) string {
	if s := t.Session(ctx); s != nil {
		return s.Token
	}
	return ""
}

// ClearSession removes the session slot unconditionally.
func (t *TokenStore) ClearSession(ctx context.Context) error {
	return t.store.Delete(ctx, storage.KeyAuth)
}

// HasRole is true iff a session exists and holds role.
func (t *TokenStore) HasRole(ctx context.Context, role string) bool {
	return t.Session(ctx).HasRole(role)
}

var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.9999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// parseExpiry prefers the response's own expiry fields and falls back to the
// token's exp claim. Zone-less timestamps are read as UTC.
func parseExpiry(resp AuthResponse, claims jwt.MapClaims) *time.Time {
	for _, raw := range []string{resp.JWTExpiry, resp.ExpiresAt} {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range expiryLayouts {
			if ts, err := time.Parse(layout, raw); err == nil {
				ts = ts.UTC()
				return &ts
			}
		}
	}
	if claims != nil {
		if exp, ok := claims["exp"].(float64); ok && exp > 0 {
			ts := time.Unix(int64(exp), 0).UTC()
			return &ts
		}
	}
	return nil
}
