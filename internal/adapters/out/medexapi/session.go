package medexapi

import (
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrNoSession = errors.New("no active session")

// User is the signed-in account as /auth/login and /auth/me return it.
type User struct {
	ID       int64
	Email    string
	FullName string
	Role     string
}

// Tokens is the credential pair issued by /auth/login.
type Tokens struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
}

// Claims is the unverified payload of the access token. The backend verifies
// signatures; the client only reads the claims for display and role checks.
type Claims struct {
	Subject   string
	Role      string
	ExpiresAt time.Time
}

// Expired reports whether the token had expired at now. Tokens without exp never expire.
func (c Claims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// Session holds the signed-in user and tokens. It is created once per process and
// injected into the client and the consoles. Clear runs every OnClear hook, which
// is how logout stops location reporting.
type Session struct {
	mu      sync.RWMutex
	user    *User
	tokens  Tokens
	onClear []func()
}

func NewSession() *Session {
	return &Session{}
}

// Load replaces the current user and tokens.
func (s *Session) Load(user User, tokens Tokens) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &user
	s.tokens = tokens
}

// Clear wipes the session and runs the OnClear hooks. Hooks run without the lock held.
func (s *Session) Clear() {
	s.mu.Lock()
	s.user = nil
	s.tokens = Tokens{}
	hooks := append([]func(){}, s.onClear...)
	s.mu.Unlock()

	for _, hook := range hooks {
		hook()
	}
}

// OnClear registers fn to run on every Clear.
func (s *Session) OnClear(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.onClear = append(s.onClear, fn)
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *Session) IsAuthenticated() bool {
	return s.AccessToken() != ""
}

func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokens.AccessToken
}

func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.tokens.RefreshToken
}

func (s *Session) setAccessToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens.AccessToken = token
}

// Claims decodes the access token without verifying it.
func (s *Session) Claims() (Claims, error) {
	raw := s.AccessToken()
	if raw == "" {
		return Claims{}, ErrNoSession
	}
	return ParseClaims(raw)
}

// ParseClaims reads sub, role and exp from a JWT without checking the signature.
func ParseClaims(raw string) (Claims, error) {
	token, _, err := new(jwt.Parser).ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{}, fmt.Errorf("parse access token: %w", err)
	}
	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("parse access token: unexpected claims type")
	}

	var claims Claims
	switch sub := mapClaims["sub"].(type) {
	case string:
		claims.Subject = sub
	case float64:
		claims.Subject = strconv.FormatInt(int64(sub), 10)
	}
	claims.Role, _ = mapClaims["role"].(string)
	if exp, ok := mapClaims["exp"].(float64); ok {
		claims.ExpiresAt = time.Unix(int64(exp), 0).UTC()
	}
	return claims, nil
}
