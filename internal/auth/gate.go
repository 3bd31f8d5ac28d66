// Package auth is the admin login gate. It checks one configured credential
// pair and issues a signed session token; it is not an authorization system.
package auth

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrNoSecret           = errors.New("signing secret is empty")
)

// DefaultTTL is how long a login stays valid.
const DefaultTTL = 24 * time.Hour

// Claims is the session token payload.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Gate validates admin credentials and session tokens.
type Gate struct {
	username string
	password string
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

// Option configures a Gate.
type Option func(*Gate)

// WithTTL sets the session lifetime.
func WithTTL(d time.Duration) Option {
	return func(g *Gate) { g.ttl = d }
}

// WithClock sets the time source for issuing and checking tokens.
func WithClock(now func() time.Time) Option {
	return func(g *Gate) { g.now = now }
}

// NewGate creates a gate for the given credential pair.
func NewGate(username, password, secret string, opts ...Option) (*Gate, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}
	g := &Gate{
		username: username,
		password: password,
		secret:   []byte(secret),
		ttl:      DefaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Login checks the credentials and returns a signed token.
func (g *Gate) Login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(g.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1
	if !userOK || !passOK {
		return "", ErrInvalidCredentials
	}

	now := g.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.secret)
}

// Validate parses a token and returns its claims.
func (g *Gate) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		return g.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(g.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Username != g.username {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// IsAuthorized reports whether tokenString is a live session token.
func (g *Gate) IsAuthorized(tokenString string) bool {
	_, err := g.Validate(tokenString)
	return err == nil
}
