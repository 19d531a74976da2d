package auth

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"authdemo.org/internal/directory"
)

const (
	defaultIssuer   = "auth-api-example"
	defaultAudience = "auth-api-users"
	defaultTTL      = time.Hour
)

// Claims carries identity facts inside a signed session token. The subject
// is the user's numeric id rendered as a string; username and role ride
// alongside so the token is self-describing, but callers must re-resolve the
// subject against the live directory before trusting it.
type Claims struct {
	Username string         `json:"username"`
	Role     directory.Role `json:"role"`
	jwt.RegisteredClaims
}

// SubjectID parses the registered subject back into a directory id.
func (c *Claims) SubjectID() (int64, error) {
	id, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return id, nil
}

// Codec issues and verifies signed session tokens. The signing secret is
// immutable process-wide configuration; a Codec is safe for concurrent use.
type Codec struct {
	secret   []byte
	issuer   string
	audience string
	ttl      time.Duration
	now      func() time.Time
}

// CodecOption configures Codec behavior.
type CodecOption func(*Codec)

// WithTTL overrides the token lifetime.
func WithTTL(ttl time.Duration) CodecOption {
	return func(c *Codec) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithIssuer overrides the issuer claim stamped into and required of tokens.
func WithIssuer(issuer string) CodecOption {
	return func(c *Codec) {
		if issuer = strings.TrimSpace(issuer); issuer != "" {
			c.issuer = issuer
		}
	}
}

// WithAudience overrides the audience claim stamped into and required of tokens.
func WithAudience(audience string) CodecOption {
	return func(c *Codec) {
		if audience = strings.TrimSpace(audience); audience != "" {
			c.audience = audience
		}
	}
}

// WithClock overrides the time source (useful for tests).
func WithClock(fn func() time.Time) CodecOption {
	return func(c *Codec) {
		if fn != nil {
			c.now = fn
		}
	}
}

// NewCodec constructs a Codec signing with the given secret. An empty secret
// is a startup-time configuration fault, not a per-request outcome.
func NewCodec(secret string, opts ...CodecOption) (*Codec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("auth: signing secret is required")
	}
	c := &Codec{
		secret:   []byte(secret),
		issuer:   defaultIssuer,
		audience: defaultAudience,
		ttl:      defaultTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Issue signs a session token for the given user using HS256.
func (c *Codec) Issue(user directory.User) (string, time.Time, error) {
	now := c.now().UTC()
	expiresAt := now.Add(c.ttl)
	claims := Claims{
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			Audience:  jwt.ClaimStrings{c.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.NewString(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks the signature, issuer, audience, and expiry of a token.
// Failures are classified: expiry as ErrTokenExpired, everything else as
// ErrInvalidToken. The returned error never carries key material.
func (c *Codec) Verify(token string) (*Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	},
		jwt.WithIssuer(c.issuer),
		jwt.WithAudience(c.audience),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Subject) == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
