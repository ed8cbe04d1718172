package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// DefaultTTL is how long a session token stays valid.
const DefaultTTL = time.Hour

var (
	// ErrMalformed means the token is not a well-formed JWT at all.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalid means the token parsed but failed verification
	// (expired, bad signature, wrong signing method).
	ErrInvalid = errors.New("invalid token")
)

// Claims is the payload carried by a session token.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Signer issues and verifies HS256 session tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
	parser *jwt.Parser
}

// NewSigner creates a Signer with the given symmetric secret.
func NewSigner(secret []byte, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Signer{
		secret: secret,
		ttl:    ttl,
		parser: jwt.NewParser(jwt.WithValidMethods([]string{"HS256"})),
	}
}

// Sign returns a signed token carrying the user identity.
func (s *Signer) Sign(userID, email string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse verifies a token and returns its claims.
//
// ErrMalformed is returned for tokens that are not JWTs; ErrInvalid for
// well-formed tokens that fail signature or expiry checks. Callers use the
// distinction to pick between 401 and 403.
func (s *Signer) Parse(raw string) (Claims, error) {
	var claims Claims
	_, err := s.parser.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorMalformed != 0 {
			return Claims{}, ErrMalformed
		}
		return Claims{}, ErrInvalid
	}
	if claims.UserID == "" {
		return Claims{}, ErrInvalid
	}
	return claims, nil
}
