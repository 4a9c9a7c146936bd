/* JWT issuing and validation for the operator account */

package auth

import (
	"errors"
	"fmt"
	"time"

	"OrientadorFP_Backend/internal/config"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

const (
	issuerName   = "orientador-fp-api"
	adminSubject = "admin"
)

var (
	// ErrAdminDisabled means ADMIN_PASSWORD_HASH is not configured.
	ErrAdminDisabled   = errors.New("admin access is not configured")
	ErrInvalidPassword = errors.New("invalid credentials")
)

// Claims is the JWT payload.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and validates operator tokens.
type Issuer struct {
	key          []byte
	passwordHash []byte
	ttl          time.Duration
	now          func() time.Time
}

func NewIssuer(cfg config.AuthConfig) *Issuer {
	ttl := cfg.AdminTokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Issuer{
		key:          []byte(cfg.JWTSecret),
		passwordHash: []byte(cfg.AdminPasswordHash),
		ttl:          ttl,
		now:          time.Now,
	}
}

// Enabled reports whether operator login is possible at all.
func (i *Issuer) Enabled() bool {
	return len(i.passwordHash) > 0 && len(i.key) > 0
}

// Login checks password against the configured bcrypt hash and returns a token.
func (i *Issuer) Login(password string) (string, error) {
	if !i.Enabled() {
		return "", ErrAdminDisabled
	}
	if password == "" {
		return "", ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(i.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return i.GenerateToken()
}

func (i *Issuer) GenerateToken() (string, error) {
	if len(i.key) == 0 {
		return "", ErrAdminDisabled
	}
	now := i.now()
	claims := &Claims{
		Role: adminSubject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuerName,
			Subject:   adminSubject,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenString, nil
}

func (i *Issuer) ValidateToken(tokenString string) (*Claims, error) {
	if len(i.key) == 0 {
		return nil, ErrAdminDisabled
	}
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return i.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	if claims.Issuer != issuerName || claims.Role != adminSubject {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// HashPassword returns a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}
