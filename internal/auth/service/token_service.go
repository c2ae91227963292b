package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/SudarshanShah/MovieApi/internal/auth/service TokenGenerator

import (
	"fmt"
	"time"

	"github.com/SudarshanShah/MovieApi/internal/auth/domain"
	"github.com/golang-jwt/jwt/v5"
)

type TokenGenerator interface {
	Generate(user *domain.User) (string, error)
	VerifyAccessToken(tokenString string) (*JWTCustomClaims, error)
	ExtractSubject(tokenString string) (string, error)
	Valid(tokenString, subject string) bool
	GetAccessTokenExpiry() time.Duration
}

// TokenService issues and validates the short-lived HS256 access tokens.
// There is no revocation list; validity is signature plus expiry.
type TokenService struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
}

type JWTCustomClaims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

func NewTokenService(accessSecret string, accessMinutes int) *TokenService {
	return &TokenService{
		AccessTokenSecret: accessSecret,
		AccessTokenExpiry: time.Duration(accessMinutes) * time.Minute,
	}
}

// Generate signs an access token whose subject is the user's email.
func (ts *TokenService) Generate(user *domain.User) (string, error) {
	now := time.Now()

	claims := JWTCustomClaims{
		Name: user.Name,
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(ts.AccessTokenSecret))
}

func (ts *TokenService) GetAccessTokenExpiry() time.Duration {
	return ts.AccessTokenExpiry
}

// VerifyAccessToken parses and validates the given access token string.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*JWTCustomClaims, error) {
	claims := &JWTCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.AccessTokenSecret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ExtractSubject recovers the embedded subject without checking expiry. The
// signature is still verified so a tampered token never yields a subject.
func (ts *TokenService) ExtractSubject(tokenString string) (string, error) {
	claims := &JWTCustomClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(ts.AccessTokenSecret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	return claims.Subject, nil
}

// Valid reports whether the token is intact, unexpired and belongs to the
// claimed subject. Any failure yields false, never a partial success.
func (ts *TokenService) Valid(tokenString, subject string) bool {
	claims, err := ts.VerifyAccessToken(tokenString)
	if err != nil {
		return false
	}

	return claims.Subject == subject
}
