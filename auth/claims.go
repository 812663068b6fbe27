package auth

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims carries the ambient caller identity resolved from the bearer token.
type Claims struct {
	EmployeeID     string `json:"employeeId"`
	OrganizationID string `json:"organizationId"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

func secretKey() []byte {
	if s := os.Getenv("JWT_SECRET"); s != "" {
		return []byte(s)
	}
	return []byte("N3v3rGue55M3_2024!@")
}

func GenerateToken(employeeID, organizationID, role string) (string, error) {
	claims := Claims{
		EmployeeID:     employeeID,
		OrganizationID: organizationID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

type contextKey struct{}

var claimsKey = contextKey{}

// WithClaims attaches the caller identity to the context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// FromContext returns the caller identity, or nil if the request was not
// authenticated.
func FromContext(ctx context.Context) *Claims {
	claims, _ := ctx.Value(claimsKey).(*Claims)
	return claims
}

// CurrentEmployeeID returns the calling employee's id, or "".
func CurrentEmployeeID(ctx context.Context) string {
	if c := FromContext(ctx); c != nil {
		return c.EmployeeID
	}
	return ""
}

// CurrentOrganizationID returns the calling employee's organization, or "".
func CurrentOrganizationID(ctx context.Context) string {
	if c := FromContext(ctx); c != nil {
		return c.OrganizationID
	}
	return ""
}
