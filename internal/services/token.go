package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"hradmin/recruitment-api/internal/models"
)

// SessionClaims is everything a request needs to know about the caller.
// It is built once by the auth middleware and passed down; handlers never
// re-derive the role.
type SessionClaims struct {
	UserID       uuid.UUID
	Role         models.Role
	Capabilities models.Capabilities
}

type TokenService interface {
	Issue(userID uuid.UUID, role models.Role) (string, error)
	Parse(tokenString string) (*SessionClaims, error)
}

type tokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) TokenService {
	return &tokenService{secret: []byte(secret), ttl: ttl}
}

func (s *tokenService) Issue(userID uuid.UUID, role models.Role) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    string(role),
		"iat":     now.Unix(),
		"exp":     now.Add(s.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (s *tokenService) Parse(tokenString string) (*SessionClaims, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	rawUserID, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("token has no user_id claim")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user_id claim: %w", err)
	}

	rawRole, ok := claims["role"].(string)
	if !ok {
		return nil, fmt.Errorf("token has no role claim")
	}
	role := models.Role(rawRole)
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", rawRole)
	}

	return &SessionClaims{
		UserID:       userID,
		Role:         role,
		Capabilities: models.CapabilitiesFor(role),
	}, nil
}
