package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/rocketscienceinc/squares-backend/internal/apperror"
	"github.com/rocketscienceinc/squares-backend/internal/entity"
)

const tokenTTL = 24 * time.Hour

var errUnexpectedSigningMethod = errors.New("unexpected token signing method")

type AuthService interface {
	GenerateToken(email string) (string, error)
	ParseToken(tokenString string) (string, error)
}

type authServiceImpl struct {
	secretKey string
}

func NewAuthService(secretKey string) AuthService {
	return &authServiceImpl{
		secretKey: secretKey,
	}
}

func (that *authServiceImpl) GenerateToken(email string) (string, error) {
	claims := jwt.MapClaims{}
	claims["email"] = entity.NormalizeEmail(email)
	claims["exp"] = time.Now().Add(tokenTTL).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(that.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken - resolves a token back to the participant identifier. Any
// invalid, expired or malformed token means there is no resolvable
// participant.
func (that *authServiceImpl) ParseToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", errUnexpectedSigningMethod, token.Header["alg"])
		}
		return []byte(that.secretKey), nil
	})
	if err != nil || !token.Valid {
		return "", apperror.ErrUnauthenticated
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", apperror.ErrUnauthenticated
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", apperror.ErrUnauthenticated
	}

	return entity.NormalizeEmail(email), nil
}
