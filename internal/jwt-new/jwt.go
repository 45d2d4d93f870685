package security

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/linemk/user-service/internal/domain/models"
)

// NewToken генерирует JWT-токен для указанного пользователя с заданным временем жизни.
// Секрет передаётся явно, а не берётся из окружения внутри пакета.
func NewToken(ctx context.Context, user *models.User, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"exp":    time.Now().Add(ttl).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
