package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storeadmin/internal/admin"
)

// IssueToken signs an HS256 access token carrying the user id and admin flag.
func IssueToken(secret string, userID primitive.ObjectID, isAdmin bool, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId":  userID.Hex(),
		"isAdmin": isAdmin,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a raw token and resolves the principal it names.
func ParseToken(secret, raw string) (admin.Principal, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return admin.Principal{}, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return admin.Principal{}, errors.New("invalid token claims")
	}

	userIDValue, ok := claims["userId"].(string)
	if !ok || strings.TrimSpace(userIDValue) == "" {
		return admin.Principal{}, errors.New("userId claim missing")
	}
	userID, err := primitive.ObjectIDFromHex(userIDValue)
	if err != nil {
		return admin.Principal{}, errors.New("invalid userId claim")
	}

	isAdmin, _ := claims["isAdmin"].(bool)
	return admin.Principal{UserID: userID, IsAdmin: isAdmin}, nil
}

func bearerToken(header string) (string, error) {
	raw := strings.TrimSpace(header)
	if raw == "" {
		return "", errors.New("missing token")
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid token format")
	}
	return parts[1], nil
}
