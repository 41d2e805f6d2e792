package app

import (
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// TableTokenService issues short-lived signed tokens that tie a user to a
// table seat, so a reconnecting client can prove which seat it owned.
type TableTokenService struct {
	secret string
	issuer string
}

func NewTableTokenService(secret, issuer string) *TableTokenService {
	return &TableTokenService{secret: secret, issuer: issuer}
}

// GenerateToken signs a seat claim for the given user and table.
func (s *TableTokenService) GenerateToken(userID, tableID string, seat int) (string, error) {
	if s == nil {
		return "", fmt.Errorf("table token service is nil")
	}
	if userID == "" {
		return "", fmt.Errorf("user is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("table token config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   userID,
		"exp":   time.Now().Add(time.Hour).Unix(),
		"table": tableID,
		"seat":  seat,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken parses a seat token and returns the table ID and seat it
// grants.
func (s *TableTokenService) VerifyToken(tokenStr, userID string) (string, int, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", 0, fmt.Errorf("invalid table token: %w", err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", 0, fmt.Errorf("invalid table token claims")
	}
	if sub, _ := claims["sub"].(string); sub != userID {
		return "", 0, fmt.Errorf("table token does not belong to user")
	}
	tableID, _ := claims["table"].(string)
	seat, ok := claims["seat"].(float64)
	if !ok {
		return "", 0, fmt.Errorf("table token missing seat")
	}
	return tableID, int(seat), nil
}
