package app

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

// SpectateService issues signed, short-lived tokens that let a client
// attach to a running match as a read-only spectator. The match handler
// verifies the token before streaming redacted table state.
type SpectateService struct {
	secret string
	issuer string
}

const spectateTokenTTL = time.Hour

func NewSpectateService(secret, issuer string) *SpectateService {
	return &SpectateService{secret: secret, issuer: issuer}
}

// GenerateToken signs a spectate grant for the given user and match.
func (s *SpectateService) GenerateToken(user, matchID string) (string, error) {
	if s == nil {
		return "", fmt.Errorf("spectate service is nil")
	}
	if user == "" {
		return "", fmt.Errorf("user is required")
	}
	if matchID == "" {
		return "", fmt.Errorf("match id is required")
	}
	if s.secret == "" || s.issuer == "" {
		return "", fmt.Errorf("spectate config is incomplete")
	}

	claims := jwt.MapClaims{
		"iss": s.issuer,
		"sub": user,
		"exp": time.Now().Add(spectateTokenTTL).Unix(),
		"mid": matchID,
		"jti": fmt.Sprintf("%d-%d", time.Now().UnixNano(), rand.Int63()),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// VerifyToken parses a spectate token and returns the user and match it
// grants access to.
func (s *SpectateService) VerifyToken(tokenString string) (user, matchID string, err error) {
	if s == nil || s.secret == "" {
		return "", "", fmt.Errorf("spectate config is incomplete")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to parse spectate token: %w", err)
	}
	if !token.Valid {
		return "", "", fmt.Errorf("spectate token is invalid")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", fmt.Errorf("spectate token has unexpected claims")
	}
	if iss, _ := claims["iss"].(string); iss != s.issuer {
		return "", "", fmt.Errorf("spectate token has wrong issuer")
	}
	user, _ = claims["sub"].(string)
	matchID, _ = claims["mid"].(string)
	if user == "" || matchID == "" {
		return "", "", fmt.Errorf("spectate token is missing subject or match")
	}
	return user, matchID, nil
}
