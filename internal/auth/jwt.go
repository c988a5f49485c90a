package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	PurposeSession       = "session"
	PurposeVerification  = "verification"
	PurposePasswordReset = "password_reset"

	SessionTTL       = 72 * time.Hour
	VerificationTTL  = 24 * time.Hour
	PasswordResetTTL = time.Hour
)

var (
	jwtSecret []byte

	ErrInvalidToken  = errors.New("invalid token")
	ErrWrongPurpose  = errors.New("token purpose mismatch")
	ErrSecretNotInit = errors.New("jwt secret not initialized")
)

func Init(secret string) {
	if secret == "" {
		panic("JWT_SECRET must be set")
	}
	jwtSecret = []byte(secret)
}

// Identity is what a session token asserts about its bearer.
type Identity struct {
	ID       uuid.UUID
	Username string
	Email    string
	Role     string
	IsStaff  bool
}

type Claims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	IsStaff  bool   `json:"is_staff"`
	Expires  int64  `json:"expires"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateJWT(id Identity, duration time.Duration) (string, error) {
	now := time.Now()
	exp := now.Add(duration)
	claims := &Claims{
		UserID:   id.ID.String(),
		Username: id.Username,
		Email:    id.Email,
		Role:     id.Role,
		IsStaff:  id.IsStaff,
		Expires:  exp.Unix(),
		Purpose:  PurposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return sign(claims)
}

// ValidateJWT accepts only session tokens.
func ValidateJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	if err := parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeSession {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func sign(claims jwt.Claims) (string, error) {
	if len(jwtSecret) == 0 {
		return "", ErrSecretNotInit
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func parse(tokenStr string, claims jwt.Claims) error {
	if len(jwtSecret) == 0 {
		return ErrSecretNotInit
	}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
