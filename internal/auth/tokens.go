package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// PendingSignup travels inside a verification token until the account is created.
// PasswordCipher holds the encrypted password hash, never the raw password.
type PendingSignup struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	PasswordCipher string `json:"password"`
}

type verificationClaims struct {
	PendingSignup
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateVerificationToken(p PendingSignup, duration time.Duration) (string, error) {
	now := time.Now()
	return sign(&verificationClaims{
		PendingSignup: p,
		Purpose:       PurposeVerification,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
}

func ParseVerificationToken(tokenStr string) (*PendingSignup, error) {
	claims := &verificationClaims{}
	if err := parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposeVerification {
		return nil, ErrWrongPurpose
	}
	return &claims.PendingSignup, nil
}

type PasswordReset struct {
	UserID uuid.UUID
	Email  string
}

type resetClaims struct {
	UserID  string `json:"id"`
	Email   string `json:"email"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GeneratePasswordResetToken(userID uuid.UUID, email string, duration time.Duration) (string, error) {
	now := time.Now()
	return sign(&resetClaims{
		UserID:  userID.String(),
		Email:   email,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
}

func ParsePasswordResetToken(tokenStr string) (*PasswordReset, error) {
	claims := &resetClaims{}
	if err := parse(tokenStr, claims); err != nil {
		return nil, err
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, ErrWrongPurpose
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return &PasswordReset{UserID: id, Email: claims.Email}, nil
}
