package auth_test

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saulo-duarte/quizlens/internal/auth"
)

const testSecret = "uma-chave-secreta-para-testes-segura-e-longa"

var testIdentity = auth.Identity{
	ID:       uuid.MustParse("0190a4a4-1111-7000-8000-000000000001"),
	Username: "ana",
	Email:    "ana@example.com",
	Role:     "admin",
	IsStaff:  true,
}

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("Init() deveria ter causado pânico com segredo vazio, mas não o fez.")
			}
		}()
		auth.Init("")
	})

	t.Run("ValidSecret", func(t *testing.T) {
		auth.Init(testSecret)
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	auth.Init(testSecret)

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testIdentity, 5*time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT falhou: %v", err)
		}

		claims, err := auth.ValidateJWT(tokenStr)
		if err != nil {
			t.Fatalf("ValidateJWT falhou inesperadamente: %v", err)
		}
		if claims.UserID != testIdentity.ID.String() {
			t.Errorf("UserID incorreto. Esperado: %s, Recebido: %s", testIdentity.ID, claims.UserID)
		}
		if claims.Role != "admin" || !claims.IsStaff {
			t.Errorf("role/is_staff incorretos: %s %v", claims.Role, claims.IsStaff)
		}
		if claims.Username != "ana" || claims.Email != "ana@example.com" {
			t.Errorf("username/email incorretos: %s %s", claims.Username, claims.Email)
		}
		if claims.Expires == 0 {
			t.Error("campo expires deveria estar preenchido")
		}
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(testIdentity, -time.Minute)
		if err != nil {
			t.Fatalf("GenerateJWT falhou: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if err == nil {
			t.Fatal("ValidateJWT deveria ter falhado com token expirado, mas passou.")
		}
		if !errors.Is(err, jwt.ErrTokenExpired) {
			t.Errorf("Esperado %v, Recebido: %v", jwt.ErrTokenExpired, err)
		}
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		forged := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
			UserID:  testIdentity.ID.String(),
			Purpose: auth.PurposeSession,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		})
		tokenStr, err := forged.SignedString([]byte("chave-secreta-falsa-diferente"))
		if err != nil {
			t.Fatalf("falha ao assinar token forjado: %v", err)
		}

		_, err = auth.ValidateJWT(tokenStr)
		if !errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			t.Errorf("Erro incorreto para assinatura inválida: %v", err)
		}
	})

	t.Run("ResetTokenIsNotASession", func(t *testing.T) {
		tokenStr, err := auth.GeneratePasswordResetToken(testIdentity.ID, testIdentity.Email, time.Hour)
		if err != nil {
			t.Fatalf("GeneratePasswordResetToken falhou: %v", err)
		}
		if _, err := auth.ValidateJWT(tokenStr); !errors.Is(err, auth.ErrWrongPurpose) {
			t.Errorf("esperado ErrWrongPurpose, recebido %v", err)
		}
	})
}

func TestVerificationToken(t *testing.T) {
	auth.Init(testSecret)

	pending := auth.PendingSignup{
		FirstName:      "Ana",
		LastName:       "Silva",
		Username:       "ana",
		Email:          "ana@example.com",
		PasswordCipher: "cifra",
	}

	tokenStr, err := auth.GenerateVerificationToken(pending, time.Hour)
	if err != nil {
		t.Fatalf("GenerateVerificationToken falhou: %v", err)
	}

	got, err := auth.ParseVerificationToken(tokenStr)
	if err != nil {
		t.Fatalf("ParseVerificationToken falhou: %v", err)
	}
	if *got != pending {
		t.Errorf("payload incorreto: %+v", got)
	}

	session, _ := auth.GenerateJWT(testIdentity, time.Hour)
	if _, err := auth.ParseVerificationToken(session); !errors.Is(err, auth.ErrWrongPurpose) {
		t.Errorf("token de sessão não deveria ser aceito como verificação: %v", err)
	}
}

func TestPasswordResetToken(t *testing.T) {
	auth.Init(testSecret)

	tokenStr, err := auth.GeneratePasswordResetToken(testIdentity.ID, testIdentity.Email, time.Hour)
	if err != nil {
		t.Fatalf("GeneratePasswordResetToken falhou: %v", err)
	}
	reset, err := auth.ParsePasswordResetToken(tokenStr)
	if err != nil {
		t.Fatalf("ParsePasswordResetToken falhou: %v", err)
	}
	if reset.UserID != testIdentity.ID || reset.Email != testIdentity.Email {
		t.Errorf("payload incorreto: %+v", reset)
	}

	expired, _ := auth.GeneratePasswordResetToken(testIdentity.ID, testIdentity.Email, -time.Minute)
	if _, err := auth.ParsePasswordResetToken(expired); !errors.Is(err, jwt.ErrTokenExpired) {
		t.Errorf("esperado token expirado, recebido %v", err)
	}
}
