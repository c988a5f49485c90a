package user_test

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/auth"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/mailer"
	"github.com/saulo-duarte/quizlens/internal/user"
)

func TestMain(m *testing.M) {
	auth.Init("segredo-de-teste-para-usuarios")
	config.InitCrypto("01234567890123456789012345678901")
	os.Exit(m.Run())
}

func newService(t *testing.T) (user.UserService, *fakeRepo, *mailer.Recorder) {
	t.Helper()
	repo := newFakeRepo()
	rec := &mailer.Recorder{}
	svc := user.NewService(repo, rec, user.Options{
		BackendURL:  "http://api.test/",
		FrontendURL: "http://app.test",
		BcryptCost:  bcrypt.MinCost,
	})
	return svc, repo, rec
}

// tokenFromMail pulls the query parameter out of the last message body.
func tokenFromMail(t *testing.T, rec *mailer.Recorder, param string) (string, string) {
	t.Helper()
	msg, ok := rec.Last()
	if !ok {
		t.Fatal("nenhum e-mail enviado")
	}
	_, after, found := strings.Cut(msg.Text, param+"=")
	if !found {
		t.Fatalf("parâmetro %s ausente no e-mail: %s", param, msg.Text)
	}
	token, err := url.QueryUnescape(strings.TrimSuffix(after, "."))
	if err != nil {
		t.Fatalf("token mal formado: %v", err)
	}
	return token, msg.Text
}

func assertKind(t *testing.T, err error, want apperror.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("esperado erro %s, recebido nil", want)
	}
	if got := apperror.KindOf(err); got != want {
		t.Fatalf("esperado %s, recebido %s (%v)", want, got, err)
	}
}

var validSignup = user.SignupInput{
	FirstName:       "Ana",
	LastName:        "Silva",
	Username:        "ana",
	Email:           "ana@example.com",
	Password:        "senha-forte",
	ConfirmPassword: "senha-forte",
}

func TestSignupAndCreateFromToken(t *testing.T) {
	svc, repo, rec := newService(t)
	ctx := context.Background()

	resp, err := svc.Signup(ctx, validSignup)
	if err != nil {
		t.Fatalf("Signup falhou: %v", err)
	}
	if !strings.Contains(resp.Message, "ana@example.com") {
		t.Errorf("mensagem inesperada: %s", resp.Message)
	}

	token, body := tokenFromMail(t, rec, "verification_token")
	if !strings.Contains(body, "http://api.test/api/v1/users/create-user?") {
		t.Errorf("link de verificação incorreto: %s", body)
	}
	if strings.Contains(token, "senha-forte") {
		t.Fatal("token não deveria carregar a senha em texto puro")
	}

	target, err := svc.CreateFromToken(ctx, token)
	if err != nil {
		t.Fatalf("CreateFromToken falhou: %v", err)
	}
	if target != "http://app.test/auth/sign-in?verified=true" {
		t.Errorf("redirect incorreto: %s", target)
	}

	u, err := repo.GetByUsername(ctx, "ana")
	if err != nil {
		t.Fatalf("usuário não foi criado: %v", err)
	}
	if !u.IsActive || !u.HasPassword() {
		t.Fatalf("usuário deveria estar ativo e com senha: %+v", u)
	}
	if bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte("senha-forte")) != nil {
		t.Fatal("hash armazenado não confere com a senha")
	}

	welcome, _ := rec.Last()
	if welcome.Subject != "New Account" {
		t.Errorf("e-mail de boas-vindas não enviado: %+v", welcome)
	}

	t.Run("TokenReplayConflicts", func(t *testing.T) {
		_, err := svc.CreateFromToken(ctx, token)
		assertKind(t, err, apperror.KindConflict)
	})
}

func TestSignupValidation(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	t.Run("ShortPassword", func(t *testing.T) {
		in := validSignup
		in.Password, in.ConfirmPassword = "1234567", "1234567"
		_, err := svc.Signup(ctx, in)
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("EightCharsAccepted", func(t *testing.T) {
		in := validSignup
		in.Username, in.Email = "oito", "oito@example.com"
		in.Password, in.ConfirmPassword = "12345678", "12345678"
		if _, err := svc.Signup(ctx, in); err != nil {
			t.Fatalf("senha de 8 caracteres deveria ser aceita: %v", err)
		}
	})

	t.Run("Mismatch", func(t *testing.T) {
		in := validSignup
		in.ConfirmPassword = "outra-senha"
		_, err := svc.Signup(ctx, in)
		assertKind(t, err, apperror.KindValidation)
	})

	t.Run("BadEmail", func(t *testing.T) {
		in := validSignup
		in.Email = "nao-e-email"
		_, err := svc.Signup(ctx, in)
		assertKind(t, err, apperror.KindValidation)
	})
}

func TestSignupDuplicate(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.CreateProfile(ctx, user.ProfileInput{
		FirstName: "Ana", LastName: "Silva", Username: "ana", Email: "ana@example.com",
	}); err != nil {
		t.Fatalf("CreateProfile falhou: %v", err)
	}

	_, err := svc.Signup(ctx, validSignup)
	assertKind(t, err, apperror.KindValidation)
}

func TestSignupMailFailureIsSilent(t *testing.T) {
	repo := newFakeRepo()
	svc := user.NewService(repo, &mailer.Recorder{Err: errors.New("smtp down")}, user.Options{BcryptCost: bcrypt.MinCost})

	if _, err := svc.Signup(context.Background(), validSignup); err != nil {
		t.Fatalf("falha de e-mail não deveria propagar: %v", err)
	}
}

func TestCompleteProfileAndActivate(t *testing.T) {
	svc, _, rec := newService(t)
	ctx := context.Background()

	t.Run("NoProfile", func(t *testing.T) {
		_, err := svc.CompleteProfile(ctx, user.CompleteProfileInput{
			Email: "ninguem@example.com", Password: "senha-forte", ConfirmPassword: "senha-forte",
		})
		assertKind(t, err, apperror.KindValidation)
	})

	if _, err := svc.CreateProfile(ctx, user.ProfileInput{
		FirstName: "Bia", LastName: "Costa", Username: "bia", Email: "bia@example.com",
	}); err != nil {
		t.Fatalf("CreateProfile falhou: %v", err)
	}

	t.Run("LoginBeforeActivation", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginInput{Username: "bia", Password: "senha-forte"})
		assertKind(t, err, apperror.KindUnauthorized)
	})

	if _, err := svc.CompleteProfile(ctx, user.CompleteProfileInput{
		Email: "bia@example.com", Password: "senha-forte", ConfirmPassword: "senha-forte",
	}); err != nil {
		t.Fatalf("CompleteProfile falhou: %v", err)
	}

	token, body := tokenFromMail(t, rec, "verification_token")
	if !strings.Contains(body, "/api/v1/users/create-user-2?") {
		t.Errorf("link deveria apontar para create-user-2: %s", body)
	}

	if _, err := svc.ActivateProfile(ctx, token); err != nil {
		t.Fatalf("ActivateProfile falhou: %v", err)
	}

	resp, err := svc.Login(ctx, user.LoginInput{Username: "bia", Password: "senha-forte"})
	if err != nil {
		t.Fatalf("Login falhou após ativação: %v", err)
	}
	claims, err := auth.ValidateJWT(resp.Token)
	if err != nil {
		t.Fatalf("token de sessão inválido: %v", err)
	}
	if claims.Username != "bia" || claims.Role != user.DefaultRole {
		t.Errorf("claims incorretas: %+v", claims)
	}
}

func TestVerificationTokenErrors(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	t.Run("Expired", func(t *testing.T) {
		sealed, _ := config.Encrypt("hash")
		token, err := auth.GenerateVerificationToken(auth.PendingSignup{
			Username: "x", Email: "x@example.com", PasswordCipher: sealed,
		}, -time.Minute)
		if err != nil {
			t.Fatalf("falha ao gerar token: %v", err)
		}
		_, err = svc.CreateFromToken(ctx, token)
		assertKind(t, err, apperror.KindPermissionDenied)
	})

	t.Run("SessionTokenRejected", func(t *testing.T) {
		token, _ := auth.GenerateJWT(auth.Identity{Username: "x"}, time.Hour)
		_, err := svc.CreateFromToken(ctx, token)
		assertKind(t, err, apperror.KindUnauthorized)
	})

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ActivateProfile(ctx, "lixo")
		assertKind(t, err, apperror.KindUnauthorized)
	})
}

func TestLogin(t *testing.T) {
	svc, _, rec := newService(t)
	ctx := context.Background()

	if _, err := svc.Signup(ctx, validSignup); err != nil {
		t.Fatalf("Signup falhou: %v", err)
	}
	token, _ := tokenFromMail(t, rec, "verification_token")
	if _, err := svc.CreateFromToken(ctx, token); err != nil {
		t.Fatalf("CreateFromToken falhou: %v", err)
	}

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginInput{Username: "ana", Password: "errada"})
		assertKind(t, err, apperror.KindUnauthorized)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		_, err := svc.Login(ctx, user.LoginInput{Username: "fantasma", Password: "senha-forte"})
		assertKind(t, err, apperror.KindUnauthorized)
	})

	t.Run("Success", func(t *testing.T) {
		resp, err := svc.Login(ctx, user.LoginInput{Username: "ana", Password: "senha-forte"})
		if err != nil {
			t.Fatalf("Login falhou: %v", err)
		}
		if resp.Message != "Authentication successful" || resp.Token == "" {
			t.Errorf("resposta inesperada: %+v", resp)
		}
	})
}

func TestMeAndUpdateMe(t *testing.T) {
	svc, _, _ := newService(t)
	ctx := context.Background()

	t.Run("NoClaims", func(t *testing.T) {
		_, err := svc.Me(ctx)
		assertKind(t, err, apperror.KindUnauthorized)
	})

	u, err := svc.CreateProfile(ctx, user.ProfileInput{
		FirstName: "Caio", LastName: "Lima", Username: "caio", Email: "caio@example.com",
	})
	if err != nil {
		t.Fatalf("CreateProfile falhou: %v", err)
	}
	if _, err := svc.CreateProfile(ctx, user.ProfileInput{
		FirstName: "Dani", LastName: "Rocha", Username: "dani", Email: "dani@example.com",
	}); err != nil {
		t.Fatalf("CreateProfile falhou: %v", err)
	}

	authed := auth.WithClaims(ctx, &auth.Claims{UserID: u.ID.String(), Username: "caio"})

	me, err := svc.Me(authed)
	if err != nil {
		t.Fatalf("Me falhou: %v", err)
	}
	if me.Email != "caio@example.com" {
		t.Errorf("usuário incorreto: %+v", me)
	}

	updated, err := svc.UpdateMe(authed, user.UpdateInput{FirstName: "Caetano"})
	if err != nil {
		t.Fatalf("UpdateMe falhou: %v", err)
	}
	if updated.FirstName != "Caetano" || updated.LastName != "Lima" || updated.Username != "caio" {
		t.Errorf("atualização parcial incorreta: %+v", updated)
	}

	t.Run("DuplicateUsername", func(t *testing.T) {
		_, err := svc.UpdateMe(authed, user.UpdateInput{Username: "dani"})
		assertKind(t, err, apperror.KindConflict)
	})
}

func TestPasswordReset(t *testing.T) {
	svc, repo, rec := newService(t)
	ctx := context.Background()

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.RequestPasswordReset(ctx, user.PasswordResetRequest{Email: "nada@example.com"})
		assertKind(t, err, apperror.KindValidation)
	})

	u, err := svc.CreateProfile(ctx, user.ProfileInput{
		FirstName: "Eva", LastName: "Melo", Username: "eva", Email: "eva@example.com",
	})
	if err != nil {
		t.Fatalf("CreateProfile falhou: %v", err)
	}

	if _, err := svc.RequestPasswordReset(ctx, user.PasswordResetRequest{Email: "eva@example.com"}); err != nil {
		t.Fatalf("RequestPasswordReset falhou: %v", err)
	}
	token, body := tokenFromMail(t, rec, "reset_token")
	if !strings.Contains(body, "http://app.test/auth/update_password?") {
		t.Errorf("link de redefinição incorreto: %s", body)
	}

	t.Run("Mismatch", func(t *testing.T) {
		_, err := svc.ResetPassword(ctx, user.ResetPasswordInput{Token: token, Password: "nova-senha-1", ConfirmPassword: "x"})
		assertKind(t, err, apperror.KindValidation)
	})

	if _, err := svc.ResetPassword(ctx, user.ResetPasswordInput{
		Token: token, Password: "nova-senha-1", ConfirmPassword: "nova-senha-1",
	}); err != nil {
		t.Fatalf("ResetPassword falhou: %v", err)
	}

	if _, err := svc.Login(ctx, user.LoginInput{Username: "eva", Password: "nova-senha-1"}); err != nil {
		t.Fatalf("Login com nova senha falhou: %v", err)
	}

	t.Run("Inactive", func(t *testing.T) {
		stored, _ := repo.GetByID(ctx, u.ID)
		stored.IsActive = false
		if err := repo.Update(ctx, stored); err != nil {
			t.Fatalf("Update falhou: %v", err)
		}
		_, err := svc.RequestPasswordReset(ctx, user.PasswordResetRequest{Email: "eva@example.com"})
		assertKind(t, err, apperror.KindValidation)
	})
}

func TestGetByUsername(t *testing.T) {
	svc, _, _ := newService(t)
	_, err := svc.GetByUsername(context.Background(), "ninguem")
	assertKind(t, err, apperror.KindNotFound)
}
