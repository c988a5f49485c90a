package user

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/saulo-duarte/quizlens/internal/apperror"
	"github.com/saulo-duarte/quizlens/internal/auth"
	"github.com/saulo-duarte/quizlens/internal/config"
	"github.com/saulo-duarte/quizlens/internal/mailer"
)

const (
	msgDuplicateAccount = "A user with the same email address or username already exists."
	msgBadCredentials   = "Authentication failed: Wrong username or password"
)

type UserService interface {
	Signup(ctx context.Context, in SignupInput) (*MessageResponse, error)
	CompleteProfile(ctx context.Context, in CompleteProfileInput) (*MessageResponse, error)
	CreateFromToken(ctx context.Context, token string) (string, error)
	ActivateProfile(ctx context.Context, token string) (string, error)
	CreateProfile(ctx context.Context, in ProfileInput) (*User, error)
	Login(ctx context.Context, in LoginInput) (*LoginResponse, error)
	Me(ctx context.Context) (*User, error)
	UpdateMe(ctx context.Context, in UpdateInput) (*User, error)
	RequestPasswordReset(ctx context.Context, in PasswordResetRequest) (*MessageResponse, error)
	ResetPassword(ctx context.Context, in ResetPasswordInput) (*MessageResponse, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
}

type Options struct {
	BackendURL  string
	FrontendURL string
	BcryptCost  int
}

type userService struct {
	repo UserRepository
	mail mailer.Mailer
	opts Options
}

func NewService(repo UserRepository, m mailer.Mailer, opts Options) UserService {
	if opts.BcryptCost == 0 {
		opts.BcryptCost = bcrypt.DefaultCost
	}
	opts.BackendURL = strings.TrimRight(opts.BackendURL, "/")
	opts.FrontendURL = strings.TrimRight(opts.FrontendURL, "/")
	return &userService{repo: repo, mail: m, opts: opts}
}

func (s *userService) Signup(ctx context.Context, in SignupInput) (*MessageResponse, error) {
	log := config.WithContext(ctx).WithField("username", in.Username)

	if err := in.validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		log.WithError(err).Error("Erro ao verificar usuário existente")
		return nil, err
	}
	if exists {
		return nil, apperror.Validation(msgDuplicateAccount)
	}

	token, err := s.verificationToken(auth.PendingSignup{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
	}, in.Password)
	if err != nil {
		log.WithError(err).Error("Erro ao gerar token de verificação")
		return nil, err
	}

	s.sendVerification(ctx, in.Email, "create-user", token)
	log.Info("Cadastro iniciado; e-mail de verificação enviado")
	return &MessageResponse{Message: fmt.Sprintf("A verification email has been sent to %s", in.Email)}, nil
}

func (s *userService) CompleteProfile(ctx context.Context, in CompleteProfileInput) (*MessageResponse, error) {
	log := config.WithContext(ctx).WithField("email", in.Email)

	if err := in.validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.Validation("You should have a profile created for this email")
	}
	if err != nil {
		log.WithError(err).Error("Erro ao buscar perfil por e-mail")
		return nil, err
	}

	token, err := s.verificationToken(auth.PendingSignup{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Email:     u.Email,
	}, in.Password)
	if err != nil {
		log.WithError(err).Error("Erro ao gerar token de verificação")
		return nil, err
	}

	s.sendVerification(ctx, u.Email, "create-user-2", token)
	return &MessageResponse{Message: fmt.Sprintf("A verification email has been sent to %s", u.Email)}, nil
}

func (s *userService) CreateFromToken(ctx context.Context, token string) (string, error) {
	log := config.WithContext(ctx)

	pending, hash, err := s.openVerification(token)
	if err != nil {
		log.WithError(err).Warn("Token de verificação rejeitado")
		return "", err
	}

	u := &User{
		FirstName:    pending.FirstName,
		LastName:     pending.LastName,
		Username:     pending.Username,
		Email:        pending.Email,
		Role:         DefaultRole,
		IsActive:     true,
		PasswordHash: &hash,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return "", apperror.Conflict(msgDuplicateAccount, err)
		}
		log.WithError(err).Error("Erro ao criar usuário verificado")
		return "", err
	}

	s.sendWelcome(ctx, u)
	log.WithField("user_id", u.ID.String()).Info("Usuário criado após verificação")
	return s.signInURL(), nil
}

func (s *userService) ActivateProfile(ctx context.Context, token string) (string, error) {
	log := config.WithContext(ctx)

	pending, hash, err := s.openVerification(token)
	if err != nil {
		log.WithError(err).Warn("Token de verificação rejeitado")
		return "", err
	}

	u, err := s.repo.GetByEmail(ctx, pending.Email)
	if errors.Is(err, ErrUserNotFound) {
		return "", apperror.NotFound("user not found")
	}
	if err != nil {
		return "", err
	}

	if err := s.repo.SetPassword(ctx, u.ID, hash); err != nil {
		log.WithError(err).Error("Erro ao definir senha do perfil")
		return "", err
	}

	s.sendWelcome(ctx, u)
	log.WithField("user_id", u.ID.String()).Info("Perfil ativado após verificação")
	return s.signInURL(), nil
}

func (s *userService) CreateProfile(ctx context.Context, in ProfileInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	u := &User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Role:      DefaultRole,
		IsActive:  true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, apperror.Conflict(msgDuplicateAccount, err)
		}
		config.WithContext(ctx).WithError(err).Error("Erro ao criar perfil")
		return nil, err
	}
	return u, nil
}

func (s *userService) Login(ctx context.Context, in LoginInput) (*LoginResponse, error) {
	log := config.WithContext(ctx).WithField("username", in.Username)

	u, err := s.repo.GetByUsername(ctx, in.Username)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		log.WithError(err).Error("Erro ao buscar usuário para login")
		return nil, err
	}
	if u == nil || !u.IsActive || !u.HasPassword() ||
		bcrypt.CompareHashAndPassword([]byte(*u.PasswordHash), []byte(in.Password)) != nil {
		log.Warn("Falha de autenticação")
		return nil, apperror.Unauthorized(msgBadCredentials)
	}

	token, err := auth.GenerateJWT(u.Identity(), auth.SessionTTL)
	if err != nil {
		log.WithError(err).Error("Erro ao gerar token de sessão")
		return nil, err
	}
	return &LoginResponse{Token: token, Message: "Authentication successful"}, nil
}

func (s *userService) Me(ctx context.Context) (*User, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		return nil, apperror.Unauthorized("authentication required")
	}
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, apperror.Unauthorized("invalid token subject")
	}

	u, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	return u, err
}

func (s *userService) UpdateMe(ctx context.Context, in UpdateInput) (*User, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	u, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}

	if in.FirstName != "" {
		u.FirstName = in.FirstName
	}
	if in.LastName != "" {
		u.LastName = in.LastName
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Email != "" {
		u.Email = in.Email
	}

	if err := s.repo.Update(ctx, u); err != nil {
		if errors.Is(err, ErrDuplicateUser) {
			return nil, apperror.Conflict(msgDuplicateAccount, err)
		}
		config.WithContext(ctx).WithError(err).Error("Erro ao atualizar usuário")
		return nil, err
	}
	return u, nil
}

func (s *userService) RequestPasswordReset(ctx context.Context, in PasswordResetRequest) (*MessageResponse, error) {
	log := config.WithContext(ctx).WithField("email", in.Email)

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.Validation("The email address provided does not exists.")
	}
	if err != nil {
		log.WithError(err).Error("Erro ao buscar usuário para redefinição de senha")
		return nil, err
	}
	if !u.IsActive {
		return nil, apperror.Validation("You must be an active user to be able to reset password")
	}

	token, err := auth.GeneratePasswordResetToken(u.ID, u.Email, auth.PasswordResetTTL)
	if err != nil {
		log.WithError(err).Error("Erro ao gerar token de redefinição")
		return nil, err
	}

	link := fmt.Sprintf("%s/auth/update_password?reset_token=%s", s.opts.FrontendURL, url.QueryEscape(token))
	mailer.SendQuietly(ctx, s.mail, mailer.Message{
		To:      []string{u.Email},
		Subject: "Password Reset",
		Text:    fmt.Sprintf("To reset your password, click the following link: %s.", link),
	})

	return &MessageResponse{Message: fmt.Sprintf("A password reset email has been sent to %s", u.Email)}, nil
}

func (s *userService) ResetPassword(ctx context.Context, in ResetPasswordInput) (*MessageResponse, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	reset, err := auth.ParsePasswordResetToken(in.Token)
	if err != nil {
		return nil, auth.TokenError(err, "reset")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.opts.BcryptCost)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetPassword(ctx, reset.UserID, string(hash)); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{"user_id": reset.UserID.String()}).Info("Senha redefinida")
	return &MessageResponse{Message: "Password updated successfully"}, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*User, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return nil, apperror.NotFound("user not found")
	}
	return u, err
}

// verificationToken hashes the password and seals the hash inside the token payload.
func (s *userService) verificationToken(p auth.PendingSignup, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BcryptCost)
	if err != nil {
		return "", err
	}
	sealed, err := config.Encrypt(string(hash))
	if err != nil {
		return "", err
	}
	p.PasswordCipher = sealed
	return auth.GenerateVerificationToken(p, auth.VerificationTTL)
}

func (s *userService) openVerification(token string) (*auth.PendingSignup, string, error) {
	pending, err := auth.ParseVerificationToken(token)
	if err != nil {
		return nil, "", auth.TokenError(err, "verification")
	}
	hash, err := config.Decrypt(pending.PasswordCipher)
	if err != nil {
		return nil, "", apperror.Unauthorized("invalid verification token")
	}
	return pending, hash, nil
}

func (s *userService) sendVerification(ctx context.Context, email, path, token string) {
	link := fmt.Sprintf("%s/api/v1/users/%s?verification_token=%s", s.opts.BackendURL, path, url.QueryEscape(token))
	mailer.SendQuietly(ctx, s.mail, mailer.Message{
		To:      []string{email},
		Subject: "Account Verification",
		Text:    fmt.Sprintf("To verify your account, click the following link: %s.", link),
	})
}

func (s *userService) sendWelcome(ctx context.Context, u *User) {
	mailer.SendQuietly(ctx, s.mail, mailer.Message{
		To:      []string{u.Email},
		Subject: "New Account",
		Text:    fmt.Sprintf("Dear %s, welcome to the app.", u.FirstName),
	})
}

func (s *userService) signInURL() string {
	return s.opts.FrontendURL + "/auth/sign-in?verified=true"
}
