package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/saulo-duarte/quizlens/internal/apperror"
)

type contextKey string

const userClaimsKey contextKey = "user_claims"

var ErrNoClaims = errors.New("no user claims in context")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			apperror.Write(w, r, apperror.Unauthorized("authorization header required"))
			return
		}

		claims, err := ValidateJWT(strings.TrimSpace(token))
		if err != nil {
			apperror.Write(w, r, TokenError(err, "session"))
			return
		}

		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// TokenError maps a token parse failure: expired is PermissionDenied, anything else Unauthorized.
func TokenError(err error, kind string) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return &apperror.Error{Kind: apperror.KindPermissionDenied, Detail: kind + " token has expired", Err: err}
	}
	return &apperror.Error{Kind: apperror.KindUnauthorized, Detail: "invalid " + kind + " token", Err: err}
}

func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, userClaimsKey, claims)
}

func GetUserClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(userClaimsKey).(*Claims)
	if !ok || claims == nil {
		return nil, ErrNoClaims
	}
	return claims, nil
}
