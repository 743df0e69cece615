package middlewares

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/auth"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/gin-gonic/gin"
)

// Keep these interfaces small so tests can fake them easily.
type TokenVerifier interface {
	VerifyAccessToken(token string) (*auth.Claims, error)
}

type UserLookup interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type AuthMiddleware struct {
	jwt   TokenVerifier
	users UserLookup
	log   *slog.Logger
}

func NewAuthMiddleware(jwt TokenVerifier, users UserLookup, log *slog.Logger) *AuthMiddleware {
	if log == nil {
		log = slog.Default()
	}
	return &AuthMiddleware{jwt: jwt, users: users, log: log}
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
}

// RequireAuth accepts exactly "Bearer <token>", verifies it and resolves the
// holder to a stored user. Every failure looks the same to the caller.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			unauthorized(c)
			return
		}

		claims, err := m.jwt.VerifyAccessToken(raw)
		if err != nil {
			m.log.DebugContext(c.Request.Context(), "token rejected", "err", err)
			unauthorized(c)
			return
		}

		u, err := m.users.GetByEmail(c.Request.Context(), claims.Email)
		if err != nil {
			if errors.Is(err, repo.ErrUserNotFound) {
				unauthorized(c)
				return
			}

			m.log.ErrorContext(c.Request.Context(), "user lookup failed", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(CtxUser, u)

		c.Next()
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// UserFromContext returns the copy resolved by RequireAuth. Handlers that
// change it must write it back to the store.
func UserFromContext(c *gin.Context) (user.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return user.User{}, false
	}
	u, ok := v.(user.User)
	return u, ok
}
