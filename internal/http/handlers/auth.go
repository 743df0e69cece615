package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/security"
	"github.com/gin-gonic/gin"
)

const storeTimeout = 3 * time.Second

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Upsert(ctx context.Context, u user.User) error
}

type TokenIssuer interface {
	GenerateAccessToken(email string) (string, error)
}

type AuthHandler struct {
	users UserStore
	jwt   TokenIssuer
	log   *slog.Logger
}

func NewAuthHandler(users UserStore, jwt TokenIssuer, log *slog.Logger) *AuthHandler {
	RegisterValidators()

	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{users: users, jwt: jwt, log: log}
}

type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,simple_email"`
	Password string `json:"password" binding:"required,min=6"`

	// kept raw: anything other than an array of strings becomes []
	Preferences json.RawMessage `json:"preferences"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(ctx *gin.Context) {
	var req SignUpRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, signupMessage(err))
		return
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "hash password", "err", err)
		RespondInternal(ctx)
		return
	}

	u := user.User{
		Name:         req.Name,
		Email:        user.NormalizeEmail(req.Email),
		PasswordHash: hash,
		Preferences:  signupPreferences(req.Preferences),
	}

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	// signing up again with the same email replaces the record
	if err := h.users.Upsert(cctx, u); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "store user", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Signup successful"})
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	// an undecodable body is treated like empty credentials
	_ = ctx.ShouldBindJSON(&req)

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, user.NormalizeEmail(req.Email))
	if err != nil {
		if !errors.Is(err, repo.ErrUserNotFound) {
			h.log.ErrorContext(ctx.Request.Context(), "load user", "err", err)
			RespondInternal(ctx)
			return
		}

		security.BurnCompare(req.Password)
		RespondUnauthorized(ctx, MsgInvalidCredentials)
		return
	}

	if err := security.CheckPassword(foundUser.PasswordHash, req.Password); err != nil {
		RespondUnauthorized(ctx, MsgInvalidCredentials)
		return
	}

	token, err := h.jwt.GenerateAccessToken(foundUser.Email)
	if err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "generate token", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// signupPreferences keeps the input only when it is an array whose every
// entry is a string; anything else becomes [].
func signupPreferences(raw json.RawMessage) []string {
	items, ok := arrayItems(raw)
	if !ok {
		return []string{}
	}

	prefs := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := stringItem(item)
		if !ok {
			return []string{}
		}
		prefs = append(prefs, s)
	}

	return prefs
}
