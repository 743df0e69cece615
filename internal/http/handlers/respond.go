package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Client-facing messages. Every failure body is {"error": <message>}.
const (
	MsgMissingCredentials = "Email and password are required"
	MsgInvalidEmail       = "Invalid email format"
	MsgPasswordTooShort   = "Password must be at least 6 characters"
	MsgInvalidCredentials = "Invalid credentials"
	MsgUnauthorized       = "Unauthorized"
	MsgPreferencesArray   = "Preferences must be an array"
	MsgInternal           = "Internal server error"
	MsgNotFound           = "Not found"
)

func RespondError(ctx *gin.Context, status int, message string) {
	ctx.AbortWithStatusJSON(status, gin.H{"error": message})
}

func RespondBadRequest(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusBadRequest, message)
}

func RespondUnauthorized(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusUnauthorized, message)
}

func RespondNotFound(ctx *gin.Context) {
	RespondError(ctx, http.StatusNotFound, MsgNotFound)
}

func RespondInternal(ctx *gin.Context) {
	RespondError(ctx, http.StatusInternalServerError, MsgInternal)
}
