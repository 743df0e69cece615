package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type PreferencesHandler struct {
	users UserStore
	log   *slog.Logger
}

func NewPreferencesHandler(users UserStore, log *slog.Logger) *PreferencesHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PreferencesHandler{users: users, log: log}
}

type UpdatePreferencesRequest struct {
	Preferences json.RawMessage `json:"preferences"`
}

func (h *PreferencesHandler) Get(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, MsgUnauthorized)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"preferences": u.PreferencesOrEmpty()})
}

func (h *PreferencesHandler) Put(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, MsgUnauthorized)
		return
	}

	var req UpdatePreferencesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(ctx, MsgPreferencesArray)
		return
	}

	prefs, ok := parsePreferences(req.Preferences)
	if !ok {
		RespondBadRequest(ctx, MsgPreferencesArray)
		return
	}

	u.Preferences = prefs

	cctx, cancel := context.WithTimeout(ctx.Request.Context(), storeTimeout)
	defer cancel()

	// the context holds a copy; persist it explicitly
	if err := h.users.Upsert(cctx, u); err != nil {
		h.log.ErrorContext(ctx.Request.Context(), "update preferences", "err", err)
		RespondInternal(ctx)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Preferences updated"})
}

// parsePreferences accepts any JSON array. Entries are not validated:
// strings are kept as they are and every other value (numbers, null,
// objects) is kept as its compact JSON text. null, a missing field and
// every non-array value are rejected.
func parsePreferences(raw json.RawMessage) ([]string, bool) {
	items, ok := arrayItems(raw)
	if !ok {
		return nil, false
	}

	prefs := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := stringItem(item); ok {
			prefs = append(prefs, s)
			continue
		}

		var buf bytes.Buffer
		if err := json.Compact(&buf, item); err != nil {
			return nil, false
		}
		prefs = append(prefs, buf.String())
	}

	return prefs, true
}

// arrayItems splits a JSON array into its raw elements.
func arrayItems(raw json.RawMessage) ([]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, false
	}

	return items, true
}

// stringItem decodes item only when it is a JSON string; null does not count.
func stringItem(item json.RawMessage) (string, bool) {
	trimmed := bytes.TrimSpace(item)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}

	return s, true
}
