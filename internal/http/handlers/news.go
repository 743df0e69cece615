package handlers

import (
	"context"
	"net/http"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/middlewares"
	"github.com/gin-gonic/gin"
)

type NewsSource interface {
	ForPreferences(ctx context.Context, preferences []string) []article.Article
}

type NewsHandler struct {
	news NewsSource
}

func NewNewsHandler(news NewsSource) *NewsHandler {
	return &NewsHandler{news: news}
}

// List always answers 200; provider trouble surfaces as fallback content.
func (h *NewsHandler) List(ctx *gin.Context) {
	u, ok := middlewares.UserFromContext(ctx)
	if !ok {
		RespondUnauthorized(ctx, MsgUnauthorized)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"news": h.news.ForPreferences(ctx.Request.Context(), u.PreferencesOrEmpty())})
}
