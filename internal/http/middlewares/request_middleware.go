package middlewares

import (
	"log/slog"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-Id"

func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		id := ctx.GetHeader(requestIDHeader)

		if id == "" {
			id = uuid.NewString()
		}

		ctx.Writer.Header().Set(requestIDHeader, id)
		ctx.Set(CtxRequestID, id)

		// every log line written with the request context carries the id
		ctx.Request = ctx.Request.WithContext(
			observability.ContextWithAttrs(ctx.Request.Context(), slog.String("request_id", id)),
		)

		ctx.Next()
	}
}

func RequestIDFromContext(ctx *gin.Context) string {
	v, ok := ctx.Get(CtxRequestID)
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}

func RequestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()

		route := ctx.FullPath()
		if route == "" {
			route = ctx.Request.URL.Path // fallback (e.g. 404)
		}

		method := ctx.Request.Method

		ctx.Next()

		lat := time.Since(start)
		status := ctx.Writer.Status()

		logAttrs := []any{
			"method", method,
			"route", route,
			"status", status,
			"latency_ms", lat.Milliseconds(),
		}

		if u, ok := UserFromContext(ctx); ok {
			logAttrs = append(logAttrs, "user", u.Email)
		}

		if len(ctx.Errors) > 0 {
			logAttrs = append(logAttrs, "errors", ctx.Errors.String())
		}

		log.InfoContext(ctx.Request.Context(), "http_request", logAttrs...)
	}
}
