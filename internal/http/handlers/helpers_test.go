package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/auth"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/user"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/handlers"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/middlewares"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/repo/memory"
	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type brokenStore struct{}

func (brokenStore) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return user.User{}, errors.New("connection refused")
}

func (brokenStore) Upsert(ctx context.Context, u user.User) error {
	return errors.New("connection refused")
}

type testApp struct {
	router *gin.Engine
	users  *memory.UsersRepo
	jwt    *auth.Manager
}

// newTestApp mounts the handlers the same way the production router does,
// minus the ambient middleware.
func newTestApp(t *testing.T, news handlers.NewsSource) *testApp {
	t.Helper()

	users := memory.NewUsersRepo()
	jwt := auth.NewManager(testSecret, time.Hour)

	r := gin.New()

	ah := handlers.NewAuthHandler(users, jwt, nil)
	r.POST("/users/signup", ah.SignUp)
	r.POST("/users/login", ah.Login)

	protected := r.Group("/", middlewares.NewAuthMiddleware(jwt, users, nil).RequireAuth())
	ph := handlers.NewPreferencesHandler(users, nil)
	protected.GET("/users/preferences", ph.Get)
	protected.PUT("/users/preferences", ph.Put)
	protected.GET("/news", handlers.NewNewsHandler(news).List)

	return &testApp{router: r, users: users, jwt: jwt}
}

func doJSON(t *testing.T, h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	return w
}

// doRaw sends the Authorization header verbatim.
func doRaw(t *testing.T, a *testApp, method, path, body, authHeader string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	return w
}

func mustReadJSON[T any](t *testing.T, w *httptest.ResponseRecorder, out *T) {
	t.Helper()

	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to unmarshal json: %v, body=%s", err, w.Body.String())
	}
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, message string) {
	t.Helper()

	if w.Code != status {
		t.Fatalf("got status %d, want %d, body=%s", w.Code, status, w.Body.String())
	}

	var resp struct {
		Error string `json:"error"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Error != message {
		t.Fatalf("got error %q, want %q", resp.Error, message)
	}
}

// signupAndLogin registers a user and returns a fresh token for them.
func (a *testApp) signupAndLogin(t *testing.T, email, password string) string {
	t.Helper()

	w := doJSON(t, a.router, http.MethodPost, "/users/signup",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("signup failed: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, a.router, http.MethodPost, "/users/login",
		`{"email":"`+email+`","password":"`+password+`"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	mustReadJSON(t, w, &resp)

	if resp.Token == "" {
		t.Fatalf("empty token in login response")
	}

	return resp.Token
}
