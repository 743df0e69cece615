package handlers_test

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/auth"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/domain/article"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/http/handlers"
	"github.com/airtribe-projects/news-aggregator-api-codeByVaibhav/internal/security"
	"github.com/gin-gonic/gin"
)

type staticNews struct{}

func (staticNews) ForPreferences(ctx context.Context, preferences []string) []article.Article {
	return article.Sample()
}

func TestSignUp_Success(t *testing.T) {
	app := newTestApp(t, staticNews{})

	w := doJSON(t, app.router, http.MethodPost, "/users/signup",
		`{"name":"Ada","email":"Ada@Example.COM","password":"abcdef","preferences":["go","rust"]}`, "")

	if w.Code != http.StatusOK {
		t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	mustReadJSON(t, w, &resp)
	if resp.Message != "Signup successful" {
		t.Fatalf("unexpected message %q", resp.Message)
	}

	u, err := app.users.GetByEmail(context.Background(), "ada@example.com")
	if err != nil {
		t.Fatalf("user not stored under normalized email: %v", err)
	}

	if u.Name != "Ada" {
		t.Fatalf("name = %q", u.Name)
	}
	if u.PasswordHash == "abcdef" || security.CheckPassword(u.PasswordHash, "abcdef") != nil {
		t.Fatalf("password not stored as a bcrypt hash")
	}
	if !reflect.DeepEqual(u.Preferences, []string{"go", "rust"}) {
		t.Fatalf("preferences = %v", u.Preferences)
	}
}

func TestSignUp_Validation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", ``, handlers.MsgMissingCredentials},
		{"empty object", `{}`, handlers.MsgMissingCredentials},
		{"malformed json", `{"email":`, handlers.MsgMissingCredentials},
		{"missing password", `{"email":"a@b.com"}`, handlers.MsgMissingCredentials},
		{"empty email", `{"email":"","password":"abcdef"}`, handlers.MsgMissingCredentials},
		{"missing email short password", `{"password":"abc"}`, handlers.MsgMissingCredentials},
		{"no at sign", `{"email":"ab.com","password":"abcdef"}`, handlers.MsgInvalidEmail},
		{"no domain dot", `{"email":"a@bcom","password":"abcdef"}`, handlers.MsgInvalidEmail},
		{"whitespace", `{"email":"a b@c.com","password":"abcdef"}`, handlers.MsgInvalidEmail},
		{"bad email and short password", `{"email":"ab.com","password":"abc"}`, handlers.MsgInvalidEmail},
		{"short password", `{"email":"a@b.com","password":"abcde"}`, handlers.MsgPasswordTooShort},
		{"short password with extras", `{"name":"x","email":"a@b.com","password":"12345","preferences":["go"]}`, handlers.MsgPasswordTooShort},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t, staticNews{})

			w := doJSON(t, app.router, http.MethodPost, "/users/signup", tc.body, "")
			wantError(t, w, http.StatusBadRequest, tc.message)

			if app.users.Len() != 0 {
				t.Fatalf("rejected signup must not store a user")
			}
		})
	}
}

func TestSignUp_NonArrayPreferencesBecomeEmpty(t *testing.T) {
	for _, prefs := range []string{`"go"`, `{"a":1}`, `42`, `null`, `[1,2]`, `["a",null]`} {
		t.Run(prefs, func(t *testing.T) {
			app := newTestApp(t, staticNews{})

			w := doJSON(t, app.router, http.MethodPost, "/users/signup",
				`{"email":"a@b.com","password":"abcdef","preferences":`+prefs+`}`, "")
			if w.Code != http.StatusOK {
				t.Fatalf("got status %d, body=%s", w.Code, w.Body.String())
			}

			u, err := app.users.GetByEmail(context.Background(), "a@b.com")
			if err != nil {
				t.Fatalf("get user: %v", err)
			}
			if u.Preferences == nil || len(u.Preferences) != 0 {
				t.Fatalf("preferences = %#v, want empty slice", u.Preferences)
			}
		})
	}
}

func TestSignUp_TwiceOverwrites(t *testing.T) {
	app := newTestApp(t, staticNews{})

	for _, pw := range []string{"first-pass", "second-pass"} {
		w := doJSON(t, app.router, http.MethodPost, "/users/signup", `{"email":"a@b.com","password":"`+pw+`"}`, "")
		if w.Code != http.StatusOK {
			t.Fatalf("signup got %d", w.Code)
		}
	}

	w := doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"second-pass"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login with new password got %d", w.Code)
	}

	w = doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"first-pass"}`, "")
	wantError(t, w, http.StatusUnauthorized, handlers.MsgInvalidCredentials)

	if app.users.Len() != 1 {
		t.Fatalf("expected exactly one record, got %d", app.users.Len())
	}
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	app := newTestApp(t, staticNews{})

	token := app.signupAndLogin(t, "a@b.com", "abcdef")

	claims, err := app.jwt.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("token does not verify: %v", err)
	}
	if claims.Email != "a@b.com" {
		t.Fatalf("claims email = %q", claims.Email)
	}

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if ttl != time.Hour {
		t.Fatalf("token ttl = %s, want 1h", ttl)
	}
}

func TestLogin_EmailIsCaseInsensitive(t *testing.T) {
	app := newTestApp(t, staticNews{})
	app.signupAndLogin(t, "a@b.com", "abcdef")

	w := doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"A@B.COM","password":"abcdef"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestLogin_FailuresLookIdentical(t *testing.T) {
	app := newTestApp(t, staticNews{})
	app.signupAndLogin(t, "a@b.com", "abcdef")

	unknown := doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"nobody@b.com","password":"abcdef"}`, "")
	wrong := doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"wrong-pass"}`, "")

	wantError(t, unknown, http.StatusUnauthorized, handlers.MsgInvalidCredentials)
	wantError(t, wrong, http.StatusUnauthorized, handlers.MsgInvalidCredentials)

	if unknown.Body.String() != wrong.Body.String() {
		t.Fatalf("bodies differ: %s vs %s", unknown.Body.String(), wrong.Body.String())
	}
}

func TestLogin_EmptyOrGarbledBody(t *testing.T) {
	app := newTestApp(t, staticNews{})

	for _, body := range []string{``, `{}`, `not json`} {
		w := doJSON(t, app.router, http.MethodPost, "/users/login", body, "")
		wantError(t, w, http.StatusUnauthorized, handlers.MsgInvalidCredentials)
	}
}

func TestAuth_StoreFailureIsInternal(t *testing.T) {
	r := gin.New()
	h := handlers.NewAuthHandler(brokenStore{}, auth.NewManager(testSecret, time.Hour), nil)
	r.POST("/users/signup", h.SignUp)
	r.POST("/users/login", h.Login)

	w := doJSON(t, r, http.MethodPost, "/users/signup", `{"email":"a@b.com","password":"abcdef"}`, "")
	wantError(t, w, http.StatusInternalServerError, handlers.MsgInternal)

	w = doJSON(t, r, http.MethodPost, "/users/login", `{"email":"a@b.com","password":"abcdef"}`, "")
	wantError(t, w, http.StatusInternalServerError, handlers.MsgInternal)
}

func TestSignUp_LongPasswordCanLogIn(t *testing.T) {
	app := newTestApp(t, staticNews{})

	password := strings.Repeat("a", 80)
	token := app.signupAndLogin(t, "long@b.com", password)

	if _, err := app.jwt.VerifyAccessToken(token); err != nil {
		t.Fatalf("token does not verify: %v", err)
	}

	w := doJSON(t, app.router, http.MethodPost, "/users/login", `{"email":"long@b.com","password":"short-pass"}`, "")
	wantError(t, w, http.StatusUnauthorized, handlers.MsgInvalidCredentials)
}
