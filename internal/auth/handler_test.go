package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridian-erp/meridian-erp/internal/auth"
	"github.com/meridian-erp/meridian-erp/internal/shared"
	_ "github.com/meridian-erp/meridian-erp/testing"
)

type stubRepo struct {
	user     *auth.User
	sessions map[string]int64
}

func (s *stubRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	if s.user == nil || s.user.Email != email {
		return nil, shared.ErrNotFound
	}
	return s.user, nil
}

func (s *stubRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	if s.sessions == nil {
		s.sessions = make(map[string]int64)
	}
	s.sessions[id] = userID
	return nil
}

func (s *stubRepo) DeleteSession(ctx context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubResolver struct {
	perms []string
}

func (s *stubResolver) EffectivePermissions(ctx context.Context, userID int64) ([]string, error) {
	return s.perms, nil
}

func newAuthHandler(t *testing.T, repo *stubRepo, perms []string) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", "secret", time.Hour, false)
	handler := auth.NewHandler(nil, auth.NewService(repo, &stubResolver{perms: perms}), sessionManager)
	return handler, sessionManager
}

func activeUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &auth.User{
		ID:           7,
		Email:        "user@test.local",
		Name:         "Test User",
		PasswordHash: string(hashed),
		Role:         "user",
		IsActive:     true,
	}
}

func doLogin(t *testing.T, handler *auth.Handler, sessionManager *shared.SessionManager, body string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	router := chi.NewRouter()
	handler.MountRoutes(router)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	sess, err := sessionManager.Load(context.Background(), req)
	if err != nil {
		t.Fatalf("load session: %v", err)
	}
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	if err := sessionManager.Commit(ctx, res, req, sess); err != nil {
		t.Fatalf("commit session: %v", err)
	}
	return res, sess
}

func TestLoginSuccessCachesIdentity(t *testing.T) {
	repo := &stubRepo{user: activeUser(t, "correctpass")}
	handler, sessionManager := newAuthHandler(t, repo, []string{"sales:customers:view"})

	res, sess := doLogin(t, handler, sessionManager, `{"email":"user@test.local","password":"correctpass"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var payload struct {
		UserID   int64  `json:"user_id"`
		Role     string `json:"role"`
		Redirect string `json:"redirect"`
	}
	if err := json.Unmarshal(res.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload.UserID != 7 || payload.Role != "user" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
	if payload.Redirect != "/dashboard" {
		t.Fatalf("expected dashboard redirect, got %q", payload.Redirect)
	}

	if sess.User() != "7" {
		t.Fatalf("expected user id in session, got %q", sess.User())
	}
	if sess.Role() != "user" {
		t.Fatalf("expected role in session, got %q", sess.Role())
	}
	if len(sess.Permissions()) != 1 || sess.Permissions()[0] != "sales:customers:view" {
		t.Fatalf("expected cached permissions, got %v", sess.Permissions())
	}
	if _, ok := repo.sessions[sess.ID]; !ok {
		t.Fatalf("expected session registered in repo")
	}
}

func TestLoginQueuesWelcomeFlash(t *testing.T) {
	repo := &stubRepo{user: activeUser(t, "correctpass")}
	handler, sessionManager := newAuthHandler(t, repo, nil)

	res, sess := doLogin(t, handler, sessionManager, `{"email":"user@test.local","password":"correctpass"}`)
	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	flash := sess.PopFlash()
	if flash == nil {
		t.Fatalf("expected a flash message after login")
	}
	if flash.Kind != "success" || !strings.Contains(flash.Message, "Test User") {
		t.Fatalf("unexpected flash: %+v", flash)
	}
	if sess.PopFlash() != nil {
		t.Fatalf("flash should be consumed after one pop")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	repo := &stubRepo{user: activeUser(t, "correctpass")}
	handler, sessionManager := newAuthHandler(t, repo, nil)

	res, sess := doLogin(t, handler, sessionManager, `{"email":"user@test.local","password":"wrongpass1"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", res.Code)
	}
	if sess.User() != "" {
		t.Fatalf("session should stay anonymous after failed login")
	}
}

func TestLoginInactiveUser(t *testing.T) {
	user := activeUser(t, "correctpass")
	user.IsActive = false
	handler, sessionManager := newAuthHandler(t, &stubRepo{user: user}, nil)

	res, _ := doLogin(t, handler, sessionManager, `{"email":"user@test.local","password":"correctpass"}`)
	if res.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive user, got %d", res.Code)
	}
}

func TestLoginValidation(t *testing.T) {
	handler, sessionManager := newAuthHandler(t, &stubRepo{}, nil)

	res, _ := doLogin(t, handler, sessionManager, `{"email":"not-an-email","password":"short"}`)
	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.Code)
	}
}
