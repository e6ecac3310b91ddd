package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/agendavista/task-api/internal/core/service"
	"github.com/agendavista/task-api/internal/infrastructure/db/memory"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	store := memory.NewStore()
	tokens := service.NewTokenService("test-secret", time.Hour)

	return NewRouter(Deps{
		AuthService: service.NewAuthService(store.Users(), tokens),
		TaskService: service.NewTaskService(store.Tasks(), nil, zerolog.Nop()),
		Tokens:      tokens,
		Users:       store.Users(),
		Logger:      zerolog.Nop(),
		Production:  true,
	})
}

func request(t *testing.T, e *echo.Echo, method, path, token, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Body.Len() > 0 {
		_ = json.Unmarshal(rec.Body.Bytes(), &decoded)
	}
	return rec, decoded
}

func TestEndToEndScenario(t *testing.T) {
	e := newTestServer(t)

	// Register with mixed-case email.
	rec, body := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"Ann@X.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	token1, _ := body["token"].(string)
	if token1 == "" {
		t.Fatalf("register: missing token")
	}
	user, _ := body["user"].(map[string]any)
	userID, _ := user["id"].(string)
	if userID == "" {
		t.Fatalf("register: missing user id")
	}
	if user["email"] != "ann@x.com" {
		t.Fatalf("register: email not normalized: %v", user["email"])
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("register: response leaks password hash")
	}

	// Login with the lowercase form of the same email.
	rec, body = request(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"ann@x.com","password":"secret1"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	token2, _ := body["token"].(string)
	if token2 == "" {
		t.Fatalf("login: missing token")
	}
	if loginUser, _ := body["user"].(map[string]any); loginUser["id"] != userID {
		t.Fatalf("login: resolved a different user: %v", loginUser["id"])
	}

	// Create a task with the login token.
	rec, body = request(t, e, http.MethodPost, "/tasks", token2,
		`{"title":"Buy milk","priority":"low","category":"Personal"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task: expected 201, got %d (%s)", rec.Code, rec.Body.String())
	}
	task, _ := body["task"].(map[string]any)
	taskID, _ := task["id"].(string)
	if taskID == "" {
		t.Fatalf("create task: missing id")
	}
	if task["completed"] != false {
		t.Fatalf("create task: expected completed=false, got %v", task["completed"])
	}

	// List contains exactly that task.
	rec, body = request(t, e, http.MethodGet, "/tasks", token2, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list: expected 200, got %d", rec.Code)
	}
	tasks, _ := body["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("list: expected 1 task, got %d", len(tasks))
	}
	if first, _ := tasks[0].(map[string]any); first["id"] != taskID {
		t.Fatalf("list: unexpected task: %v", first)
	}

	// Delete it and observe the empty list.
	rec, _ = request(t, e, http.MethodDelete, "/tasks/"+taskID, token2, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", rec.Code)
	}
	rec, body = request(t, e, http.MethodGet, "/tasks", token2, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list after delete: expected 200, got %d", rec.Code)
	}
	if tasks, _ := body["tasks"].([]any); len(tasks) != 0 {
		t.Fatalf("list after delete: expected empty, got %v", tasks)
	}
}

func TestRegister_DuplicateEmailIs400(t *testing.T) {
	e := newTestServer(t)

	rec, _ := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("first register: expected 201, got %d", rec.Code)
	}

	// Same email, different case. 400 by contract, not 409.
	rec, body := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann 2","email":"ANN@X.COM","password":"secret2"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: expected 400, got %d", rec.Code)
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Fatalf("duplicate register: expected error message")
	}
}

func TestRegister_MissingFieldsIs400(t *testing.T) {
	e := newTestServer(t)

	for _, body := range []string{
		`{"email":"a@x.com","password":"secret1"}`,
		`{"name":"Ann","password":"secret1"}`,
		`{"name":"Ann","email":"a@x.com"}`,
		`{"name":"Ann","email":"not-an-email","password":"secret1"}`,
	} {
		rec, resp := request(t, e, http.MethodPost, "/auth/register", "", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: expected 400, got %d", body, rec.Code)
		}
		if msg, _ := resp["error"].(string); msg == "" {
			t.Fatalf("body %s: expected descriptive error", body)
		}
	}
}

func TestLogin_BadCredentialsIs401(t *testing.T) {
	e := newTestServer(t)

	_, _ = request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)

	rec, _ := request(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"ann@x.com","password":"wrong"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	rec, _ = request(t, e, http.MethodPost, "/auth/login", "",
		`{"email":"ghost@x.com","password":"secret1"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown email, got %d", rec.Code)
	}
}

func TestTasks_RequireToken(t *testing.T) {
	e := newTestServer(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/some-id"},
		{http.MethodDelete, "/tasks/some-id"},
		{http.MethodGet, "/auth/verify"},
		{http.MethodGet, "/users/profile"},
	} {
		rec, _ := request(t, e, route.method, route.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", route.method, route.path, rec.Code)
		}
	}
}

func TestTasks_OwnershipBoundaryIs404(t *testing.T) {
	e := newTestServer(t)

	_, bodyA := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	tokenA, _ := bodyA["token"].(string)
	_, bodyB := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Bob","email":"bob@x.com","password":"secret2"}`)
	tokenB, _ := bodyB["token"].(string)

	_, created := request(t, e, http.MethodPost, "/tasks", tokenA,
		`{"title":"Buy milk","priority":"low","category":"Personal"}`)
	task, _ := created["task"].(map[string]any)
	taskID, _ := task["id"].(string)

	// Bob cannot see, mutate, or delete Ann's task; each attempt is a 404.
	rec, _ := request(t, e, http.MethodPut, "/tasks/"+taskID, tokenB, `{"completed":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign update: expected 404, got %d", rec.Code)
	}
	rec, _ = request(t, e, http.MethodDelete, "/tasks/"+taskID, tokenB, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("foreign delete: expected 404, got %d", rec.Code)
	}

	// Ann's record is intact and unmodified.
	_, listed := request(t, e, http.MethodGet, "/tasks", tokenA, "")
	tasks, _ := listed["tasks"].([]any)
	if len(tasks) != 1 {
		t.Fatalf("expected Ann's task to survive, got %v", tasks)
	}
	if first, _ := tasks[0].(map[string]any); first["completed"] != false {
		t.Fatalf("foreign update mutated the task: %v", first)
	}
}

func TestTasks_CreateValidation(t *testing.T) {
	e := newTestServer(t)

	_, body := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	token, _ := body["token"].(string)

	for _, payload := range []string{
		`{"priority":"low","category":"Personal"}`,
		`{"title":"Buy milk","category":"Personal"}`,
		`{"title":"Buy milk","priority":"urgent","category":"Personal"}`,
		`{"title":"Buy milk","priority":"low"}`,
	} {
		rec, _ := request(t, e, http.MethodPost, "/tasks", token, payload)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, rec.Code)
		}
	}
}

func TestVerifyAndProfile(t *testing.T) {
	e := newTestServer(t)

	_, body := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	token, _ := body["token"].(string)

	rec, verified := request(t, e, http.MethodGet, "/auth/verify", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("verify: expected 200, got %d", rec.Code)
	}
	if user, _ := verified["user"].(map[string]any); user["email"] != "ann@x.com" {
		t.Fatalf("verify: unexpected user: %v", verified)
	}

	rec, profile := request(t, e, http.MethodGet, "/users/profile", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile: expected 200, got %d", rec.Code)
	}
	if user, _ := profile["user"].(map[string]any); user["name"] != "Ann" {
		t.Fatalf("profile: unexpected user: %v", profile)
	}
}

func TestUpdate_UnknownTaskIs404(t *testing.T) {
	e := newTestServer(t)

	_, body := request(t, e, http.MethodPost, "/auth/register", "",
		`{"name":"Ann","email":"ann@x.com","password":"secret1"}`)
	token, _ := body["token"].(string)

	rec, _ := request(t, e, http.MethodPut, "/tasks/does-not-exist", token, `{"completed":true}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	rec, _ = request(t, e, http.MethodDelete, "/tasks/does-not-exist", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
