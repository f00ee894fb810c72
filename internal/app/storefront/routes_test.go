package storefront

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/course-storefront/internal/http/handlers/payment/intent"
	"github.com/magabrotheeeer/course-storefront/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/course-storefront/internal/paymentprovider"
	"github.com/magabrotheeeer/course-storefront/internal/ratelimit"
	authservice "github.com/magabrotheeeer/course-storefront/internal/services/auth"
	newsletterservice "github.com/magabrotheeeer/course-storefront/internal/services/newsletter"
	"github.com/magabrotheeeer/course-storefront/internal/storage/memory"
)

type testServer struct {
	router chi.Router
	store  *memory.Storage
}

func newTestServer(t *testing.T, limiter *ratelimit.Memory, provider intent.ProviderClient, opts ...func(*Deps)) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	if limiter == nil {
		limiter = ratelimit.NewMemory(1000, 1000)
	}

	deps := Deps{
		Store:      store,
		Auth:       authservice.NewService(store, rabbitmq.Noop{}, logger),
		Newsletter: newsletterservice.NewService(store, rabbitmq.Noop{}, logger),
		Limiter:    limiter,
		Provider:   provider,
		Currency:   "usd",
	}
	for _, opt := range opts {
		opt(&deps)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, logger, deps)
	return &testServer{router: r, store: store}
}

func (s *testServer) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)

	var obj map[string]any
	_ = json.Unmarshal(rr.Body.Bytes(), &obj)
	return rr, obj
}

func TestSignupFlow(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rr, body := s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"123"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Password must be at least 6 characters long", body["message"])

	rr, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"a@x.com"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username, email, and password are required", body["message"])

	rr, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "User created successfully", body["message"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.EqualValues(t, 1, user["id"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, rr.Body.String(), "secret1")

	rr, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"b@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Username already exists", body["message"])

	rr, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"bob","email":"a@x.com","password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Email already exists", body["message"])

	// формат email не проверяется, достаточно непустой строки
	rr, body = s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"carol","email":"carol","password":"longenough"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	user, ok = body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "carol", user["email"])
}

func TestLoginFlow(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rr, _ := s.do(t, http.MethodPost, "/api/auth/signup", `{"username":"alice","email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, body := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotContains(t, rr.Body.String(), "secret1")

	wrongRR, wrong := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"nope123"}`)
	unknownRR, unknown := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"secret1"}`)
	assert.Equal(t, http.StatusUnauthorized, wrongRR.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownRR.Code)
	assert.Equal(t, "Invalid username or password", wrong["message"])
	assert.Equal(t, wrong, unknown)

	rr, body = s.do(t, http.MethodPost, "/api/auth/login", `{"username":"alice"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "Username and password are required", body["message"])
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, nil, nil)
	require.NoError(t, s.store.Seed(t.Context()))

	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/courses", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var courses []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &courses))
	assert.Len(t, courses, 3)
	assert.Equal(t, "99.00", courses[0]["price"])

	rr, body := s.do(t, http.MethodGet, "/api/courses/2", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Day Trading Drums", body["title"])

	rr, body = s.do(t, http.MethodGet, "/api/courses/999", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, strings.ToLower(body["message"].(string)), "not found")

	rr, _ = s.do(t, http.MethodGet, "/api/courses/abc", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, body = s.do(t, http.MethodGet, "/api/playlists/1", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Investing 101", body["title"])

	rr, _ = s.do(t, http.MethodGet, "/api/playlists/42", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	for _, path := range []string{"/api/playlists", "/api/videos", "/api/playlists/3/videos"} {
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.True(t, strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "["), path)
	}

	for _, path := range []string{"/api/playlists/999/videos", "/api/playlists/abc/videos"} {
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, `[]`, rr.Body.String(), path)
	}
}

func TestEmptyCatalog(t *testing.T) {
	s := newTestServer(t, nil, nil)

	for _, path := range []string{"/api/courses", "/api/playlists", "/api/videos"} {
		rr := httptest.NewRecorder()
		s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, `[]`, rr.Body.String(), path)
	}
}

func TestNewsletterRoute(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rr, body := s.do(t, http.MethodPost, "/api/newsletter", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "Successfully subscribed to newsletter", body["message"])
	n, ok := body["newsletter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", n["email"])
	assert.Contains(t, n, "subscribedAt")

	rr, body = s.do(t, http.MethodPost, "/api/newsletter", `{"email":"a@x.com"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "Email already subscribed", body["message"])

	rr, _ = s.do(t, http.MethodPost, "/api/newsletter", `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, _ = s.do(t, http.MethodPost, "/api/newsletter", `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthRateLimit(t *testing.T) {
	s := newTestServer(t, ratelimit.NewMemory(0.001, 2), nil)

	for range 2 {
		rr, _ := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"x","password":"y"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	}
	rr, body := s.do(t, http.MethodPost, "/api/auth/login", `{"username":"x","password":"y"}`)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "Too many requests", body["message"])

	// каталог не ограничивается
	rr, _ = s.do(t, http.MethodGet, "/api/courses", "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func loginFrom(s *testServer, realIP string) int {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"username":"x","password":"y"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Real-IP", realIP)
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr.Code
}

func TestAuthRateLimit_IgnoresForwardedHeaders(t *testing.T) {
	s := newTestServer(t, ratelimit.NewMemory(0.001, 2), nil)

	var codes []int
	for i := range 6 {
		codes = append(codes, loginFrom(s, fmt.Sprintf("203.0.113.%d", i+1)))
	}

	// все запросы с одного адреса соединения
	assert.Equal(t, []int{
		http.StatusUnauthorized, http.StatusUnauthorized,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestAuthRateLimit_TrustedProxy(t *testing.T) {
	s := newTestServer(t, ratelimit.NewMemory(0.001, 1), nil, func(d *Deps) {
		d.TrustProxy = true
	})

	assert.Equal(t, http.StatusUnauthorized, loginFrom(s, "203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(s, "203.0.113.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(s, "203.0.113.2"))
}

func TestPaymentIntentRoute(t *testing.T) {
	t.Run("provider not configured", func(t *testing.T) {
		s := newTestServer(t, nil, nil)
		rr, _ := s.do(t, http.MethodPost, "/api/create-payment-intent", `{"amount":99,"courseId":1}`)
		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	})

	t.Run("intent created for course price", func(t *testing.T) {
		var gotAmount string
		provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NoError(t, r.ParseForm())
			gotAmount = r.PostForm.Get("amount")
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"id":"pi_1","client_secret":"pi_1_secret_abc","amount":9900,"currency":"usd","status":"requires_payment_method"}`)
		}))
		defer provider.Close()

		s := newTestServer(t, nil, paymentprovider.NewClient("sk_test", provider.URL, time.Second))
		require.NoError(t, s.store.Seed(t.Context()))

		rr, body := s.do(t, http.MethodPost, "/api/create-payment-intent", `{"amount":99,"courseId":"1"}`)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "pi_1_secret_abc", body["clientSecret"])
		assert.Equal(t, "9900", gotAmount)

		rr, _ = s.do(t, http.MethodPost, "/api/create-payment-intent", `{"amount":1,"courseId":1}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)

		rr, _ = s.do(t, http.MethodPost, "/api/create-payment-intent", `{"amount":99,"courseId":999}`)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestServiceRoutes(t *testing.T) {
	s := newTestServer(t, nil, nil)

	rr, body := s.do(t, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", body["status"])

	s.do(t, http.MethodGet, "/api/courses", "")
	rr = httptest.NewRecorder()
	s.router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "storefront_http_requests_total")

	rr, _ = s.do(t, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
