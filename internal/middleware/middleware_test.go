package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/invoice_drafting_app/internal/apperrors"
	"github.com/SscSPs/invoice_drafting_app/internal/core/domain"
	"github.com/SscSPs/invoice_drafting_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*domain.Session, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).(*domain.Session), args.String(1), args.Error(2)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func sessionRouter(auth *MockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.SessionMiddleware(auth, "loggedIn"))
	r.GET("/whoami", func(c *gin.Context) {
		username, ok := middleware.GetUsernameFromContext(c)
		if !ok {
			c.String(http.StatusOK, "anonymous")
			return
		}
		c.String(http.StatusOK, username)
	})
	r.GET("/api", middleware.RequireSession(), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	r.GET("/page", middleware.RequirePageSession("/login"), func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestSessionMiddleware(t *testing.T) {
	session := &domain.Session{LoggedIn: true, Username: "user", ExpiresAt: time.Now().Add(time.Hour)}

	tests := []struct {
		name   string
		setup  func(req *http.Request, auth *MockAuthService)
		expect string
	}{
		{
			name:   "no token",
			setup:  func(*http.Request, *MockAuthService) {},
			expect: "anonymous",
		},
		{
			name: "cookie",
			setup: func(req *http.Request, auth *MockAuthService) {
				req.AddCookie(&http.Cookie{Name: "loggedIn", Value: "good"})
				auth.On("Authenticate", mock.Anything, "good").Return(session, nil)
			},
			expect: "user",
		},
		{
			name: "bearer header",
			setup: func(req *http.Request, auth *MockAuthService) {
				req.Header.Set("Authorization", "Bearer good")
				auth.On("Authenticate", mock.Anything, "good").Return(session, nil)
			},
			expect: "user",
		},
		{
			name: "malformed header",
			setup: func(req *http.Request, auth *MockAuthService) {
				req.Header.Set("Authorization", "Token good")
			},
			expect: "anonymous",
		},
		{
			name: "rejected token",
			setup: func(req *http.Request, auth *MockAuthService) {
				req.AddCookie(&http.Cookie{Name: "loggedIn", Value: "stale"})
				auth.On("Authenticate", mock.Anything, "stale").Return(nil, apperrors.ErrUnauthenticated)
			},
			expect: "anonymous",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthService)
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req, auth)

			w := httptest.NewRecorder()
			sessionRouter(auth).ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.expect, w.Body.String())
			auth.AssertExpectations(t)
		})
	}
}

func TestRequireSession(t *testing.T) {
	auth := new(MockAuthService)
	r := sessionRouter(auth)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error": "Authentication required"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/page", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	auth.On("Authenticate", mock.Anything, "good").Return(&domain.Session{LoggedIn: true, Username: "user"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer good")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	newLimiter := func() *limiter.Limiter {
		return limiter.New(memory.NewStore(), limiter.Rate{Period: time.Minute, Limit: 1})
	}

	t.Run("json response", func(t *testing.T) {
		r := gin.New()
		r.POST("/login", middleware.RateLimit(newLimiter(), nil), func(c *gin.Context) { c.Status(http.StatusOK) })

		codes := make([]int, 2)
		for i := range codes {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
			codes[i] = w.Code
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("callback", func(t *testing.T) {
		r := gin.New()
		onLimited := func(c *gin.Context) { c.String(http.StatusTooManyRequests, "slow down") }
		r.POST("/login", middleware.RateLimit(newLimiter(), onLimited), func(c *gin.Context) { c.Status(http.StatusOK) })

		var w *httptest.ResponseRecorder
		for i := 0; i < 2; i++ {
			w = httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))
		}
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "slow down", w.Body.String())
	})
}

func TestStructuredLoggingMiddleware_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(middleware.GetLoggerFromCtx(context.Background())))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)
}
