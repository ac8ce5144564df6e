package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type stubValidator struct {
	userID uuid.UUID
	valid  string
}

func (v stubValidator) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	if token != v.valid {
		return uuid.Nil, errors.New("invalid token")
	}
	return v.userID, nil
}

func TestAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()
	validator := stubValidator{userID: userID, valid: "good-token"}

	tests := []struct {
		name       string
		header     string
		wantStatus int
	}{
		{name: "성공: 유효한 토큰", header: "Bearer good-token", wantStatus: http.StatusOK},
		{name: "성공: 소문자 bearer", header: "bearer good-token", wantStatus: http.StatusOK},
		{name: "실패: 헤더 없음", header: "", wantStatus: http.StatusUnauthorized},
		{name: "실패: 잘못된 형식", header: "Token good-token", wantStatus: http.StatusUnauthorized},
		{name: "실패: 폐기되거나 잘못된 토큰", header: "Bearer revoked", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Auth(validator))
			router.GET("/me", func(c *gin.Context) {
				assert.Equal(t, userID, c.MustGet(ContextUserID))
				assert.Equal(t, "good-token", c.MustGet(ContextToken))
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
			}
		})
	}
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"http://localhost:5173", "*.teamup.app"}))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name        string
		method      string
		origin      string
		wantStatus  int
		wantAllowed bool
	}{
		{name: "허용 origin", method: http.MethodGet, origin: "http://localhost:5173", wantStatus: http.StatusOK, wantAllowed: true},
		{name: "와일드카드 서브도메인", method: http.MethodGet, origin: "https://web.teamup.app", wantStatus: http.StatusOK, wantAllowed: true},
		{name: "http 서브도메인은 거부", method: http.MethodGet, origin: "http://web.teamup.app", wantStatus: http.StatusOK},
		{name: "모르는 origin", method: http.MethodGet, origin: "https://evil.example", wantStatus: http.StatusOK},
		{name: "preflight", method: http.MethodOptions, origin: "http://localhost:5173", wantStatus: http.StatusNoContent, wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/ping", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantAllowed {
				assert.Equal(t, tt.origin, w.Header().Get("Access-Control-Allow-Origin"))
			} else {
				assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			}
		})
	}
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Recovery(zap.NewNop()))
	router.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"code":"INTERNAL_ERROR"`)
}
