package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront-backend/internal/config"
)

func corsConfig() *config.Config {
	return &config.Config{
		Security: config.SecurityConfig{
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			CORSAllowedHeaders: []string{"Origin", "Content-Type", "Accept", "Cookie"},
		},
	}
}

func corsRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(corsConfig()))
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestCORS_EchoesAllowedOriginWithCredentials(t *testing.T) {
	router := corsRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORS_UnknownOriginGetsNoAllowHeader(t *testing.T) {
	router := corsRouter()

	tests := []struct {
		name   string
		origin string
	}{
		{name: "foreign origin", origin: "http://evil.example.com"},
		{name: "suffix lookalike", origin: "http://not-localhost:3000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Origin", tt.origin)
			router.ServeHTTP(w, req)

			assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	router := corsRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}
