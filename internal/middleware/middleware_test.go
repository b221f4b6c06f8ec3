package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func mockRouter(logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), Recovery(logger))
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})
	r.GET("/bad", func(c *gin.Context) {
		c.Status(http.StatusBadRequest)
	})
	r.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name   string
		req    func() *http.Request
		expect func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name: "generate",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/ok", nil)
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal(http.StatusOK, w.Code)
				assert.Len(w.Header().Get(RequestIDHeader), 36)
				assert.Equal(w.Header().Get(RequestIDHeader), w.Body.String())
			},
		},
		{
			name: "propagate",
			req: func() *http.Request {
				req := httptest.NewRequest(http.MethodGet, "/ok", nil)
				req.Header.Set(RequestIDHeader, "foo")
				return req
			},
			expect: func(t *testing.T, w *httptest.ResponseRecorder) {
				assert := assert.New(t)
				assert.Equal("foo", w.Header().Get(RequestIDHeader))
				assert.Equal("foo", w.Body.String())
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			mockRouter(zap.NewNop()).ServeHTTP(w, tc.req())
			tc.expect(t, w)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	tests := []struct {
		path    string
		status  int
		message string
	}{
		{path: "/ok", status: http.StatusOK, message: "request"},
		{path: "/bad", status: http.StatusBadRequest, message: "client error"},
		{path: "/panic", status: http.StatusInternalServerError, message: "request failed"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			assert := assert.New(t)
			core, logs := observer.New(zap.InfoLevel)

			w := httptest.NewRecorder()
			mockRouter(zap.New(core)).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(tc.status, w.Code)

			entries := logs.FilterMessage(tc.message).All()
			assert.Len(entries, 1)
			assert.Equal(tc.path, entries[0].ContextMap()["path"])
			assert.Equal(int64(tc.status), entries[0].ContextMap()["status"])
		})
	}
}
