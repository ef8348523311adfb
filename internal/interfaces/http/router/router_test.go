package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/stub", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
}

func TestRouter_SetupRegistersUnderVersionedGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	stub := &stubRegistrar{}

	NewRouter(engine).Register(stub).Setup()

	assert.True(t, stub.registered)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stub", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WithAPIVersion(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()

	NewRouter(engine, WithAPIVersion("v2")).Register(&stubRegistrar{}).Setup()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v2/stub", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/stub", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
