package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cadastro/services"
	"cadastro/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(t *testing.T, h gin.HandlerFunc) (int, map[string]any) {
	t.Helper()
	r := gin.New()
	r.Use(Recovery(), ErrorHandler())
	r.GET("/", h)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return w.Code, body
}

func TestErrorHandlerServiceError(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) {
		v := &services.Validation{}
		v.Add("nome", "nome é obrigatório")
		_ = c.Error(fmt.Errorf("create: %w", v.Err()))
	})

	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "dados inválidos", body["message"])
	details := body["details"].([]any)
	require.Len(t, details, 1)
	assert.Equal(t, "nome", details[0].(map[string]any)["campo"])
}

func TestErrorHandlerStatuses(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{services.NotFound("não achei"), http.StatusNotFound},
		{services.Conflict("duplicado"), http.StatusConflict},
		{services.Unauthorized("token"), http.StatusUnauthorized},
		{fmt.Errorf("foto: %w", storage.ErrUnsupportedType), http.StatusBadRequest},
		{errors.New("banco caiu"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		code, body := serve(t, func(c *gin.Context) { _ = c.Error(tc.err) })
		assert.Equal(t, tc.code, code, tc.err.Error())
		assert.NotEmpty(t, body["message"])
		if tc.code == http.StatusInternalServerError {
			assert.NotContains(t, body["message"], "banco caiu")
		}
	}
}

func TestRecovery(t *testing.T) {
	code, body := serve(t, func(c *gin.Context) { panic("boom") })
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "erro interno do servidor", body["message"])
}

func TestCORSPreflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware("*"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
