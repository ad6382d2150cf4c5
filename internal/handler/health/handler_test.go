package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h *Handler, path string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func up(context.Context) error   { return nil }
func down(context.Context) error { return errors.New("connection refused") }

func TestLiveness(t *testing.T) {
	w, body := serve(t, NewHandler(nil), "/health/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", body["status"])
}

func TestReadiness(t *testing.T) {
	w, body := serve(t, NewHandler(map[string]Pinger{"database": PingFunc(up), "redis": PingFunc(up)}), "/health/ready")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "UP", body["status"])

	w, body = serve(t, NewHandler(map[string]Pinger{"database": PingFunc(up), "redis": PingFunc(down)}), "/health/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "DOWN", body["status"])
	assert.Equal(t, map[string]interface{}{"database": "UP", "redis": "DOWN"}, body["checks"])
}
