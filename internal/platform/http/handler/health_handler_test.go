package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHealthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)
	r.OPTIONS("/healthz", Health)
	return r
}

func request(r *gin.Engine, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, "/healthz", nil)
	r.ServeHTTP(w, req)
	return w
}

// TestHealth_Get はGETでサービス名入りのJSONが返ることを検証します。
func TestHealth_Get(t *testing.T) {
	t.Parallel()

	w := request(newHealthRouter(), http.MethodGet)

	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "etf_platform", body["service"])
}

// TestHealth_MethodStatus はメソッドごとのステータスとキャッシュ禁止ヘッダーを検証します。
func TestHealth_MethodStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		method string
		status int
	}{
		{http.MethodGet, http.StatusOK},
		{http.MethodHead, http.StatusOK},
		{http.MethodOptions, http.StatusNoContent},
	}

	r := newHealthRouter()
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := request(r, tt.method)

			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.method != http.MethodGet {
				assert.Zero(t, w.Body.Len())
			}
		})
	}
}
