package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/healthz", Health)
	router.HEAD("/healthz", Health)
	router.OPTIONS("/healthz", Health)

	tests := []struct {
		name           string
		method         string
		expectedStatus int
		expectBody     bool
	}{
		{name: "GET returns status ok", method: http.MethodGet, expectedStatus: http.StatusOK, expectBody: true},
		{name: "HEAD returns 200 without body", method: http.MethodHead, expectedStatus: http.StatusOK},
		{name: "OPTIONS returns 204", method: http.MethodOptions, expectedStatus: http.StatusNoContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(tt.method, "/healthz", nil)

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
			if tt.expectBody {
				assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
			}
		})
	}
}
