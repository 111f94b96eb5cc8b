package middleware

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stockroom/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBodyLimit(t *testing.T) {
	router := gin.New()
	router.Use(RequestID(), BodyLimit(100))
	router.POST("/test", func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "read failed")
			return
		}
		c.String(http.StatusOK, string(body))
	})

	t.Run("allows request within limit", func(t *testing.T) {
		w := serve(router, httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("small body")))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "small body", w.Body.String())
	})

	t.Run("rejects declared length over limit", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 200)))
		req.Header.Set(RequestIDHeader, "req-413")
		w := serve(router, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
		assert.Equal(t, dto.ErrCodeRequestTooLarge, resp.Error.Code)
		assert.Equal(t, "req-413", resp.Error.RequestID)
	})

	t.Run("caps bodies without a declared length", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 200)))
		req.ContentLength = -1
		w := serve(router, req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})
}
