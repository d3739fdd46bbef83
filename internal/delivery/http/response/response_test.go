package response_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"childcare-cv-backend/internal/delivery/http/response"
	"childcare-cv-backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, requestID string, write func(c *gin.Context)) map[string]any {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if requestID != "" {
		c.Set(string(domain.KeyRequestID), requestID)
	}
	write(c)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestRequestIDEcho(t *testing.T) {
	t.Run("Should echo the request id on success and error", func(t *testing.T) {
		ok := render(t, "req-123", func(c *gin.Context) {
			response.Success(c, http.StatusOK, "Profile retrieved", map[string]string{"slug": "camille"})
		})
		assert.Equal(t, true, ok["success"])
		assert.Equal(t, "req-123", ok["request_id"])

		failed := render(t, "req-456", func(c *gin.Context) {
			response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
		})
		assert.Equal(t, false, failed["success"])
		assert.Equal(t, "req-456", failed["request_id"])
		assert.NotContains(t, failed, "error")
	})

	t.Run("Should omit request_id when none was assigned", func(t *testing.T) {
		body := render(t, "", func(c *gin.Context) {
			response.Success(c, http.StatusOK, "ok", nil)
		})
		assert.NotContains(t, body, "request_id")
		assert.NotContains(t, body, "data")
	})
}
