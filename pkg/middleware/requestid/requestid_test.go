package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, supplied string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/courses", nil)
	if supplied != "" {
		c.Request.Header.Set("X-Request-ID", supplied)
	}

	Middleware()(c)
	return rec, Value(c)
}

func TestMiddlewareGeneratesID(t *testing.T) {
	rec, stored := perform(t, "")

	require.NotEmpty(t, stored)
	assert.Equal(t, stored, rec.Header().Get("X-Request-ID"))
	_, err := uuid.Parse(stored)
	assert.NoError(t, err)
}

func TestMiddlewareKeepsSuppliedID(t *testing.T) {
	rec, stored := perform(t, "gateway-abc123")

	assert.Equal(t, "gateway-abc123", stored)
	assert.Equal(t, "gateway-abc123", rec.Header().Get("X-Request-ID"))
}

func TestValueWithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, Value(c))
}
