package middleware

import (
	"bytes"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voltio_back_end/internal/cache"
)

func setupRateLimitRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		cache.RedisClient.Close()
		cache.RedisClient = nil
	})
}

func loginRequest(body io.Reader) (*httptest.ResponseRecorder, *gin.Context) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/login", body)
	return w, c
}

func TestLoginRateLimit_BlocksAfterMaxAttempts(t *testing.T) {
	setupRateLimitRedis(t)
	limiter := LoginRateLimit()

	body := `{"email":"alice@voltio.shop","password":"x"}`
	for i := 0; i < LoginMaxAttempts; i++ {
		w, c := loginRequest(bytes.NewBufferString(body))
		limiter(c)
		require.NotEqual(t, http.StatusTooManyRequests, w.Code)
		assert.False(t, c.IsAborted())
	}

	w, c := loginRequest(bytes.NewBufferString(body))
	limiter(c)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, c.IsAborted())
}

func TestLoginRateLimit_CountsPerEmail(t *testing.T) {
	setupRateLimitRedis(t)
	limiter := LoginRateLimit()

	for i := 0; i < LoginMaxAttempts; i++ {
		_, c := loginRequest(bytes.NewBufferString(`{"email":"alice@voltio.shop"}`))
		limiter(c)
	}

	// Un autre email n'est pas pénalisé par les tentatives d'alice
	w, c := loginRequest(bytes.NewBufferString(`{"email":"bob@voltio.shop"}`))
	limiter(c)
	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, c.IsAborted())
}

func TestLoginRateLimit_RestoresBodyForHandler(t *testing.T) {
	setupRateLimitRedis(t)
	limiter := LoginRateLimit()

	body := `{"email":"alice@voltio.shop","password":"secret"}`
	_, c := loginRequest(bytes.NewBufferString(body))
	limiter(c)

	// Le handler de login doit pouvoir relire le body en entier
	restored, err := io.ReadAll(c.Request.Body)
	require.NoError(t, err)
	assert.Equal(t, body, string(restored))
}

type brokenReader struct{}

func (brokenReader) Read([]byte) (int, error) { return 0, errors.New("connexion coupée") }

func TestLoginRateLimit_UnreadableBodyFallsThrough(t *testing.T) {
	setupRateLimitRedis(t)
	limiter := LoginRateLimit()

	// Body illisible : le limiteur s'efface et laisse le handler répondre
	w, c := loginRequest(brokenReader{})
	limiter(c)

	assert.NotEqual(t, http.StatusTooManyRequests, w.Code)
	assert.False(t, c.IsAborted())
}

func TestCheckoutRateLimit_BlocksAfterMaxAttempts(t *testing.T) {
	setupRateLimitRedis(t)
	limiter := CheckoutRateLimit()

	for i := 0; i < CheckoutMaxAttempts; i++ {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		c.Set("user_id", 7)
		limiter(c)
		require.NotEqual(t, http.StatusTooManyRequests, w.Code)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	c.Set("user_id", 7)
	limiter(c)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.True(t, c.IsAborted())
}
