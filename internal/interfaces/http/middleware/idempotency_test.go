package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/cache"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ *cache.MemoryIdempotencyStore }

func (*failingStore) MarkProcessed(context.Context, string, time.Duration) (bool, error) {
	return false, errors.New("connection refused")
}

func TestIdempotency(t *testing.T) {
	store := cache.NewMemoryIdempotencyStore()
	defer store.Close()

	calls := 0
	router := gin.New()
	router.Use(RequestID(), Idempotency(store, time.Hour))
	router.POST("/houses", func(c *gin.Context) {
		calls++
		if c.Query("fail") == "1" {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusCreated)
	})
	router.POST("/residents", func(c *gin.Context) { c.Status(http.StatusCreated) })

	post := func(path, key string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		if key != "" {
			req.Header.Set(IdempotencyKeyHeader, key)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("repeated key is rejected", func(t *testing.T) {
		calls = 0
		assert.Equal(t, http.StatusCreated, post("/houses", "k1").Code)

		w := post("/houses", "k1")
		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeDuplicateRequest)
		assert.Equal(t, 1, calls)
	})

	t.Run("keys are scoped by path", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, post("/residents", "k1").Code)
	})

	t.Run("failed request releases its key", func(t *testing.T) {
		calls = 0
		assert.Equal(t, http.StatusBadRequest, post("/houses?fail=1", "k2").Code)
		assert.Equal(t, http.StatusCreated, post("/houses", "k2").Code)
		assert.Equal(t, 2, calls)
	})

	t.Run("no header passes through", func(t *testing.T) {
		assert.Equal(t, http.StatusCreated, post("/houses", "").Code)
		assert.Equal(t, http.StatusCreated, post("/houses", "").Code)
	})

	t.Run("oversized key", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, post("/houses", strings.Repeat("k", 300)).Code)
	})
}

func TestIdempotency_StoreErrorPassesThrough(t *testing.T) {
	store := &failingStore{cache.NewMemoryIdempotencyStore()}
	defer store.Close()
	router := gin.New()
	router.Use(Idempotency(store, time.Hour))
	router.POST("/houses", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/houses", nil)
	req.Header.Set(IdempotencyKeyHeader, "k")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestIdempotency_PanicReleasesKey(t *testing.T) {
	store := cache.NewMemoryIdempotencyStore()
	defer store.Close()

	panics := true
	router := gin.New()
	router.Use(gin.CustomRecovery(func(c *gin.Context, _ any) {
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(Idempotency(store, time.Hour))
	router.POST("/payments", func(c *gin.Context) {
		if panics {
			panic("boom")
		}
		c.Status(http.StatusCreated)
	})

	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/payments", nil)
		req.Header.Set(IdempotencyKeyHeader, "retry-me")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusInternalServerError, post())

	claimed, err := store.IsProcessed(context.Background(), "/payments:retry-me")
	require.NoError(t, err)
	assert.False(t, claimed)

	panics = false
	assert.Equal(t, http.StatusCreated, post())
}
