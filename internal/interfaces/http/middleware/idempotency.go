package middleware

import (
	"net/http"
	"time"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/infrastructure/logger"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// IdempotencyKeyHeader lets clients retry a create without duplicating it
const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 255

// Idempotency claims the Idempotency-Key of POST requests for ttl.
// A second request with a claimed key gets 409; a request that does not end
// in 2xx, or that panics, releases its key. Requests without the header
// pass through.
func Idempotency(store shared.IdempotencyStore, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyKeyHeader)
		if c.Request.Method != http.MethodPost || key == "" {
			c.Next()
			return
		}

		if len(key) > maxIdempotencyKeyLength {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeBadRequest,
				"Idempotency-Key must be at most 255 characters",
				GetRequestID(c),
			))
			return
		}

		ctx := c.Request.Context()
		scoped := c.Request.URL.Path + ":" + key

		claimed, err := store.MarkProcessed(ctx, scoped, ttl)
		if err != nil {
			// store outage must not block writes
			logger.L(ctx).Warn("idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			c.AbortWithStatusJSON(http.StatusConflict, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeDuplicateRequest,
				"A request with this Idempotency-Key was already processed",
				GetRequestID(c),
			))
			return
		}

		// finished stays false when a handler panics; the key is released
		// before the panic reaches the recovery middleware
		finished := false
		defer func() {
			if finished {
				if status := c.Writer.Status(); status >= 200 && status < 300 {
					return
				}
			}
			if err := store.Release(ctx, scoped); err != nil {
				logger.L(ctx).Warn("failed to release idempotency key", zap.Error(err))
			}
		}()

		c.Next()
		finished = true
	}
}
