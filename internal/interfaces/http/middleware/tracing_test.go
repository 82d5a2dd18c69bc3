package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func newTracedRouter(t *testing.T) (*gin.Engine, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(t.Context()) })

	router := gin.New()
	router.Use(RequestID(), Tracing(TracingConfig{
		ServiceName:    "test-service",
		Enabled:        true,
		TracerProvider: tp,
	}), SpanAttributes())
	router.GET("/houses/:id", func(c *gin.Context) {
		switch c.Param("id") {
		case "404":
			c.Status(http.StatusNotFound)
		case "500":
			c.Status(http.StatusInternalServerError)
		default:
			c.Status(http.StatusOK)
		}
	})
	return router, recorder
}

func findSpan(spans []sdktrace.ReadOnlySpan, name string) sdktrace.ReadOnlySpan {
	for _, s := range spans {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

func TestTracing(t *testing.T) {
	t.Run("names the span after the route and tags the request id", func(t *testing.T) {
		router, recorder := newTracedRouter(t)

		req := httptest.NewRequest(http.MethodGet, "/houses/1", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		router.ServeHTTP(httptest.NewRecorder(), req)

		span := findSpan(recorder.Ended(), "GET /houses/:id")
		require.NotNil(t, span)

		var requestID string
		for _, attr := range span.Attributes() {
			if attr.Key == "request_id" {
				requestID = attr.Value.AsString()
			}
		}
		assert.Equal(t, "req-123", requestID)
		assert.NotEqual(t, codes.Error, span.Status().Code)
	})

	for _, id := range []string{"404", "500"} {
		t.Run("marks "+id+" as error", func(t *testing.T) {
			router, recorder := newTracedRouter(t)
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/houses/"+id, nil))

			span := findSpan(recorder.Ended(), "GET /houses/:id")
			require.NotNil(t, span)
			assert.Equal(t, codes.Error, span.Status().Code)
		})
	}

	t.Run("disabled passes through", func(t *testing.T) {
		router := gin.New()
		router.Use(Tracing(TracingConfig{Enabled: false}), SpanAttributes())
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusTeapot) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		assert.Equal(t, http.StatusTeapot, w.Code)
	})
}
