package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/EliwtFdez/ClusterWeb/internal/domain/shared"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/dto"
	"github.com/EliwtFdez/ClusterWeb/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestContext(method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	t.Run("from context", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		c.Set(middleware.RequestIDKey, "ctx-id")
		c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
		assert.Equal(t, "ctx-id", getRequestID(c))
	})

	t.Run("falls back to header", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
		assert.Equal(t, "header-id", getRequestID(c))
	})

	t.Run("empty when not set", func(t *testing.T) {
		c, _ := newTestContext(http.MethodGet, "/")
		assert.Empty(t, getRequestID(c))
	})
}

func TestBaseHandler_Created(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodPost, "/houses")

	h.Created(c, "/api/v1/houses/7", gin.H{"id": 7})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "/api/v1/houses/7", w.Header().Get("Location"))
	assert.JSONEq(t, `{"id":7}`, w.Body.String())
}

func TestBaseHandler_NoContent(t *testing.T) {
	h := &BaseHandler{}
	c, w := newTestContext(http.MethodDelete, "/houses/1")

	h.NoContent(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBaseHandler_HandleDomainError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantField   string
	}{
		{
			name:        "not found keeps the entity message",
			err:         shared.NewNotFoundError("House"),
			wantStatus:  http.StatusNotFound,
			wantCode:    dto.ErrCodeNotFound,
			wantMessage: "House not found",
		},
		{
			name:        "field validation lists the field",
			err:         shared.NewValidationError("email", "Invalid email format"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    dto.ErrCodeValidation,
			wantMessage: "Request validation failed",
			wantField:   "email",
		},
		{
			name:        "already exists",
			err:         shared.NewDomainError(shared.CodeAlreadyExists, "House number already exists"),
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrCodeAlreadyExists,
			wantMessage: "House number already exists",
		},
		{
			name:        "conflict uses the generic message",
			err:         shared.ErrReferenced,
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrCodeConflict,
			wantMessage: dto.MsgConflict,
		},
		{
			name:        "wrapped domain error",
			err:         fmt.Errorf("update due: %w", shared.ErrConcurrencyConflict),
			wantStatus:  http.StatusConflict,
			wantCode:    dto.ErrCodeConflict,
			wantMessage: dto.MsgConflict,
		},
		{
			name:        "store failure is hidden",
			err:         errors.New("pq: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    dto.ErrCodeInternal,
			wantMessage: dto.MsgInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			c, w := newTestContext(http.MethodGet, "/")
			c.Set(middleware.RequestIDKey, "req-1")

			h.HandleDomainError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeError(t, w)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, tt.wantMessage, resp.Message)
			assert.Equal(t, "req-1", resp.RequestID)
			if tt.wantField != "" {
				assert.Contains(t, resp.Errors, tt.wantField)
			} else {
				assert.Empty(t, resp.Errors)
			}
			assert.NotContains(t, w.Body.String(), "pq:")
		})
	}
}

func TestBaseHandler_BindID(t *testing.T) {
	router := gin.New()
	router.GET("/houses/:id", func(c *gin.Context) {
		h := &BaseHandler{}
		id, ok := h.bindID(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for _, raw := range []string{"abc", "0", "-1"} {
		t.Run(raw, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/houses/"+raw, nil))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, decodeError(t, w).Errors, "id")
		})
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/houses/12", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":12}`, w.Body.String())
}
