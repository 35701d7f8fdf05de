package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/careloop/scheduling-api/pkg/errors"
)

func performRequest(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerMapsAppErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cause := fmt.Errorf("row missing")
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"not found", apperrors.NotFound("clinic", cause), http.StatusNotFound, "clinic not found"},
		{"bad request", apperrors.BadRequest("invalid date", cause), http.StatusBadRequest, "invalid date"},
		{"conflict", apperrors.Conflict("slot already booked", cause), http.StatusConflict, "slot already booked"},
		{"unauthorized", apperrors.Unauthorized(cause), http.StatusUnauthorized, "unauthorized"},
		{"internal", apperrors.Internal(cause), http.StatusInternalServerError, "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ErrorHandler())
			router.GET("/boom", func(c *gin.Context) {
				c.Error(tt.err)
			})

			w := performRequest(router, "/boom")
			require.Equal(t, tt.wantStatus, w.Code)

			var body ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestErrorHandlerUntypedErrorIs500(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(fmt.Errorf("something broke"))
	})

	w := performRequest(router, "/boom")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestErrorHandlerNoErrorsPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := performRequest(router, "/ok")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestErrorHandlerIncludesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), ErrorHandler())
	router.GET("/boom", func(c *gin.Context) {
		c.Error(apperrors.NotFound("appointment", nil))
	})

	w := performRequest(router, "/boom")
	require.Equal(t, http.StatusNotFound, w.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.TraceID)
}
