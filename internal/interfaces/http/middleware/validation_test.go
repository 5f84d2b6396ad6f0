package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/ldipasquale/terzo-posto-server/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=200"`
	Kind     string `json:"kind" binding:"required,oneof=purchased composed"`
	PageSize int    `json:"page_size" binding:"omitempty,min=1,max=100"`
}

func TestSetupValidatorUsesJSONTagNames(t *testing.T) {
	SetupValidator()

	engine := gin.New()
	engine.POST("/test", func(c *gin.Context) {
		var req sampleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/test", bytes.NewBufferString(`{"kind": "imported"}`))
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)

	fields := make(map[string]string)
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Equal(t, "This field is required", fields["name"])
	assert.Contains(t, fields["kind"], "Must be one of")
}

func TestFormatValidationErrorsNonValidatorError(t *testing.T) {
	resp := FormatValidationErrors(assert.AnError, "req-1")

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
	assert.Equal(t, "req-1", resp.Error.RequestID)
}
