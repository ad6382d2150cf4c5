package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"bad request", apperrors.NewBadRequest("date is required", nil), http.StatusBadRequest, "date is required"},
		{"not found", apperrors.NewNotFound("appointment", nil), http.StatusNotFound, "appointment not found"},
		{"conflict", apperrors.NewConflict("appointment is COMPLETED", nil), http.StatusConflict, "appointment is COMPLETED"},
		{"plain error hides details", errors.New("pq: password authentication failed"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			RespondError(c, tt.err)

			assert.Equal(t, tt.status, w.Code)
			var body Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.Equal(t, tt.message, body.Message)
		})
	}
}

func TestBindError(t *testing.T) {
	type query struct {
		EmployeeID string `form:"employee_id" validate:"required"`
		Count      int    `form:"count" validate:"gte=0"`
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string { return f.Tag.Get("form") })

	err := v.Struct(query{Count: -1})
	appErr := BindError(err)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
	assert.Equal(t, "employee_id is required; count is too small", appErr.Message)

	appErr = BindError(errors.New("EOF"))
	assert.Equal(t, "malformed request", appErr.Message)
}
