package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/clinic-slots/pkg/errors"
)

// Keys the auth middleware stores on the gin context.
const (
	ContextUserID = "user_id"
	ContextRole   = "role"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

var validationMessages = map[string]string{
	"required": "is required",
	"uuid":     "must be a UUID",
	"isodate":  "must be a YYYY-MM-DD date",
	"hhmm":     "must be an HH:MM time",
	"min":      "is too small",
	"max":      "is too large",
	"gte":      "is too small",
	"gt":       "must be positive",
}

// BindError turns a gin binding failure into a 400 naming the offending fields.
func BindError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewBadRequest("malformed request", err)
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg, ok := validationMessages[fe.Tag()]
		if !ok {
			msg = fmt.Sprintf("failed %s", fe.Tag())
		}
		parts = append(parts, fe.Field()+" "+msg)
	}
	return apperrors.NewBadRequest(strings.Join(parts, "; "), err)
}

// RespondError writes err in the error envelope with the status its AppError
// code maps to. Internal details never reach the client.
func RespondError(c *gin.Context, err error) {
	appErr := apperrors.As(err)
	c.AbortWithStatusJSON(appErr.Code.HTTPStatus(), NewErrorResponse(appErr.Message))
}
