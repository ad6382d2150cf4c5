package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type request struct {
	Date  string  `form:"date" validate:"required,isodate"`
	Start string  `json:"start" validate:"omitempty,hhmm"`
	Paid  *string `json:"paid,omitempty" validate:"omitempty,hhmm"`
}

func fields(t *testing.T, err error) []string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fe.Field() + ":" + fe.Tag()
	}
	return out
}

func TestValidator(t *testing.T) {
	v := New()
	paid := "14:00:00"

	assert.NoError(t, v.Validate(request{Date: "2026-10-19", Start: "08:30", Paid: &paid}))
	assert.NoError(t, v.Validate(request{Date: "2026-10-19"}))

	assert.Equal(t, []string{"date:required"}, fields(t, v.Validate(request{})))
	assert.Equal(t, []string{"date:isodate"}, fields(t, v.Validate(request{Date: "2026-02-30"})))

	bad := "24:00"
	assert.Equal(t, []string{"start:hhmm", "paid:hhmm"}, fields(t, v.Validate(request{Date: "2026-10-19", Start: "8:30", Paid: &bad})))
}
