package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createReq struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required,min=3,max=50"`
	Seats int    `json:"seats" validate:"min=1,max=20"`
	Role  string `json:"role" validate:"omitempty,oneof=admin manager staff"`
}

func TestValidateRequired(t *testing.T) {
	v := NewValidator()

	err := v.Validate(createReq{Name: "Bar A", Seats: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email")

	err = v.Validate(createReq{Email: "ops@example.com", Name: "Bar A", Seats: 4})
	assert.NoError(t, err)
}

func TestValidateEmail(t *testing.T) {
	v := NewValidator()

	err := v.Validate(createReq{Email: "not-an-email", Name: "Bar A", Seats: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid email")
}

func TestValidateMinMax(t *testing.T) {
	v := NewValidator()

	err := v.Validate(createReq{Email: "a@b.co", Name: "ab", Seats: 4})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 3")

	err = v.Validate(createReq{Email: "a@b.co", Name: "Bar A", Seats: 21})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 20")
}

func TestValidateOneof(t *testing.T) {
	v := NewValidator()

	err := v.Validate(createReq{Email: "a@b.co", Name: "Bar A", Seats: 4, Role: "owner"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one of")

	assert.NoError(t, v.Validate(createReq{Email: "a@b.co", Name: "Bar A", Seats: 4, Role: "manager"}))

	// omitempty lets the zero value through.
	assert.NoError(t, v.Validate(createReq{Email: "a@b.co", Name: "Bar A", Seats: 4}))
}

func TestValidatePointerAndNonStruct(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&createReq{Email: "a@b.co", Name: "Bar A", Seats: 4}))
	assert.Error(t, v.Validate("not a struct"))
}
