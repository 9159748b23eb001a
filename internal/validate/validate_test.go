package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventhub/eventhub-go/internal/model"
)

func fieldsOf(errs []FieldError) []string {
	out := make([]string, len(errs))
	for i, fe := range errs {
		out[i] = fe.Field
	}
	return out
}

func TestRegisterRequestValid(t *testing.T) {
	errs := Struct(model.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "secret1",
	})
	assert.Nil(t, errs)
}

func TestRegisterRequestCollectsAllErrors(t *testing.T) {
	errs := Struct(model.RegisterRequest{})
	require.Len(t, errs, 3, "every failing field is reported")
	assert.ElementsMatch(t, []string{"name", "email", "password"}, fieldsOf(errs))
}

func TestRegisterRequestEmailSyntax(t *testing.T) {
	errs := Struct(model.RegisterRequest{
		Name:     "A",
		Email:    "not-an-email",
		Password: "secret1",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)
	assert.Equal(t, "valid email is required", errs[0].Message)
}

func TestRegisterRequestShortPassword(t *testing.T) {
	errs := Struct(model.RegisterRequest{
		Name:     "A",
		Email:    "a@x.com",
		Password: "12345",
	})
	require.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
	assert.Equal(t, "password must be at least 6 characters", errs[0].Message)
}

func TestLoginRequest(t *testing.T) {
	assert.Nil(t, Struct(model.LoginRequest{Email: "a@x.com", Password: "secret1"}))

	errs := Struct(model.LoginRequest{Email: "nope", Password: "123"})
	assert.Len(t, errs, 2)
}

func TestCreateEventRequest(t *testing.T) {
	assert.Nil(t, Struct(model.CreateEventRequest{Title: "Meeting", Date: "2024-01-01"}))
	assert.Nil(t, Struct(model.CreateEventRequest{Title: "Meeting", Date: "2024-01-01T10:00:00Z"}))

	errs := Struct(model.CreateEventRequest{Title: "Meeting", Date: "01/02/2024"})
	require.Len(t, errs, 1)
	assert.Equal(t, "date", errs[0].Field)
	assert.Equal(t, "date must be a valid ISO8601 string", errs[0].Message)

	errs = Struct(model.CreateEventRequest{})
	assert.ElementsMatch(t, []string{"title", "date"}, fieldsOf(errs))
}

func TestUpdateEventRequest(t *testing.T) {
	assert.Nil(t, Struct(model.UpdateEventRequest{}), "all fields optional")

	date := "2024-06-15"
	assert.Nil(t, Struct(model.UpdateEventRequest{Date: &date}))

	bad := "yesterday"
	errs := Struct(model.UpdateEventRequest{Date: &bad})
	require.Len(t, errs, 1)
	assert.Equal(t, "date", errs[0].Field)
}
