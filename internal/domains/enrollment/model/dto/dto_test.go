package dto_test

import (
	"strings"
	"testing"

	"manta/internal/domains/enrollment/model"
	"manta/internal/domains/enrollment/model/dto"
	"manta/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateEnrollmentRequest_BodyShape(t *testing.T) {
	// The enrolling user comes from the access token, not the body.
	body := `{"course_id":"33333333-3333-4333-8333-333333333333","payment_method":"card","payment_ref":"ch_123","amount":350,"currency":"usd"}`

	var req dto.CreateEnrollmentRequest
	err := validator.Validate(strings.NewReader(body), &req)

	require.NoError(t, err)
	assert.Equal(t, "33333333-3333-4333-8333-333333333333", req.CourseID)
	assert.Equal(t, "card", req.PaymentMethod)
}

func TestCreateEnrollmentRequest_ToModel(t *testing.T) {
	req := dto.CreateEnrollmentRequest{
		CourseID:      "33333333-3333-4333-8333-333333333333",
		PaymentMethod: "card",
		PaymentRef:    "ch_123",
		Amount:        350,
		Currency:      "usd",
	}

	enrollment := req.ToModel("55555555-5555-4555-8555-555555555555")

	assert.NotEmpty(t, enrollment.ID, "expected ID to be generated")
	assert.Equal(t, "55555555-5555-4555-8555-555555555555", enrollment.UserID)
	assert.Equal(t, req.CourseID, enrollment.CourseID)
	assert.Equal(t, model.StatusPaid, enrollment.Status)
	assert.Equal(t, "55555555-5555-4555-8555-555555555555", enrollment.CreatedBy)
}
