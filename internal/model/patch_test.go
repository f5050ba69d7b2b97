package model

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPatchDistinguishesOmittedFromNull(t *testing.T) {
	var patch UserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"first_name":"Jo","phone_number":null}`), &patch))

	assert.True(t, patch.FirstName.Set)
	assert.Equal(t, "Jo", patch.FirstName.Value)
	assert.False(t, patch.LastName.Set)
	assert.False(t, patch.Email.Set)
	assert.True(t, patch.PhoneNumber.Set)
	assert.Nil(t, patch.PhoneNumber.Value)
}

func TestUserPatchApply(t *testing.T) {
	phone := "+15550100"
	fields := UserFields{FirstName: "Joanna", LastName: "Doe", Email: "jo@example.com", PhoneNumber: &phone}

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, got UserFields)
	}{
		{
			name: "only first name",
			body: `{"first_name":"Jo"}`,
			check: func(t *testing.T, got UserFields) {
				assert.Equal(t, "Jo", got.FirstName)
				assert.Equal(t, "Doe", got.LastName)
				assert.Equal(t, "jo@example.com", got.Email)
				require.NotNil(t, got.PhoneNumber)
				assert.Equal(t, phone, *got.PhoneNumber)
			},
		},
		{
			name: "clear phone",
			body: `{"phone_number":null}`,
			check: func(t *testing.T, got UserFields) {
				assert.Nil(t, got.PhoneNumber)
				assert.Equal(t, "Joanna", got.FirstName)
			},
		},
		{
			name: "empty body",
			body: `{}`,
			check: func(t *testing.T, got UserFields) {
				assert.Equal(t, fields, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var patch UserPatch
			require.NoError(t, json.Unmarshal([]byte(tt.body), &patch))
			tt.check(t, patch.Apply(fields))
		})
	}
}

func TestUserPatchRejectsWrongType(t *testing.T) {
	var patch UserPatch
	assert.Error(t, json.Unmarshal([]byte(`{"first_name":42}`), &patch))
}

func TestUserPasswordIsNotSerialized(t *testing.T) {
	data, err := json.Marshal(User{Email: "jo@example.com", Password: "$2a$10$hash"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "password")
	assert.NotContains(t, string(data), "$2a$10$hash")
}

func TestCredentialErrorsAreUnauthorized(t *testing.T) {
	assert.True(t, errors.Is(ErrInvalidEmail, ErrUnauthorized))
	assert.True(t, errors.Is(ErrInvalidPassword, ErrUnauthorized))
	assert.False(t, errors.Is(ErrForbidden, ErrUnauthorized))
}

func TestCloneDoesNotSharePhone(t *testing.T) {
	phone := "+15550100"
	user := User{PhoneNumber: &phone}
	clone := user.Clone()
	*clone.PhoneNumber = "+15550199"
	assert.Equal(t, "+15550100", *user.PhoneNumber)
}
