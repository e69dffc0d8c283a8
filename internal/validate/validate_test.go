package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/assetsentry/assetsentry/internal/models"
)

func TestStruct_ValidPayload(t *testing.T) {
	err := Struct(models.AssetInsert{
		AssetID:  "AS001",
		Name:     "Centrifugal Pump",
		Type:     "Pump System",
		Location: "Building A - Floor 1",
	})
	assert.NoError(t, err)
}

func TestStruct_MissingRequiredFields(t *testing.T) {
	err := Struct(models.AssetInsert{Name: "Pump"})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)

	fields := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "is required", fields["asset_id"])
	assert.Equal(t, "is required", fields["type"])
	assert.Equal(t, "is required", fields["location"])
	assert.NotContains(t, fields, "name")
}

func TestStruct_InvalidEnumValue(t *testing.T) {
	err := Struct(models.AssetInsert{
		AssetID:  "AS001",
		Name:     "Pump",
		Type:     "Pump System",
		Status:   models.AssetStatus("broken"),
		Location: "Building A",
	})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "status", ve.Errors[0].Field)
	assert.Equal(t, "must be one of: operational maintenance offline decommissioned", ve.Errors[0].Message)
}

func TestStruct_UpdatePayloadSkipsNilFields(t *testing.T) {
	// Partial updates validate only what they carry.
	assert.NoError(t, Struct(models.AssetUpdate{}))

	bad := models.AssetStatus("broken")
	err := Struct(models.AssetUpdate{Status: &bad})
	require.Error(t, err)
	ve, ok := AsValidationError(err)
	require.True(t, ok)
	require.Len(t, ve.Errors, 1)
	assert.Equal(t, "status", ve.Errors[0].Field)
}

func TestStruct_UsernameLengthAndEmail(t *testing.T) {
	err := Struct(models.UserInsert{
		Username:     "ab",
		PasswordHash: "hash",
		Name:         "Short Name",
		Email:        "not-an-email",
	})
	require.Error(t, err)

	ve, ok := AsValidationError(err)
	require.True(t, ok)

	fields := make(map[string]string, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields[fe.Field] = fe.Message
	}
	assert.Equal(t, "must be at least 3 characters", fields["username"])
	assert.Equal(t, "must be a valid email address", fields["email"])
}

func TestValidationError_Error(t *testing.T) {
	ve := &ValidationError{Errors: []FieldError{
		{Field: "asset_id", Message: "is required"},
		{Field: "status", Message: "must be one of: operational maintenance offline decommissioned"},
	}}
	assert.Equal(t,
		"validation failed: asset_id: is required; status: must be one of: operational maintenance offline decommissioned",
		ve.Error())
}
