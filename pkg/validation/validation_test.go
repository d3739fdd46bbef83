package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FirstName      string `validate:"omitempty,valid_name,no_emoji"`
	CredentialType string `validate:"required,credential_type"`
	CompletionDate string `validate:"omitempty,iso_date,not_future"`
}

func TestCustomValidators(t *testing.T) {
	v := New()

	t.Run("Should accept accented French names", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "Marie-Hélène d'Arc", CredentialType: "degree"})
		assert.NoError(t, err)
	})

	t.Run("Should reject digits in names", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "Jean2", CredentialType: "degree"})
		require.Error(t, err)
		assert.Contains(t, FormatValidationErrors(err)[0], "Prénom")
	})

	t.Run("Should reject emoji", func(t *testing.T) {
		err := v.Struct(sample{FirstName: "Léa 🙂", CredentialType: "training"})
		assert.Error(t, err)
	})

	t.Run("Should reject unknown credential types", func(t *testing.T) {
		err := v.Struct(sample{CredentialType: "diploma"})
		require.Error(t, err)
		assert.Contains(t, FormatValidationErrors(err)[0], "Type de diplôme")
	})

	t.Run("Should validate completion dates", func(t *testing.T) {
		assert.NoError(t, v.Struct(sample{CredentialType: "certification", CompletionDate: "2019-06-30"}))
		assert.Error(t, v.Struct(sample{CredentialType: "certification", CompletionDate: "30/06/2019"}))
		assert.Error(t, v.Struct(sample{CredentialType: "certification", CompletionDate: "2999-01-01"}))
	})
}

func TestIsSlug(t *testing.T) {
	assert.True(t, IsSlug("marie-dupont-1a2b3c4d"))
	assert.True(t, IsSlug("Marie-Dupont"))
	assert.True(t, IsSlug("marie_dupont"))
	assert.True(t, IsSlug(strings.Repeat("a", MaxSlugLength)))
	assert.False(t, IsSlug(strings.Repeat("a", MaxSlugLength+1)))
	assert.False(t, IsSlug(""))
}

func TestFormatValidationErrorsFallback(t *testing.T) {
	msgs := FormatValidationErrors(assert.AnError)
	assert.Equal(t, []string{assert.AnError.Error()}, msgs)
}
