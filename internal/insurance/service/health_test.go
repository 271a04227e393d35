package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapHealthDocument(t *testing.T) {
	t.Run("copies allow-listed keys and ignores the rest", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`{
			"policyNumber": "HP-1",
			"planType": "PPO",
			"providerName": "Nordic Health",
			"networkType": "NATIONAL",
			"annualDeductible": 500,
			"includesDental": true,
			"secret": "x"
		}`))
		require.NoError(t, err)
		require.NotNil(t, h.PolicyNumber)
		assert.Equal(t, "HP-1", *h.PolicyNumber)
		assert.Equal(t, "PPO", *h.PlanType)
		assert.Equal(t, "Nordic Health", *h.ProviderName)
		assert.Equal(t, "NATIONAL", *h.NetworkType)
		assert.Nil(t, h.CoverageType)
		assert.Nil(t, h.AnnualDeductible)
		assert.Nil(t, h.IncludesDental)
	})

	t.Run("stringifies non-string scalars", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`{"policyNumber": 1234567890123, "coverageType": true, "planType": 1.50, "primaryHolder": null}`))
		require.NoError(t, err)
		assert.Equal(t, "1234567890123", *h.PolicyNumber)
		assert.Equal(t, "true", *h.CoverageType)
		assert.Equal(t, "1.50", *h.PlanType)
		assert.Nil(t, h.PrimaryHolder)
	})

	t.Run("nested value becomes compact json", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`{"providerName": {"name": "Acme"}}`))
		require.NoError(t, err)
		assert.Equal(t, `{"name":"Acme"}`, *h.ProviderName)
	})

	t.Run("dependents must all be strings", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`{"dependents": ["Jane", 7]}`))
		require.NoError(t, err)
		assert.Nil(t, h.Dependents)

		h, err = mapHealthDocument([]byte(`{"dependents": "Jane"}`))
		require.NoError(t, err)
		assert.Nil(t, h.Dependents)

		h, err = mapHealthDocument([]byte(`{"dependents": ["Jane", "Jimmy"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Jane", "Jimmy"}, h.Dependents)
	})

	t.Run("empty dependents is kept", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`{"policyNumber": "H1", "dependents": []}`))
		require.NoError(t, err)
		require.NotNil(t, h.Dependents)
		assert.Empty(t, h.Dependents)
	})

	t.Run("null document", func(t *testing.T) {
		h, err := mapHealthDocument([]byte(`null`))
		require.NoError(t, err)
		assert.Nil(t, h)
	})

	t.Run("malformed document", func(t *testing.T) {
		_, err := mapHealthDocument([]byte(`{"policyNumber":`))
		assert.Error(t, err)

		_, err = mapHealthDocument([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}
