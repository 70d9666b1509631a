package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/goliatone/go-catalog"
)

func decodeVariantPayload(t *testing.T, body string) *catalog.CreateVariantPayload {
	t.Helper()

	payload := new(catalog.CreateVariantPayload)
	require.NoError(t, json.Unmarshal([]byte(body), payload))
	return payload
}

func TestCreateVariantPayloadDefaults(t *testing.T) {
	payload := decodeVariantPayload(t, `{
		"name": " 50g Jar ",
		"packSizeGrams": 50,
		"price": "3.99"
	}`)

	require.NoError(t, catalog.RunSchema(payload))

	assert.Equal(t, "50g Jar", payload.Name)
	assert.Equal(t, catalog.CurrencyEUR, payload.Currency)
	assert.Equal(t, catalog.TaxClassReduced, payload.TaxClass)
	require.NotNil(t, payload.Active)
	assert.True(t, *payload.Active)
	assert.True(t, payload.PriceDecimal().Equal(decimal.RequireFromString("3.99")))
}

func TestCreateVariantPayloadPrice(t *testing.T) {
	t.Run("numeric price canonicalized", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100,
			"price": 7.555
		}`)

		require.NoError(t, catalog.RunSchema(payload))
		assert.True(t, payload.PriceDecimal().Equal(decimal.RequireFromString("7.55")))
	})

	t.Run("missing price rejected", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "price")
	})

	t.Run("boolean price fails under the price field", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100,
			"price": true
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "price")
	})

	t.Run("negative price rejected", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100,
			"price": "-4.00"
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "price")
	})
}

func TestCreateVariantPayloadStructure(t *testing.T) {
	t.Run("pack size must be positive", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 0,
			"price": "4.00"
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "packSizeGrams")
	})

	t.Run("only EUR accepted", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100,
			"price": "4.00",
			"currency": "USD"
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "currency")
	})

	t.Run("unknown tax class rejected", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "100g",
			"packSizeGrams": 100,
			"price": "4.00",
			"taxClass": "LUXURY"
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "taxClass")
	})

	t.Run("whitespace only name rejected", func(t *testing.T) {
		payload := decodeVariantPayload(t, `{
			"name": "   ",
			"packSizeGrams": 100,
			"price": "4.00"
		}`)

		err := catalog.RunSchema(payload)
		require.Error(t, err)
		fields := validationFields(t, err)
		assert.Contains(t, fields, "name")
	})
}

func TestCreateVariantPayloadToModel(t *testing.T) {
	payload := decodeVariantPayload(t, `{
		"name": "50g Jar",
		"packSizeGrams": 50,
		"price": "3.99",
		"taxClass": "STANDARD"
	}`)
	require.NoError(t, catalog.RunSchema(payload))

	product := &catalog.Product{Name: "Wild Thyme"}
	variant := payload.ToModel(product)

	assert.Equal(t, "Wild-50g Jar", variant.SKU)
	assert.Equal(t, "50g Jar", variant.Name)
	assert.Equal(t, 50, variant.PackSizeGrams)
	assert.Equal(t, catalog.TaxClassStandard, variant.TaxClass)
	assert.Equal(t, catalog.CurrencyEUR, variant.Currency)
	assert.True(t, variant.Active)
	assert.True(t, variant.Price.Equal(decimal.RequireFromString("3.99")))
}
