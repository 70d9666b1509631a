package catalog_test

import (
	"context"
	"encoding/json"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalog "github.com/goliatone/go-catalog"
)

func TestRegisterUserHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	handler := catalog.NewRegisterUserHandler(repo)
	ctx := context.Background()

	msg := catalog.RegisterUserMessage{
		FirstName: "Greta",
		LastName:  "Keller",
		Email:     "greta@example.com",
		Role:      string(catalog.RoleUser),
		Password:  "Sup3r-Secret",
	}

	t.Run("creates the account", func(t *testing.T) {
		user, err := handler.Execute(ctx, msg)
		require.NoError(t, err)

		assert.Equal(t, "greta@example.com", user.Email)
		assert.Equal(t, catalog.RoleUser, user.Role)
		assert.NotEmpty(t, user.PasswordHash)
		assert.NoError(t, catalog.ComparePasswordAndHash("Sup3r-Secret", user.PasswordHash))
	})

	t.Run("password hash never serializes", func(t *testing.T) {
		user, err := repo.Users().FindByEmail(ctx, msg.Email)
		require.NoError(t, err)

		raw, err := json.Marshal(user)
		require.NoError(t, err)
		assert.NotContains(t, string(raw), "password")
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := handler.Execute(ctx, msg)
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})

	t.Run("cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := handler.Execute(cancelled, catalog.RegisterUserMessage{
			Email:    "other@example.com",
			Password: "Sup3r-Secret",
		})
		require.Error(t, err)
	})
}

func runProductPipeline(t *testing.T, body string) catalog.CreateProductPayload {
	t.Helper()

	payload := decodeProductPayload(t, body)
	require.NoError(t, catalog.RunSchema(payload))
	return *payload
}

func TestCreateProductHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	handler := catalog.NewCreateProductHandler(repo)
	ctx := context.Background()

	t.Run("persists product and inline variants", func(t *testing.T) {
		product, err := handler.Execute(ctx, runProductPipeline(t, validProductBody))
		require.NoError(t, err)

		assert.Equal(t, "wild-thyme", product.Slug)
		require.Len(t, product.Variants, 1)
		assert.Equal(t, "Wild-50g", product.Variants[0].SKU)
		// 399 cents arrive as an exact 3.99.
		assert.True(t, product.Variants[0].Price.Equal(decimal.RequireFromString("3.99")))

		stored, err := repo.Products().FindBySlug(ctx, "wild-thyme")
		require.NoError(t, err)
		require.Len(t, stored.Variants, 1)
	})

	t.Run("same name conflicts", func(t *testing.T) {
		_, err := handler.Execute(ctx, runProductPipeline(t, validProductBody))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})
}

func TestCreateVariantHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	handler := catalog.NewCreateVariantHandler(repo)
	ctx := context.Background()
	product := seedProduct(t, repo, "Gewürznelken", true)

	newPayload := func(name string) catalog.CreateVariantPayload {
		payload := decodeVariantPayload(t, `{
			"name": "`+name+`",
			"packSizeGrams": 50,
			"price": "4.20"
		}`)
		require.NoError(t, catalog.RunSchema(payload))
		return *payload
	}

	t.Run("derives the SKU from both names", func(t *testing.T) {
		variant, err := handler.Execute(ctx, product.ID, newPayload("50g Jar"))
		require.NoError(t, err)

		assert.Equal(t, "Gewü-50g Jar", variant.SKU)
		assert.Equal(t, product.ID, variant.ProductID)
		assert.Equal(t, catalog.CurrencyEUR, variant.Currency)
		assert.Equal(t, catalog.TaxClassReduced, variant.TaxClass)
	})

	t.Run("duplicate name for the product conflicts", func(t *testing.T) {
		_, err := handler.Execute(ctx, product.ID, newPayload("50g Jar"))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := handler.Execute(ctx, uuid.New(), newPayload("100g"))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryNotFound, richErr.Category)
	})
}

func TestUpdateProductHandler(t *testing.T) {
	repo, cleanup := setupRepoManager(t)
	defer cleanup()

	handler := catalog.NewUpdateProductHandler(repo)
	ctx := context.Background()

	product := seedProduct(t, repo, "Wild Thyme", true)
	seedVariant(t, repo, product, "50g", "3.99", true)
	seedProduct(t, repo, "Basil", true)

	decodePatch := func(body string) catalog.UpdateProductPayload {
		payload := new(catalog.UpdateProductPayload)
		require.NoError(t, json.Unmarshal([]byte(body), payload))
		require.NoError(t, catalog.RunSchema(payload))
		return *payload
	}

	t.Run("merges present fields only", func(t *testing.T) {
		updated, err := handler.Execute(ctx, product.ID, decodePatch(`{
			"latinName": "Thymus serpyllum",
			"originCountry": "ES"
		}`))
		require.NoError(t, err)

		assert.Equal(t, "Wild Thyme", updated.Name, "name untouched")
		require.NotNil(t, updated.LatinName)
		assert.Equal(t, "Thymus serpyllum", *updated.LatinName)
	})

	t.Run("slug patch is canonicalized", func(t *testing.T) {
		updated, err := handler.Execute(ctx, product.ID, decodePatch(`{
			"slug": "Thymian Wild"
		}`))
		require.NoError(t, err)
		assert.Equal(t, "thymian-wild", updated.Slug)
	})

	t.Run("merged record honors the reorder invariant", func(t *testing.T) {
		_, err := handler.Execute(ctx, product.ID, decodePatch(`{
			"reorderAtGrams": 9000
		}`))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryValidation, richErr.Category)
	})

	t.Run("renaming onto another product conflicts", func(t *testing.T) {
		_, err := handler.Execute(ctx, product.ID, decodePatch(`{
			"name": "Basil"
		}`))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryConflict, richErr.Category)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		_, err := handler.Execute(ctx, uuid.New(), decodePatch(`{"originCountry": "ES"}`))
		require.Error(t, err)

		var richErr *goerrors.Error
		require.True(t, goerrors.As(err, &richErr))
		assert.Equal(t, goerrors.CategoryNotFound, richErr.Category)
	})
}
