package catalog

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type CreateVariantHandler struct {
	repo RepositoryManager
}

func NewCreateVariantHandler(repo RepositoryManager) *CreateVariantHandler {
	return &CreateVariantHandler{repo: repo}
}

// Execute persists a validated variant payload under the given product. The
// SKU is derived from the product name and variant name; two variants of one
// product may only share a SKU if they share a name, which the per-product
// name check rejects first.
func (h *CreateVariantHandler) Execute(ctx context.Context, productID uuid.UUID, payload CreateVariantPayload) (*ProductVariant, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during variant creation",
		)
	default:
		return h.execute(ctx, productID, payload)
	}
}

func (h *CreateVariantHandler) execute(ctx context.Context, productID uuid.UUID, payload CreateVariantPayload) (*ProductVariant, error) {
	var variant *ProductVariant
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		product, err := h.repo.Products().FindByIDTx(ctx, tx, productID)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrProductNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "product lookup failed")
		}

		if _, err := h.repo.Variants().FindByProductAndNameTx(ctx, tx, productID, payload.Name); err == nil {
			return ErrVariantConflict
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "variant lookup failed")
		}

		variant = payload.ToModel(product)
		if variant, err = h.repo.Variants().CreateTx(ctx, tx, variant); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create variant").
				WithCode(goerrors.CodeConflict).
				WithTextCode(TextCodeVariantConflict)
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "variant creation transaction failed")
	}

	return variant, nil
}
