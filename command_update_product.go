package catalog

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type UpdateProductHandler struct {
	repo RepositoryManager
}

func NewUpdateProductHandler(repo RepositoryManager) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Execute merges a validated patch into the stored product and persists it.
// The merged record gets the same cross-field checks as a create, so a patch
// cannot leave a product in a state a create would have rejected.
func (h *UpdateProductHandler) Execute(ctx context.Context, id uuid.UUID, payload UpdateProductPayload) (*Product, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during product update",
		)
	default:
		return h.execute(ctx, id, payload)
	}
}

func (h *UpdateProductHandler) execute(ctx context.Context, id uuid.UUID, payload UpdateProductPayload) (*Product, error) {
	var product *Product
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var err error
		product, err = h.repo.Products().FindByIDTx(ctx, tx, id)
		if err != nil {
			if repository.IsRecordNotFound(err) {
				return ErrProductNotFound
			}
			return goerrors.Wrap(err, goerrors.CategoryInternal, "product lookup failed")
		}

		if payload.Name != nil && *payload.Name != product.Name {
			if _, err := h.repo.Products().FindByNameTx(ctx, tx, *payload.Name); err == nil {
				return ErrProductConflict
			} else if !repository.IsRecordNotFound(err) {
				return goerrors.Wrap(err, goerrors.CategoryInternal, "product lookup failed")
			}
		}

		product = payload.Apply(product)

		if err := refineMergedProduct(product); err != nil {
			return asValidationError(err)
		}

		if product, err = h.repo.Products().UpdateTx(ctx, tx, product, repository.UpdateByID(id.String())); err != nil {
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not update product").
				WithCode(goerrors.CodeConflict).
				WithTextCode(TextCodeProductConflict)
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "product update transaction failed")
	}

	return product, nil
}

// refineMergedProduct reruns the create-time invariants against the merged
// record. Variants were loaded alongside the product, so the activation
// check sees the real rows.
func refineMergedProduct(product *Product) error {
	if product.Active && len(product.Variants) == 0 {
		return fieldError("variants", "active products must have at least one variant")
	}

	if product.ReorderAtGrams != nil && *product.ReorderAtGrams >= product.BulkGrams {
		return fieldError("reorderAtGrams", "reorderAtGrams should be less than bulkGrams")
	}

	return nil
}
