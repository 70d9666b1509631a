package catalog

import (
	"context"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

type CreateProductHandler struct {
	repo RepositoryManager
}

func NewCreateProductHandler(repo RepositoryManager) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Execute persists a validated product payload along with its inline
// variant rows. The payload must have been run through RunSchema first;
// Execute assumes defaults and the derived slug are in place.
func (h *CreateProductHandler) Execute(ctx context.Context, payload CreateProductPayload) (*Product, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during product creation",
		)
	default:
		return h.execute(ctx, payload)
	}
}

func (h *CreateProductHandler) execute(ctx context.Context, payload CreateProductPayload) (*Product, error) {
	product := payload.ToModel()
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err := h.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := h.repo.Products().FindByNameTx(ctx, tx, product.Name); err == nil {
			return ErrProductConflict
		} else if !repository.IsRecordNotFound(err) {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "product lookup failed")
		}

		var err error
		if product, err = h.repo.Products().CreateTx(ctx, tx, product); err != nil {
			// Unique indexes on name and slug backstop concurrent creates.
			return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create product").
				WithCode(goerrors.CodeConflict).
				WithTextCode(TextCodeProductConflict)
		}

		for _, row := range payload.Variants {
			variant := &ProductVariant{
				ProductID:     product.ID,
				SKU:           row.SKU,
				Name:          row.Label,
				PackSizeGrams: row.Grams,
				Price:         decimal.New(int64(*row.PriceCents), -2),
				Active:        *row.Active,
			}
			if _, err := h.repo.Variants().CreateTx(ctx, tx, variant); err != nil {
				return goerrors.Wrap(err, goerrors.CategoryConflict, "could not create variant").
					WithCode(goerrors.CodeConflict).
					WithTextCode(TextCodeVariantConflict)
			}
			product.Variants = append(product.Variants, variant)
		}

		return nil
	})

	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}

		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "product creation transaction failed")
	}

	return product, nil
}
