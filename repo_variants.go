package catalog

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Variants exposes variant persistence
type Variants interface {
	repository.Repository[*ProductVariant]

	FindByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*ProductVariant, error)
	FindByProductAndNameTx(ctx context.Context, tx bun.IDB, productID uuid.UUID, name string) (*ProductVariant, error)
	Create(ctx context.Context, record *ProductVariant, criteria ...repository.InsertCriteria) (*ProductVariant, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *ProductVariant, criteria ...repository.InsertCriteria) (*ProductVariant, error)
}

type variants struct {
	repository.Repository[*ProductVariant]
	db *bun.DB
}

var (
	_ Variants                               = (*variants)(nil)
	_ repository.Repository[*ProductVariant] = (*variants)(nil)
)

func NewVariantsRepository(db *bun.DB) Variants {
	repo := repository.NewRepository[*ProductVariant](db, repository.ModelHandlers[*ProductVariant]{
		NewRecord: func() *ProductVariant { return &ProductVariant{} },
		GetID: func(v *ProductVariant) uuid.UUID {
			if v == nil {
				return uuid.Nil
			}
			return v.ID
		},
		SetID: func(v *ProductVariant, id uuid.UUID) {
			if v != nil {
				v.ID = id
			}
		},
		GetIdentifier: func() string {
			return "sku"
		},
	})

	return &variants{
		Repository: repo,
		db:         db,
	}
}

func (a *variants) FindByProductAndName(ctx context.Context, productID uuid.UUID, name string) (*ProductVariant, error) {
	return a.FindByProductAndNameTx(ctx, a.db, productID, name)
}

func (a *variants) FindByProductAndNameTx(ctx context.Context, tx bun.IDB, productID uuid.UUID, name string) (*ProductVariant, error) {
	record := &ProductVariant{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.product_id = ?", productID).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"product_id": productID.String(),
					"name":       name,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *variants) Create(ctx context.Context, record *ProductVariant, criteria ...repository.InsertCriteria) (*ProductVariant, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *variants) CreateTx(ctx context.Context, tx bun.IDB, record *ProductVariant, criteria ...repository.InsertCriteria) (*ProductVariant, error) {
	prepareVariantDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

func prepareVariantDefaults(record *ProductVariant) {
	if record == nil {
		return
	}

	if record.Currency == "" {
		record.Currency = CurrencyEUR
	}

	if record.TaxClass == "" {
		record.TaxClass = TaxClassReduced
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}
