package catalog

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Products exposes product persistence. Reads that hang variants off the
// product order them inactive last, then cheapest first, which is the order
// the storefront renders pack sizes in. ListActive trims further: the
// storefront listing shows a single price, so each product carries at most
// its cheapest active variant there.
type Products interface {
	repository.Repository[*Product]

	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindByNameTx(ctx context.Context, tx bun.IDB, name string) (*Product, error)
	ListAll(ctx context.Context) ([]*Product, error)
	ListActive(ctx context.Context) ([]*Product, error)
	Create(ctx context.Context, record *Product, criteria ...repository.InsertCriteria) (*Product, error)
	CreateTx(ctx context.Context, tx bun.IDB, record *Product, criteria ...repository.InsertCriteria) (*Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

type products struct {
	repository.Repository[*Product]
	db *bun.DB
}

var (
	_ Products                        = (*products)(nil)
	_ repository.Repository[*Product] = (*products)(nil)
)

func NewProductsRepository(db *bun.DB) Products {
	repo := repository.NewRepository[*Product](db, repository.ModelHandlers[*Product]{
		NewRecord: func() *Product { return &Product{} },
		GetID: func(p *Product) uuid.UUID {
			if p == nil {
				return uuid.Nil
			}
			return p.ID
		},
		SetID: func(p *Product, id uuid.UUID) {
			if p != nil {
				p.ID = id
			}
		},
		GetIdentifier: func() string {
			return "slug"
		},
	})

	return &products{
		Repository: repo,
		db:         db,
	}
}

func (a *products) FindByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	return a.FindByIDTx(ctx, a.db, id)
}

func (a *products) FindByIDTx(ctx context.Context, tx bun.IDB, id uuid.UUID) (*Product, error) {
	record := &Product{}
	err := tx.NewSelect().
		Model(record).
		Relation("Variants", orderedVariants).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"id": id.String(),
				})
		}
		return nil, err
	}

	return record, nil
}

// FindBySlug resolves a storefront detail page. Inactive products stay
// hidden, so a retired slug reads as not found.
func (a *products) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	record := &Product{}
	err := a.db.NewSelect().
		Model(record).
		Relation("Variants", activeOrderedVariants).
		Where("?TableAlias.slug = ?", slug).
		Where("?TableAlias.active = ?", true).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"slug": slug,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *products) FindByName(ctx context.Context, name string) (*Product, error) {
	return a.FindByNameTx(ctx, a.db, name)
}

func (a *products) FindByNameTx(ctx context.Context, tx bun.IDB, name string) (*Product, error) {
	record := &Product{}
	err := tx.NewSelect().
		Model(record).
		Where("?TableAlias.name = ?", name).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, repository.NewRecordNotFound().
				WithMetadata(map[string]any{
					"name": name,
				})
		}
		return nil, err
	}

	return record, nil
}

func (a *products) ListAll(ctx context.Context) ([]*Product, error) {
	var records []*Product
	err := a.db.NewSelect().
		Model(&records).
		Relation("Variants", orderedVariants).
		Order("prd.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (a *products) ListActive(ctx context.Context) ([]*Product, error) {
	var records []*Product
	err := a.db.NewSelect().
		Model(&records).
		Relation("Variants", activeOrderedVariants).
		Where("?TableAlias.active = ?", true).
		Order("prd.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	// The listing shows one price per product. Variants arrive cheapest
	// first, so keeping the head row keeps the cheapest active pack size.
	for _, record := range records {
		if len(record.Variants) > 1 {
			record.Variants = record.Variants[:1]
		}
	}

	return records, nil
}

func (a *products) Create(ctx context.Context, record *Product, criteria ...repository.InsertCriteria) (*Product, error) {
	return a.CreateTx(ctx, a.db, record, criteria...)
}

func (a *products) CreateTx(ctx context.Context, tx bun.IDB, record *Product, criteria ...repository.InsertCriteria) (*Product, error) {
	prepareProductDefaults(record)
	return a.Repository.CreateTx(ctx, tx, record, criteria...)
}

// DeleteByID removes a product and its variant rows. Variants go first so
// the foreign key never dangles on engines without cascading deletes.
func (a *products) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if _, err := a.db.NewDelete().
		Model((*ProductVariant)(nil)).
		Where("?TableAlias.product_id = ?", id).
		Exec(ctx); err != nil {
		return err
	}

	res, err := a.db.NewDelete().
		Model((*Product)(nil)).
		Where("?TableAlias.id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.NewRecordNotFound().
			WithMetadata(map[string]any{
				"id": id.String(),
			})
	}

	return nil
}

func prepareProductDefaults(record *Product) {
	if record == nil {
		return
	}

	if record.Categories == nil {
		record.Categories = []ProductCategory{}
	}

	if record.Images == nil {
		record.Images = []Image{}
	}

	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
}

func orderedVariants(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Order("pvr.active DESC").Order("pvr.price ASC")
}

func activeOrderedVariants(q *bun.SelectQuery) *bun.SelectQuery {
	return q.Where("pvr.active = ?", true).Order("pvr.price ASC")
}
