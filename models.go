package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// ProductCategory classifies a product in the shop taxonomy
type ProductCategory = string

const (
	CategoryHerbs  ProductCategory = "HERBS"
	CategorySpices ProductCategory = "SPICES"
)

// Currency is the ISO currency code a variant is priced in
type Currency = string

const (
	// CurrencyEUR is the only currency the shop sells in
	CurrencyEUR Currency = "EUR"
)

// TaxClass selects the VAT treatment of a variant
type TaxClass = string

const (
	TaxClassStandard TaxClass = "STANDARD"
	TaxClassReduced  TaxClass = "REDUCED"
	TaxClassExempt   TaxClass = "EXEMPT"
)

// Image is a catalog image reference stored alongside the product record
type Image struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Product is the product model
type Product struct {
	bun.BaseModel  `bun:"table:products,alias:prd"`
	ID             uuid.UUID         `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name           string            `bun:"name,notnull,unique" json:"name"`
	Slug           string            `bun:"slug,notnull,unique" json:"slug"`
	LatinName      *string           `bun:"latin_name" json:"latin_name,omitempty"`
	BulkGrams      int               `bun:"bulk_grams,notnull" json:"bulk_grams"`
	ReorderAtGrams *int              `bun:"reorder_at_grams" json:"reorder_at_grams,omitempty"`
	DescriptionMd  *string           `bun:"description_md" json:"description_md,omitempty"`
	OriginCountry  *string           `bun:"origin_country" json:"origin_country,omitempty"`
	OrganicCert    *string           `bun:"organic_cert" json:"organic_cert,omitempty"`
	Active         bool              `bun:"active,notnull" json:"active"`
	Categories     []ProductCategory `bun:"categories,type:jsonb" json:"categories"`
	Images         []Image           `bun:"images,type:jsonb" json:"images"`
	Variants       []*ProductVariant `bun:"rel:has-many,join:id=product_id" json:"variants,omitempty"`
	CreatedAt      *time.Time        `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt      *time.Time        `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// ProductVariant is a sellable pack size of a product. The SKU is derived
// from the owning product's name and the variant name at creation time.
type ProductVariant struct {
	bun.BaseModel `bun:"table:product_variants,alias:pvr"`
	ID            uuid.UUID       `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	ProductID     uuid.UUID       `bun:"product_id,notnull,type:uuid" json:"product_id"`
	Product       *Product        `bun:"rel:belongs-to,join:product_id=id" json:"-"`
	SKU           string          `bun:"sku,notnull" json:"sku"`
	Name          string          `bun:"name,notnull" json:"name"`
	PackSizeGrams int             `bun:"pack_size_grams,notnull" json:"pack_size_grams"`
	Price         decimal.Decimal `bun:"price,notnull" json:"price"`
	Currency      Currency        `bun:"currency,notnull" json:"currency"`
	TaxClass      TaxClass        `bun:"tax_class,notnull" json:"tax_class"`
	Active        bool            `bun:"active,notnull" json:"active"`
	CreatedAt     *time.Time      `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time      `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// User is the user model
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"first_name,omitempty"`
	LastName      string     `bun:"last_name,notnull" json:"last_name,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}
