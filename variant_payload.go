package catalog

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/shopspring/decimal"
)

// CreateVariantPayload is the admin variant create request body. The owning
// product comes from the route, and the SKU is derived server side, so
// neither appears here.
type CreateVariantPayload struct {
	Name          string      `json:"name"`
	PackSizeGrams *int        `json:"packSizeGrams"`
	Price         PriceAmount `json:"price"`
	Currency      Currency    `json:"currency"`
	TaxClass      TaxClass    `json:"taxClass"`
	Active        *bool       `json:"active"`

	// price holds the exact decimal produced by Normalize.
	price decimal.Decimal
}

// Validate runs the structural rules
func (r CreateVariantPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 80)),
		validation.Field(&r.PackSizeGrams, validation.NotNil, validation.Min(1)),
		validation.Field(&r.Currency, validation.In(CurrencyEUR)),
		validation.Field(&r.TaxClass, validation.In(TaxClassStandard, TaxClassReduced, TaxClassExempt)),
	)
}

// Normalize trims the name, canonicalizes the price into an exact decimal,
// and fills in the EUR, reduced VAT, and active defaults.
func (r *CreateVariantPayload) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return fieldError("name", "cannot be blank")
	}

	price, err := r.Price.Canonicalize()
	if err != nil {
		return fieldError("price", err.Error())
	}
	r.price = price

	if r.Currency == "" {
		r.Currency = CurrencyEUR
	}
	if r.TaxClass == "" {
		r.TaxClass = TaxClassReduced
	}
	if r.Active == nil {
		active := true
		r.Active = &active
	}

	return nil
}

// Refine has no cross-field invariants for variants yet.
func (r CreateVariantPayload) Refine() error {
	return nil
}

// PriceDecimal returns the canonical price. Only meaningful after Normalize.
func (r CreateVariantPayload) PriceDecimal() decimal.Decimal {
	return r.price
}

// ToModel builds the persistence record for the given product, deriving the
// SKU from the product and variant names.
func (r CreateVariantPayload) ToModel(product *Product) *ProductVariant {
	return &ProductVariant{
		ProductID:     product.ID,
		SKU:           GenerateSKU(product.Name, r.Name),
		Name:          r.Name,
		PackSizeGrams: *r.PackSizeGrams,
		Price:         r.price,
		Currency:      r.Currency,
		TaxClass:      r.TaxClass,
		Active:        *r.Active,
	}
}
