package catalog

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// organicCertPattern matches EU organic inspection codes like "DE-ÖKO-001".
// Both the umlaut and the transliterated "OEKO" spelling are accepted.
var organicCertPattern = regexp.MustCompile(`^([A-Z]{2})-(ÖKO|OEKO)-\d{3}$`)

// ImagePayload is one catalog image reference in a product create request.
type ImagePayload struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// Validate will validate the payload
func (i ImagePayload) Validate() error {
	return validation.ValidateStruct(&i,
		validation.Field(&i.URL, validation.Required, is.URL),
		validation.Field(&i.Alt, validation.Required, validation.Length(1, 160)),
	)
}

// InlineVariantPayload is a variant row embedded in a product create
// request. Unlike the standalone variant endpoint these rows carry their SKU
// and an integer cent price, mirroring bulk imports from the old stock
// sheet.
type InlineVariantPayload struct {
	SKU        string `json:"sku"`
	Label      string `json:"label"`
	Grams      int    `json:"grams"`
	PriceCents *int   `json:"priceCents"`
	Active     *bool  `json:"active"`
}

// Validate will validate the payload
func (v InlineVariantPayload) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.SKU, validation.Required, validation.Length(1, 0)),
		validation.Field(&v.Label, validation.Required, validation.Length(1, 0)),
		validation.Field(&v.Grams, validation.Required, validation.Min(1)),
		validation.Field(&v.PriceCents, validation.NotNil, validation.Min(0)),
	)
}

// CreateProductPayload is the admin product create request body.
type CreateProductPayload struct {
	Name           string                 `json:"name"`
	Slug           string                 `json:"slug"`
	LatinName      string                 `json:"latinName"`
	BulkGrams      *int                   `json:"bulkGrams"`
	ReorderAtGrams *int                   `json:"reorderAtGrams"`
	DescriptionMd  string                 `json:"descriptionMd"`
	OriginCountry  string                 `json:"originCountry"`
	OrganicCert    *string                `json:"organicCert"`
	Active         *bool                  `json:"active"`
	Variants       []InlineVariantPayload `json:"variants"`
	Categories     []ProductCategory      `json:"categories"`
	Images         []ImagePayload         `json:"images"`
}

// Validate runs the structural rules. Bounds follow the storefront contract:
// name 2-120, slug candidate up to 140, latin name up to 140, markdown
// description up to 20000, origin country up to 80, certification code up to
// 50, at least one known category.
func (r CreateProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(2, 120)),
		validation.Field(&r.Slug, validation.Length(0, 140)),
		validation.Field(&r.LatinName, validation.Length(0, 140)),
		validation.Field(&r.BulkGrams, validation.NotNil, validation.Min(0)),
		validation.Field(&r.ReorderAtGrams, validation.Min(0)),
		validation.Field(&r.DescriptionMd, validation.Length(0, 20000)),
		validation.Field(&r.OriginCountry, validation.Length(0, 80)),
		validation.Field(&r.OrganicCert, validation.Length(0, 50)),
		validation.Field(&r.Variants),
		validation.Field(&r.Categories, validation.Required, validation.By(knownCategories)),
		validation.Field(&r.Images),
	)
}

// Normalize applies the transform stage: trim the name, derive the canonical
// slug from the slug candidate or the name, normalize the certification code
// (blank collapses to null), and default active, variants, and images.
func (r *CreateProductPayload) Normalize() error {
	r.Name = strings.TrimSpace(r.Name)

	source := strings.TrimSpace(r.Slug)
	if source == "" {
		source = r.Name
	}
	slug := Slugify(source)
	if !ValidSlug(slug) {
		return fieldError("slug", "use lowercase letters, numbers, and dashes (2-140 characters)")
	}
	r.Slug = slug

	if r.OrganicCert != nil {
		cert := strings.TrimSpace(*r.OrganicCert)
		if cert == "" {
			r.OrganicCert = nil
		} else if !organicCertPattern.MatchString(cert) {
			return fieldError("organicCert", "expected like DE-ÖKO-001")
		} else {
			r.OrganicCert = &cert
		}
	}

	if r.Active == nil {
		active := true
		r.Active = &active
	}

	if r.Variants == nil {
		r.Variants = []InlineVariantPayload{}
	}
	for i := range r.Variants {
		if r.Variants[i].Active == nil {
			active := true
			r.Variants[i].Active = &active
		}
	}

	if r.Images == nil {
		r.Images = []ImagePayload{}
	}

	return nil
}

// Refine enforces the cross-field invariants on normalized data.
func (r CreateProductPayload) Refine() error {
	errs := validation.Errors{}

	if *r.Active && len(r.Variants) == 0 {
		errs["variants"] = fmt.Errorf("active products must have at least one variant")
	}

	if r.ReorderAtGrams != nil && *r.ReorderAtGrams >= *r.BulkGrams {
		errs["reorderAtGrams"] = fmt.Errorf("reorderAtGrams should be less than bulkGrams")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToModel builds the persistence record from a fully validated payload.
// Optional text fields collapse to NULL columns when blank.
func (r CreateProductPayload) ToModel() *Product {
	p := &Product{
		Name:       r.Name,
		Slug:       r.Slug,
		BulkGrams:  *r.BulkGrams,
		Active:     *r.Active,
		Categories: append([]ProductCategory{}, r.Categories...),
		Images:     make([]Image, 0, len(r.Images)),
	}

	if r.LatinName != "" {
		v := r.LatinName
		p.LatinName = &v
	}
	if r.ReorderAtGrams != nil {
		v := *r.ReorderAtGrams
		p.ReorderAtGrams = &v
	}
	if r.DescriptionMd != "" {
		v := r.DescriptionMd
		p.DescriptionMd = &v
	}
	if r.OriginCountry != "" {
		v := r.OriginCountry
		p.OriginCountry = &v
	}
	p.OrganicCert = r.OrganicCert

	for _, img := range r.Images {
		p.Images = append(p.Images, Image{URL: img.URL, Alt: img.Alt})
	}

	return p
}

func knownCategories(value any) error {
	categories, ok := value.([]ProductCategory)
	if !ok {
		return fmt.Errorf("must be a list of categories")
	}
	for _, c := range categories {
		switch c {
		case CategoryHerbs, CategorySpices:
		default:
			return fmt.Errorf("must be a valid category (HERBS or SPICES)")
		}
	}
	return nil
}
