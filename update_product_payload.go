package catalog

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// UpdateProductPayload is the admin product patch body. Every field is
// optional; absent fields leave the stored value untouched. Cross-field
// invariants run against the merged record, not this payload, so Refine
// lives on the handler side.
type UpdateProductPayload struct {
	Name           *string           `json:"name"`
	Slug           *string           `json:"slug"`
	LatinName      *string           `json:"latinName"`
	BulkGrams      *int              `json:"bulkGrams"`
	ReorderAtGrams *int              `json:"reorderAtGrams"`
	DescriptionMd  *string           `json:"descriptionMd"`
	OriginCountry  *string           `json:"originCountry"`
	OrganicCert    *string           `json:"organicCert"`
	Active         *bool             `json:"active"`
	Categories     []ProductCategory `json:"categories"`
	Images         []ImagePayload    `json:"images"`
}

// Validate applies the create-time bounds to whichever fields are present.
func (r UpdateProductPayload) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Length(2, 120)),
		validation.Field(&r.Slug, validation.Length(0, 140)),
		validation.Field(&r.LatinName, validation.Length(0, 140)),
		validation.Field(&r.BulkGrams, validation.Min(0)),
		validation.Field(&r.ReorderAtGrams, validation.Min(0)),
		validation.Field(&r.DescriptionMd, validation.Length(0, 20000)),
		validation.Field(&r.OriginCountry, validation.Length(0, 80)),
		validation.Field(&r.OrganicCert, validation.Length(0, 50)),
		validation.Field(&r.Categories, validation.By(knownCategoriesIfSet)),
		validation.Field(&r.Images),
	)
}

// Normalize trims and canonicalizes the fields that are present.
func (r *UpdateProductPayload) Normalize() error {
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if len(name) < 2 {
			return fieldError("name", "the length must be between 2 and 120")
		}
		r.Name = &name
	}

	if r.Slug != nil {
		slug := Slugify(*r.Slug)
		if !ValidSlug(slug) {
			return fieldError("slug", "use lowercase letters, numbers, and dashes (2-140 characters)")
		}
		r.Slug = &slug
	}

	if r.OrganicCert != nil {
		cert := strings.TrimSpace(*r.OrganicCert)
		switch {
		case cert == "":
			// The patch explicitly clears the certification.
			empty := ""
			r.OrganicCert = &empty
		case !organicCertPattern.MatchString(cert):
			return fieldError("organicCert", "expected like DE-ÖKO-001")
		default:
			r.OrganicCert = &cert
		}
	}

	return nil
}

// Apply merges the present fields into the stored record and returns it.
func (r UpdateProductPayload) Apply(product *Product) *Product {
	if r.Name != nil {
		product.Name = *r.Name
	}
	if r.Slug != nil {
		product.Slug = *r.Slug
	}
	if r.LatinName != nil {
		if *r.LatinName == "" {
			product.LatinName = nil
		} else {
			product.LatinName = r.LatinName
		}
	}
	if r.BulkGrams != nil {
		product.BulkGrams = *r.BulkGrams
	}
	if r.ReorderAtGrams != nil {
		product.ReorderAtGrams = r.ReorderAtGrams
	}
	if r.DescriptionMd != nil {
		if *r.DescriptionMd == "" {
			product.DescriptionMd = nil
		} else {
			product.DescriptionMd = r.DescriptionMd
		}
	}
	if r.OriginCountry != nil {
		if *r.OriginCountry == "" {
			product.OriginCountry = nil
		} else {
			product.OriginCountry = r.OriginCountry
		}
	}
	if r.OrganicCert != nil {
		if *r.OrganicCert == "" {
			product.OrganicCert = nil
		} else {
			product.OrganicCert = r.OrganicCert
		}
	}
	if r.Active != nil {
		product.Active = *r.Active
	}
	if r.Categories != nil {
		product.Categories = append([]ProductCategory{}, r.Categories...)
	}
	if r.Images != nil {
		images := make([]Image, 0, len(r.Images))
		for _, img := range r.Images {
			images = append(images, Image{URL: img.URL, Alt: img.Alt})
		}
		product.Images = images
	}

	return product
}

func knownCategoriesIfSet(value any) error {
	categories, ok := value.([]ProductCategory)
	if !ok {
		return fmt.Errorf("must be a list of categories")
	}
	if categories == nil {
		return nil
	}
	if len(categories) == 0 {
		return fmt.Errorf("cannot be blank")
	}
	return knownCategories(categories)
}
