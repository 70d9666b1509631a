package catalog

import (
	"fmt"
	"sort"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-errors"
)

// Schema is implemented by request payloads. Validate runs the structural
// rules (types, ranges, patterns, required fields) and is the only mandatory
// stage.
type Schema interface {
	Validate() error
}

// Normalizer is the optional transform stage: defaulting, trimming, and
// canonicalization. It only runs on structurally valid payloads and mutates
// the payload in place; payloads are decoded fresh per request so the
// caller's raw input is never touched.
type Normalizer interface {
	Normalize() error
}

// Refiner is the optional cross-field stage. It only runs on normalized
// data, so refinement rules can assume defaults are applied and derived
// fields are populated.
type Refiner interface {
	Refine() error
}

// RunSchema drives a payload through structure, transform, and refine in
// that fixed order. The first failing stage short-circuits: a structurally
// invalid payload is never normalized, and refinements never see
// half-transformed data. Failures come back as a CategoryValidation error
// whose metadata carries one entry per offending field path.
func RunSchema(payload Schema) error {
	if err := payload.Validate(); err != nil {
		return asValidationError(err)
	}

	if n, ok := payload.(Normalizer); ok {
		if err := n.Normalize(); err != nil {
			return asValidationError(err)
		}
	}

	if r, ok := payload.(Refiner); ok {
		if err := r.Refine(); err != nil {
			return asValidationError(err)
		}
	}

	return nil
}

// FieldErrors flattens an ozzo validation error into wire-ready field paths.
// Nested errors (slice elements, embedded structs) become dotted paths such
// as "variants.0.label".
func FieldErrors(err error) map[string][]string {
	out := map[string][]string{}
	collectFieldErrors(out, "", err)
	return out
}

func collectFieldErrors(out map[string][]string, prefix string, err error) {
	if err == nil {
		return
	}

	verrs, ok := err.(validation.Errors)
	if !ok {
		key := prefix
		if key == "" {
			key = "payload"
		}
		out[key] = append(out[key], err.Error())
		return
	}

	// Stable ordering so repeated validations render identically.
	keys := make([]string, 0, len(verrs))
	for k := range verrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		path := k
		if prefix != "" {
			path = fmt.Sprintf("%s.%s", prefix, k)
		}
		collectFieldErrors(out, path, verrs[k])
	}
}

func asValidationError(err error) error {
	var richErr *errors.Error
	if errors.As(err, &richErr) {
		return richErr
	}

	return errors.Wrap(err, errors.CategoryValidation, "payload validation failed").
		WithCode(errors.CodeBadRequest).
		WithMetadata(map[string]any{
			"fields": FieldErrors(err),
		})
}

// fieldError builds a single-field ozzo error, used by Normalize and Refine
// implementations to report failures under the offending field's path.
func fieldError(field, message string) validation.Errors {
	return validation.Errors{
		field: fmt.Errorf("%s", message),
	}
}
