package catalog

import "github.com/goliatone/go-errors"

const (
	TextCodeMissingCredential   = "auth_missing_credential"
	TextCodeMalformedCredential = "auth_malformed_credential"
	TextCodeInvalidCredential   = "auth_invalid_credential"
	TextCodeTokenExpired        = "auth_token_expired"
	TextCodeTokenMalformed      = "auth_token_malformed"
	TextCodeTokenSignature      = "auth_token_bad_signature"
	TextCodeUnauthenticated     = "auth_unauthenticated"
	TextCodeInsufficientRole    = "auth_insufficient_role"
	TextCodeIdentityNotFound    = "auth_identity_not_found"
	TextCodeProductConflict     = "catalog_product_conflict"
	TextCodeVariantConflict     = "catalog_variant_conflict"
	TextCodeEmailConflict       = "catalog_email_conflict"
	TextCodeProductNotFound     = "catalog_product_not_found"
)

// ErrMissingCredential is returned when the Authorization header is absent.
var ErrMissingCredential = errors.New("authorization header is missing", errors.CategoryBadInput).
	WithTextCode(TextCodeMissingCredential).
	WithCode(errors.CodeBadRequest)

// ErrMalformedCredential is returned when the Authorization header is not
// exactly "Bearer <token>".
var ErrMalformedCredential = errors.New("authorization header has wrong shape or no token", errors.CategoryBadInput).
	WithTextCode(TextCodeMalformedCredential).
	WithCode(errors.CodeBadRequest)

// ErrInvalidCredential is the uniform rejection for tokens that fail
// verification. Expired, tampered, and wrong-secret tokens all surface as
// this error so callers cannot probe which condition occurred.
var ErrInvalidCredential = errors.New("invalid or expired token", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCredential).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired is the internal verification outcome for well formed but
// expired tokens. Never sent to clients; it maps to ErrInvalidCredential.
var ErrTokenExpired = errors.New("token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed is the internal verification outcome for tokens that
// cannot be parsed. Never sent to clients; it maps to ErrInvalidCredential.
var ErrTokenMalformed = errors.New("token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrTokenSignatureInvalid is the internal verification outcome for tokens
// signed with a different secret or tampered with in transit. Never sent to
// clients; it maps to ErrInvalidCredential.
var ErrTokenSignatureInvalid = errors.New("token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeTokenSignature).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned by the authorization gate when no identity
// claim is attached to the request at all.
var ErrUnauthenticated = errors.New("no identity attached to request", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrInsufficientRole is returned when an authenticated identity lacks the
// role a route requires.
var ErrInsufficientRole = errors.New("insufficient role for this action", errors.CategoryAuthz).
	WithTextCode(TextCodeInsufficientRole).
	WithCode(errors.CodeUnauthorized)

// ErrIdentityNotFound is returned for login attempts against unknown or
// mismatched credentials. Identical for unknown email and wrong password.
var ErrIdentityNotFound = errors.New("invalid email or password", errors.CategoryAuth).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(errors.CodeUnauthorized)

// ErrProductConflict is returned when a product with the same name exists.
var ErrProductConflict = errors.New("a product with that name already exists", errors.CategoryConflict).
	WithTextCode(TextCodeProductConflict).
	WithCode(errors.CodeConflict)

// ErrVariantConflict is returned when the owning product already has a
// variant with the same name.
var ErrVariantConflict = errors.New("a variant with that name already exists for this product", errors.CategoryConflict).
	WithTextCode(TextCodeVariantConflict).
	WithCode(errors.CodeConflict)

// ErrEmailConflict is returned when an account with the email already exists.
var ErrEmailConflict = errors.New("an account with this email already exists", errors.CategoryConflict).
	WithTextCode(TextCodeEmailConflict).
	WithCode(errors.CodeConflict)

// ErrProductNotFound is returned when a referenced product does not exist.
var ErrProductNotFound = errors.New("product not found", errors.CategoryNotFound).
	WithTextCode(TextCodeProductNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("value must not be empty", errors.CategoryBadInput).
	WithCode(errors.CodeBadRequest)

// ErrMismatchedHashAndPassword is kept distinct from bcrypt's sentinel so
// callers do not depend on the hashing library.
var ErrMismatchedHashAndPassword = errors.New("password does not match", errors.CategoryAuth).
	WithCode(errors.CodeUnauthorized)
