package authware

import (
	"context"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"
)

const defaultHeader = router.HeaderAuthorization

// TokenValidator mirrors the catalog TokenService.Validate method so this
// package does not import the catalog package.
type TokenValidator interface {
	Validate(tokenString string) (AuthClaims, error)
}

// AuthClaims mirrors the catalog claims interface.
type AuthClaims interface {
	Subject() string
	UserID() string
	Role() string
	HasRole(role string) bool
	IsAtLeast(minRole string) bool
}

// Extraction and verification outcomes. Missing and malformed headers are
// caller mistakes and map to 400; everything that touches the token's
// cryptographic validity collapses into the uniform 401.
var (
	ErrMissingAuthHeader = goerrors.New("authorization header is missing", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest).
				WithTextCode("auth_missing_credential")

	ErrMalformedAuthHeader = goerrors.New("authorization header has wrong shape or no token", goerrors.CategoryBadInput).
				WithCode(goerrors.CodeBadRequest).
				WithTextCode("auth_malformed_credential")

	ErrInvalidToken = goerrors.New("invalid or expired token", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized).
			WithTextCode("auth_invalid_credential")

	ErrNoClaims = goerrors.New("no identity attached to request", goerrors.CategoryAuth).
			WithCode(goerrors.CodeUnauthorized).
			WithTextCode("auth_unauthenticated")

	ErrForbiddenRole = goerrors.New("insufficient role for this action", goerrors.CategoryAuthz).
				WithCode(goerrors.CodeUnauthorized).
				WithTextCode("auth_insufficient_role")
)

type Config struct {
	Filter         func(router.Context) bool
	SuccessHandler router.HandlerFunc
	ErrorHandler   router.ErrorHandler
	ContextKey     string
	AuthScheme     string

	// TokenValidator is required for token validation
	TokenValidator TokenValidator

	// RequiredRole specifies an exact role that must be present
	RequiredRole string
	// MinimumRole specifies the minimum role level required (uses role hierarchy)
	MinimumRole string

	// ContextEnricher propagates claims into the standard Go context after a
	// successful validation.
	ContextEnricher func(c context.Context, claims AuthClaims) context.Context
}

// New builds the authentication gate. Extraction failures, verification
// failures, and role failures all short-circuit through the ErrorHandler;
// on success the claims land in Locals under ContextKey and the request
// proceeds.
func New(config ...Config) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		cfg := GetDefaultConfig(config...)
		return func(ctx router.Context) error {
			if cfg.Filter != nil && cfg.Filter(ctx) {
				return ctx.Next()
			}

			raw, err := ExtractBearerToken(ctx, cfg.AuthScheme)
			if err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			claims, err := cfg.TokenValidator.Validate(raw)
			if err != nil {
				// Expired, tampered, and garbage tokens are
				// indistinguishable to the caller.
				return cfg.ErrorHandler(ctx, ErrInvalidToken)
			}

			if err := performAuthorizationChecks(claims, cfg); err != nil {
				return cfg.ErrorHandler(ctx, err)
			}

			ctx.Locals(cfg.ContextKey, claims)

			if cfg.ContextEnricher != nil {
				stdCtx := ctx.Context()
				ctx.SetContext(cfg.ContextEnricher(stdCtx, claims))
			}

			return cfg.SuccessHandler(ctx)
		}
	}
}

// RequireRole builds the authorization gate as a standalone middleware for
// routes whose authentication already ran. It reads the claims the
// authentication gate stored and rejects requests without them.
func RequireRole(contextKey, role string) router.MiddlewareFunc {
	return func(hf router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			raw := ctx.Locals(contextKey)
			if raw == nil {
				return defaultErrorHandler(ctx, ErrNoClaims)
			}

			claims, ok := raw.(AuthClaims)
			if !ok {
				return defaultErrorHandler(ctx, ErrNoClaims)
			}

			if !claims.IsAtLeast(role) {
				return defaultErrorHandler(ctx, ErrForbiddenRole)
			}

			return ctx.Next()
		}
	}
}

func performAuthorizationChecks(claims AuthClaims, cfg Config) error {
	if cfg.RequiredRole == "" && cfg.MinimumRole == "" {
		return nil
	}

	if claims == nil {
		return ErrNoClaims
	}

	if cfg.RequiredRole != "" && !claims.HasRole(cfg.RequiredRole) {
		return ErrForbiddenRole
	}

	if cfg.MinimumRole != "" && !claims.IsAtLeast(cfg.MinimumRole) {
		return ErrForbiddenRole
	}

	return nil
}

// ExtractBearerToken pulls the raw token out of the Authorization header,
// distinguishing an absent header from one with the wrong shape. "Bearer"
// matches case-insensitively. A header that is not exactly scheme plus one
// token, with no whitespace inside the token, reads as malformed.
func ExtractBearerToken(ctx router.Context, authScheme string) (string, error) {
	header := ctx.GetString(defaultHeader, "")
	if header == "" {
		return "", ErrMissingAuthHeader
	}

	l := len(authScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], authScheme) || header[l] != ' ' {
		return "", ErrMalformedAuthHeader
	}

	token := strings.TrimSpace(header[l+1:])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedAuthHeader
	}

	return token, nil
}

func GetDefaultConfig(config ...Config) (cfg Config) {
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.SuccessHandler == nil {
		cfg.SuccessHandler = func(ctx router.Context) error {
			return ctx.Next()
		}
	}

	if cfg.ErrorHandler == nil {
		cfg.ErrorHandler = defaultErrorHandler
	}

	if cfg.TokenValidator == nil {
		panic("AUTH: middleware configuration: TokenValidator is required.")
	}

	if cfg.ContextKey == "" {
		cfg.ContextKey = "user"
	}

	if cfg.AuthScheme == "" {
		cfg.AuthScheme = "Bearer"
	}

	return cfg
}

func defaultErrorHandler(c router.Context, err error) error {
	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return c.JSON(statusFor(richErr), map[string]any{
			"error": richErr.Message,
		})
	}
	return c.JSON(router.StatusUnauthorized, map[string]any{
		"error": "invalid or expired token",
	})
}

func statusFor(err *goerrors.Error) int {
	switch err.Category {
	case goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return router.StatusUnauthorized
	default:
		return router.StatusUnauthorized
	}
}
