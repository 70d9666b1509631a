package catalog

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-repository-bun"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
)

// RouteRegistrar captures the router methods used by the controller.
type RouteRegistrar interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Patch(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Delete(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
}

// HTTPController handles the JSON API routes.
type HTTPController struct {
	Auther        Authenticator
	Repo          RepositoryManager
	CreateProduct *CreateProductHandler
	CreateVariant *CreateVariantHandler
	UpdateProduct *UpdateProductHandler
	ContextKey    string
	Logger        Logger
	Debug         bool
}

// NewHTTPController creates the API controller.
func NewHTTPController(auther Authenticator, repo RepositoryManager) *HTTPController {
	return &HTTPController{
		Auther:        auther,
		Repo:          repo,
		CreateProduct: NewCreateProductHandler(repo),
		CreateVariant: NewCreateVariantHandler(repo),
		UpdateProduct: NewUpdateProductHandler(repo),
		ContextKey:    "user",
		Logger:        defLogger{},
	}
}

// RegisterAuthRoutes mounts signup, login, and verify under the given group.
// The verify route expects the authentication gate in authMW.
func (c *HTTPController) RegisterAuthRoutes(group RouteRegistrar, authMW ...router.MiddlewareFunc) {
	group.Post("/signup", c.Signup)
	group.Post("/login", c.Login)
	group.Get("/verify", c.Verify, authMW...)
}

// RegisterAdminRoutes mounts the product management routes. The caller
// passes the authentication and role middleware chain.
func (c *HTTPController) RegisterAdminRoutes(group RouteRegistrar, mw ...router.MiddlewareFunc) {
	group.Post("/products", c.CreateProductPost, mw...)
	group.Get("/products", c.ListProducts, mw...)
	group.Get("/products/:productId", c.ShowProduct, mw...)
	group.Patch("/products/:productId", c.UpdateProductPatch, mw...)
	group.Delete("/products/:productId", c.DeleteProduct, mw...)
	group.Post("/products/:productId/variants", c.CreateVariantPost, mw...)
}

// RegisterShopRoutes mounts the public storefront reads.
func (c *HTTPController) RegisterShopRoutes(group RouteRegistrar) {
	group.Get("/products", c.ListShopProducts)
	group.Get("/products/:slug", c.ShowShopProduct)
}

// Signup registers a new customer account.
func (c *HTTPController) Signup(ctx router.Context) error {
	payload := new(SignupPayload)

	if err := ctx.Bind(payload); err != nil {
		return c.renderBindError(ctx, err)
	}

	if err := RunSchema(payload); err != nil {
		return c.renderError(ctx, err)
	}

	if c.Debug {
		fmt.Println("======= AUTH SIGNUP =====")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	user, err := c.Auther.Register(ctx.Context(), payload.ToMessage())
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, map[string]any{
		"user": user,
	})
}

// Login exchanges credentials for a session token.
func (c *HTTPController) Login(ctx router.Context) error {
	payload := new(LoginPayload)

	if err := ctx.Bind(payload); err != nil {
		return c.renderBindError(ctx, err)
	}

	if err := RunSchema(payload); err != nil {
		return c.renderError(ctx, err)
	}

	token, err := c.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"auth_token": token,
	})
}

// Verify echoes the verified claims back to the caller.
func (c *HTTPController) Verify(ctx router.Context) error {
	claims, ok := GetRouterClaims(ctx, c.ContextKey)
	if !ok {
		return c.renderError(ctx, ErrUnauthenticated)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"user_id":    claims.UserID(),
		"role":       claims.Role(),
		"expires_at": claims.Expires(),
	})
}

// CreateProductPost runs the product create pipeline end to end.
func (c *HTTPController) CreateProductPost(ctx router.Context) error {
	payload := new(CreateProductPayload)

	if err := ctx.Bind(payload); err != nil {
		return c.renderBindError(ctx, err)
	}

	if err := RunSchema(payload); err != nil {
		return c.renderError(ctx, err)
	}

	if c.Debug {
		fmt.Println("===== PRODUCT CREATE ====")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	product, err := c.CreateProduct.Execute(ctx.Context(), *payload)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, product)
}

// ListProducts returns every product with its variants, inactive variants
// last and cheapest first.
func (c *HTTPController) ListProducts(ctx router.Context) error {
	records, err := c.Repo.Products().ListAll(ctx.Context())
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"products": records,
	})
}

// ShowProduct returns one product by id.
func (c *HTTPController) ShowProduct(ctx router.Context) error {
	id, err := c.productIDParam(ctx)
	if err != nil {
		return c.renderError(ctx, err)
	}

	product, err := c.Repo.Products().FindByID(ctx.Context(), id)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return c.renderError(ctx, ErrProductNotFound)
		}
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, product)
}

// UpdateProductPatch merges a partial payload into the stored product.
func (c *HTTPController) UpdateProductPatch(ctx router.Context) error {
	id, err := c.productIDParam(ctx)
	if err != nil {
		return c.renderError(ctx, err)
	}

	payload := new(UpdateProductPayload)
	if err := ctx.Bind(payload); err != nil {
		return c.renderBindError(ctx, err)
	}

	if err := RunSchema(payload); err != nil {
		return c.renderError(ctx, err)
	}

	product, err := c.UpdateProduct.Execute(ctx.Context(), id, *payload)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, product)
}

// DeleteProduct removes a product and its variants.
func (c *HTTPController) DeleteProduct(ctx router.Context) error {
	id, err := c.productIDParam(ctx)
	if err != nil {
		return c.renderError(ctx, err)
	}

	if err := c.Repo.Products().DeleteByID(ctx.Context(), id); err != nil {
		if repository.IsRecordNotFound(err) {
			return c.renderError(ctx, ErrProductNotFound)
		}
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]string{
		"status": "deleted",
	})
}

// CreateVariantPost adds a pack size to an existing product.
func (c *HTTPController) CreateVariantPost(ctx router.Context) error {
	id, err := c.productIDParam(ctx)
	if err != nil {
		return c.renderError(ctx, err)
	}

	payload := new(CreateVariantPayload)
	if err := ctx.Bind(payload); err != nil {
		return c.renderBindError(ctx, err)
	}

	if err := RunSchema(payload); err != nil {
		return c.renderError(ctx, err)
	}

	variant, err := c.CreateVariant.Execute(ctx.Context(), id, *payload)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusCreated, variant)
}

// ListShopProducts returns the storefront listing: active products in name
// order, each carrying only its cheapest active variant.
func (c *HTTPController) ListShopProducts(ctx router.Context) error {
	records, err := c.Repo.Products().ListActive(ctx.Context())
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"products": records,
	})
}

// ShowShopProduct returns one active product by slug with its active
// variants.
func (c *HTTPController) ShowShopProduct(ctx router.Context) error {
	slug := ctx.Param("slug")
	if !ValidSlug(slug) {
		return c.renderError(ctx, ErrProductNotFound)
	}

	product, err := c.Repo.Products().FindBySlug(ctx.Context(), slug)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return c.renderError(ctx, ErrProductNotFound)
		}
		return c.renderError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, product)
}

func (c *HTTPController) productIDParam(ctx router.Context) (uuid.UUID, error) {
	raw := ctx.Param("productId")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, asValidationError(fieldError("productId", "must be a valid UUID"))
	}
	return id, nil
}

func (c *HTTPController) renderBindError(ctx router.Context, err error) error {
	c.Logger.Debug("request body decode failed: %v", err)
	return ctx.JSON(router.StatusBadRequest, map[string]any{
		"errors": map[string][]string{
			"payload": {"invalid JSON body"},
		},
	})
}

// renderError maps typed errors onto the wire: validation failures carry
// their per-field messages, internal failures get a generic message so no
// driver or stack detail leaks, everything else renders its own message.
func (c *HTTPController) renderError(ctx router.Context, err error) error {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		c.Logger.Error("unhandled error: %v", err)
		return ctx.JSON(router.StatusInternalServerError, map[string]any{
			"error": "internal server error",
		})
	}

	status := statusForCategory(richErr.Category)

	if richErr.Category == goerrors.CategoryValidation {
		if fields, ok := richErr.Metadata["fields"]; ok {
			return ctx.JSON(status, map[string]any{
				"errors": fields,
			})
		}
	}

	if status == router.StatusInternalServerError {
		c.Logger.Error("internal error: %v", richErr)
		return ctx.JSON(status, map[string]any{
			"error": "internal server error",
		})
	}

	return ctx.JSON(status, map[string]any{
		"error": richErr.Message,
	})
}

func statusForCategory(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return router.StatusBadRequest
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return router.StatusUnauthorized
	case goerrors.CategoryNotFound:
		return router.StatusNotFound
	case goerrors.CategoryConflict:
		return router.StatusConflict
	default:
		return router.StatusInternalServerError
	}
}
