package main

import (
	"os"
	"strconv"

	"github.com/goliatone/go-errors"

	catalog "github.com/goliatone/go-catalog"
)

// envConfig implements catalog.Config from environment variables. The
// signing secret has no default; a process without TOKEN_SECRET must not
// come up.
type envConfig struct {
	signingKey      string
	tokenExpiration int
	contextKey      string
	authScheme      string
	issuer          string
	audience        []string
	addr            string
	dsn             string
}

func loadConfig() (*envConfig, error) {
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		return nil, errors.New("TOKEN_SECRET is required", errors.CategoryInternal)
	}

	cfg := &envConfig{
		signingKey:      secret,
		tokenExpiration: catalog.DefaultTokenTTLHours,
		contextKey:      envDefault("AUTH_CONTEXT_KEY", "user"),
		authScheme:      "Bearer",
		issuer:          os.Getenv("TOKEN_ISSUER"),
		addr:            envDefault("SERVER_ADDR", ":3000"),
		dsn:             envDefault("DB_DSN", "file:catalog.db?cache=shared"),
	}

	if raw := os.Getenv("TOKEN_TTL_HOURS"); raw != "" {
		hours, err := strconv.Atoi(raw)
		if err != nil || hours <= 0 {
			return nil, errors.New("TOKEN_TTL_HOURS must be a positive integer", errors.CategoryInternal)
		}
		cfg.tokenExpiration = hours
	}

	if aud := os.Getenv("TOKEN_AUDIENCE"); aud != "" {
		cfg.audience = []string{aud}
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (c *envConfig) GetSigningKey() string      { return c.signingKey }
func (c *envConfig) GetSigningMethod() string   { return "HS256" }
func (c *envConfig) GetContextKey() string      { return c.contextKey }
func (c *envConfig) GetTokenExpiration() int    { return c.tokenExpiration }
func (c *envConfig) GetTokenLookup() string     { return "header:Authorization" }
func (c *envConfig) GetAuthScheme() string      { return c.authScheme }
func (c *envConfig) GetIssuer() string          { return c.issuer }
func (c *envConfig) GetAudience() []string      { return c.audience }
