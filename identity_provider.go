package catalog

import (
	"context"

	"github.com/goliatone/go-repository-bun"
)

// RepositoryIdentityProvider resolves identities against the users table.
// Unknown email and wrong password both come back as ErrIdentityNotFound so
// a failed login never reveals whether the account exists.
type RepositoryIdentityProvider struct {
	repo   RepositoryManager
	logger Logger
}

func NewRepositoryIdentityProvider(repo RepositoryManager) *RepositoryIdentityProvider {
	return &RepositoryIdentityProvider{
		repo:   repo,
		logger: defLogger{},
	}
}

func (p *RepositoryIdentityProvider) WithLogger(logger Logger) *RepositoryIdentityProvider {
	if logger != nil {
		p.logger = logger
	}
	return p
}

// VerifyIdentity checks the password against the stored hash and returns the
// matching identity.
func (p *RepositoryIdentityProvider) VerifyIdentity(ctx context.Context, identifier, password string) (Identity, error) {
	user, err := p.repo.Users().FindByEmail(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	if err := ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		p.logger.Debug("VerifyIdentity password mismatch for %s", identifier)
		return nil, ErrIdentityNotFound
	}

	return NewIdentityFromUser(user), nil
}

// FindIdentityByIdentifier resolves an identity without a password check.
func (p *RepositoryIdentityProvider) FindIdentityByIdentifier(ctx context.Context, identifier string) (Identity, error) {
	user, err := p.repo.Users().FindByEmail(ctx, identifier)
	if err != nil {
		if repository.IsRecordNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, err
	}

	return NewIdentityFromUser(user), nil
}
