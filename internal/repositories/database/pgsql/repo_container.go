package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
)

// Repositories bundles every Postgres-backed repository built on one pool.
type Repositories struct {
	Account        portsrepo.AccountRepositoryWithTx
	Currency       portsrepo.CurrencyRepositoryWithTx
	Entry          portsrepo.EntryRepositoryWithTx
	Period         portsrepo.PeriodRepositoryWithTx
	Reconciliation portsrepo.ReconciliationRepositoryWithTx
	Organization   portsrepo.OrganizationRepositoryWithTx
	User           portsrepo.UserRepositoryWithTx
}

// NewRepositories creates all repositories sharing the given connection pool.
func NewRepositories(pool *pgxpool.Pool) Repositories {
	return Repositories{
		Account:        newPgxAccountRepository(pool),
		Currency:       newPgxCurrencyRepository(pool),
		Entry:          newPgxEntryRepository(pool),
		Period:         newPgxPeriodRepository(pool),
		Reconciliation: newPgxReconciliationRepository(pool),
		Organization:   newPgxOrganizationRepository(pool),
		User:           newPgxUserRepository(pool),
	}
}

// Provider exposes the repositories through the read-side facade bundle.
func (r Repositories) Provider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:        r.Account,
		CurrencyRepo:       r.Currency,
		EntryRepo:          r.Entry,
		PeriodRepo:         r.Period,
		ReconciliationRepo: r.Reconciliation,
		OrganizationRepo:   r.Organization,
		UserRepo:           r.User,
	}
}
