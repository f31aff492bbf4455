package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/apperrors"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/domain"
	portsrepo "github.com/georgeperezsalinas/siscont-erp-sub002/internal/core/ports/repositories"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/models"
	"github.com/georgeperezsalinas/siscont-erp-sub002/internal/utils/mapping"
)

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for currency data.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepositoryWithTx {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCurrencyRepository implements portsrepo.CurrencyRepositoryWithTx
var _ portsrepo.CurrencyRepositoryWithTx = (*PgxCurrencyRepository)(nil)

const currencyColumns = `currency_code, symbol, name, decimal_places,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanCurrencyRow(row pgx.Row) (*models.Currency, error) {
	var m models.Currency
	err := row.Scan(
		&m.CurrencyCode,
		&m.Symbol,
		&m.Name,
		&m.DecimalPlaces,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// SaveCurrency persists a new currency.
func (r *PgxCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	m := mapping.ToModelCurrency(currency)
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO currencies (
			currency_code, symbol, name, decimal_places,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`,
		m.CurrencyCode,
		m.Symbol,
		m.Name,
		m.DecimalPlaces,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to save currency "+m.CurrencyCode)
	}
	return nil
}

// FindCurrencyByCode retrieves a currency by its ISO 4217 code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		WHERE currency_code = $1;
	`, currencyCode)

	m, err := scanCurrencyRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find currency "+currencyCode, err)
	}
	currency := mapping.ToDomainCurrency(*m)
	return &currency, nil
}

// ListCurrencies retrieves all registered currencies.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT `+currencyColumns+`
		FROM currencies
		ORDER BY currency_code;
	`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query currencies", err)
	}
	defer rows.Close()

	currencies := []models.Currency{}
	for rows.Next() {
		m, scanErr := scanCurrencyRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency row", scanErr)
		}
		currencies = append(currencies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rows", err)
	}
	return mapping.ToDomainCurrencies(currencies), nil
}
