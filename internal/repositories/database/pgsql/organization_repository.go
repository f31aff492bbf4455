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

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryWithTx {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryWithTx
var _ portsrepo.OrganizationRepositoryWithTx = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, name, tax_id, default_currency_code, is_active,
	       created_at, created_by, last_updated_at, last_updated_by`

func scanOrganizationRow(row pgx.Row) (*models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.TaxID,
		&m.DefaultCurrencyCode,
		&m.IsActive,
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

// SaveOrganization persists a new organization together with the creator's
// ADMIN membership in one transaction. The unique index on tax_id surfaces
// duplicates as apperrors.ErrDuplicate.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	m := mapping.ToModelOrganization(organization)
	_, err = tx.Exec(ctx, `
		INSERT INTO organizations (
			organization_id, name, tax_id, default_currency_code, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`,
		m.OrganizationID,
		m.Name,
		m.TaxID,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translatePgError(err, "failed to save organization "+m.OrganizationID)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`,
		creatorMembership.UserID,
		creatorMembership.OrganizationID,
		string(creatorMembership.Role),
		creatorMembership.JoinedAt,
	)
	if err != nil {
		return translatePgError(err, "failed to save creator membership for organization "+m.OrganizationID)
	}

	return r.Commit(ctx, tx)
}

// UpdateOrganization updates mutable organization fields.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)
	tag, err := r.Pool.Exec(ctx, `
		UPDATE organizations
		SET name = $1, default_currency_code = $2, is_active = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6;
	`,
		m.Name,
		m.DefaultCurrencyCode,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.OrganizationID,
	)
	if err != nil {
		return translatePgError(err, "failed to update organization "+m.OrganizationID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("organization " + m.OrganizationID + " not found")
	}
	return nil
}

// AddUserToOrganization persists a new membership.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	_, err := r.Pool.Exec(ctx, `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`,
		membership.UserID,
		membership.OrganizationID,
		string(membership.Role),
		membership.JoinedAt,
	)
	if err != nil {
		return translatePgError(err, "failed to add user "+membership.UserID+" to organization "+membership.OrganizationID)
	}
	return nil
}

// UpdateUserOrganizationRole changes an existing membership's role.
func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.UserOrganizationRole) error {
	tag, err := r.Pool.Exec(ctx, `
		UPDATE user_organizations
		SET role = $1
		WHERE user_id = $2 AND organization_id = $3;
	`, string(role), userID, organizationID)
	if err != nil {
		return translatePgError(err, "failed to update role of user "+userID)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("membership of user " + userID + " not found")
	}
	return nil
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	row := r.Pool.QueryRow(ctx, `
		SELECT `+organizationColumns+`
		FROM organizations
		WHERE organization_id = $1;
	`, organizationID)

	m, err := scanOrganizationRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}
	organization := mapping.ToDomainOrganization(*m)
	return &organization, nil
}

// ListOrganizationsByUser retrieves the organizations the user belongs to.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT o.organization_id, o.name, o.tax_id, o.default_currency_code, o.is_active,
		       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON uo.organization_id = o.organization_id
		WHERE uo.user_id = $1 AND uo.role != 'REMOVED'
		ORDER BY o.name;
	`, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations for user "+userID, err)
	}
	defer rows.Close()

	organizations := []models.Organization{}
	for rows.Next() {
		m, scanErr := scanOrganizationRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", scanErr)
		}
		organizations = append(organizations, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows", err)
	}
	return mapping.ToDomainOrganizations(organizations), nil
}

// FindUserOrganization retrieves a user's membership in an organization.
func (r *PgxOrganizationRepository) FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	var m models.UserOrganization
	err := r.Pool.QueryRow(ctx, `
		SELECT uo.user_id, u.name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON u.user_id = uo.user_id
		WHERE uo.user_id = $1 AND uo.organization_id = $2;
	`, userID, organizationID).Scan(
		&m.UserID,
		&m.UserName,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership of user "+userID, err)
	}
	membership := mapping.ToDomainUserOrganization(m)
	return &membership, nil
}

// ListUsersByOrganization retrieves all memberships of an organization.
func (r *PgxOrganizationRepository) ListUsersByOrganization(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT uo.user_id, u.name, uo.organization_id, uo.role, uo.joined_at
		FROM user_organizations uo
		JOIN users u ON u.user_id = uo.user_id
		WHERE uo.organization_id = $1
		ORDER BY uo.joined_at;
	`, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query memberships for organization "+organizationID, err)
	}
	defer rows.Close()

	memberships := []models.UserOrganization{}
	for rows.Next() {
		var m models.UserOrganization
		err := rows.Scan(&m.UserID, &m.UserName, &m.OrganizationID, &m.Role, &m.JoinedAt)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}
	return mapping.ToDomainUserOrganizations(memberships), nil
}
