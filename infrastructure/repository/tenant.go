package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const tenantsTable = "tenants"

type TenantRepository interface {
	CreateTenant(tenant *domain.Tenant) (*domain.Tenant, error)
	GetTenantByID(tenantID string) (*domain.Tenant, error)
	UpdateTenant(tenantID string, req *domain.UpdateTenantRequest) error
}

type tenantRepository struct {
	conn *postgres.Connection
}

func NewTenantRepository(conn *postgres.Connection) TenantRepository {
	return &tenantRepository{
		conn: conn,
	}
}

func (r *tenantRepository) CreateTenant(tenant *domain.Tenant) (*domain.Tenant, error) {
	tenantsSQL, tenantsArgs, err := squirrel.
		Insert(tenantsTable).
		Columns("id", "display_name", "composer_mode", "min_change_count").
		Values(tenant.ID, tenant.DisplayName, tenant.ComposerMode, tenant.MinChangeCount).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(tenantsSQL, tenantsArgs...).Scan(&tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) GetTenantByID(tenantID string) (*domain.Tenant, error) {
	tenantsSQL, tenantsArgs, err := squirrel.
		Select("id, display_name, composer_mode, min_change_count, created_at, updated_at").
		From(tenantsTable).
		Where(squirrel.Eq{"id": tenantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	tenant := &domain.Tenant{}
	err = r.conn.QueryRow(tenantsSQL, tenantsArgs...).Scan(
		&tenant.ID,
		&tenant.DisplayName,
		&tenant.ComposerMode,
		&tenant.MinChangeCount,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return tenant, nil
}

func (r *tenantRepository) UpdateTenant(tenantID string, req *domain.UpdateTenantRequest) error {
	queryBuilder := squirrel.
		Update(tenantsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": tenantID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.DisplayName != nil {
		queryBuilder = queryBuilder.Set("display_name", *req.DisplayName)
	}

	if req.ComposerMode != nil {
		queryBuilder = queryBuilder.Set("composer_mode", *req.ComposerMode)
	}

	if req.MinChangeCount != nil {
		queryBuilder = queryBuilder.Set("min_change_count", *req.MinChangeCount)
	}

	tenantsSQL, tenantsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(tenantsSQL, tenantsArgs...)
	return err
}
