package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const clientsTable = "clients"

type ClientRepository interface {
	CreateClient(client *domain.Client) (*domain.Client, error)
	GetClientByID(tenantID, clientID string) (*domain.Client, error)
	GetClientByRealmID(tenantID, realmID string) (*domain.Client, error)
	ListClients(tenantID string) ([]*domain.Client, error)
	ListConnectedClients(tenantID string) ([]*domain.Client, error)
	ListDueClients(now time.Time) ([]*domain.Client, error)
	UpdateClient(tenantID string, req *domain.UpdateClientRequest) error
	UpdateNextRunAt(tenantID, clientID string, nextRunAt *time.Time) error
	DisconnectClient(tenantID, clientID string) error
}

type clientRepository struct {
	conn *postgres.Connection
}

func NewClientRepository(conn *postgres.Connection) ClientRepository {
	return &clientRepository{
		conn: conn,
	}
}

const clientColumns = "id, tenant_id, realm_id, name, client_email, tags, " +
	"schedule_frequency, schedule_day_of_week, schedule_day_of_month, schedule_hour, " +
	"next_run_at, source, created_at, updated_at"

func (r *clientRepository) CreateClient(client *domain.Client) (*domain.Client, error) {
	clientsSQL, clientsArgs, err := squirrel.
		Insert(clientsTable).
		Columns("id", "tenant_id", "realm_id", "name", "client_email", "tags",
			"schedule_frequency", "schedule_day_of_week", "schedule_day_of_month", "schedule_hour",
			"next_run_at", "source").
		Values(client.ID, client.TenantID, client.RealmID, client.Name, client.ClientEmail,
			pq.Array(client.Tags), client.Schedule.Frequency, client.Schedule.DayOfWeek,
			client.Schedule.DayOfMonth, client.Schedule.Hour, client.NextRunAt, client.Source).
		Suffix("RETURNING created_at, updated_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(clientsSQL, clientsArgs...).Scan(&client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return nil, fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
		}
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) GetClientByID(tenantID, clientID string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"tenant_id": tenantID, "id": clientID})
}

func (r *clientRepository) GetClientByRealmID(tenantID, realmID string) (*domain.Client, error) {
	return r.getClient(squirrel.Eq{"tenant_id": tenantID, "realm_id": realmID})
}

func (r *clientRepository) getClient(whereClause map[string]interface{}) (*domain.Client, error) {
	clientsSQL, clientsArgs, err := squirrel.
		Select(clientColumns).
		From(clientsTable).
		Where(whereClause).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(clientsSQL, clientsArgs...)

	client, err := deserializeClient(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) ListClients(tenantID string) ([]*domain.Client, error) {
	return r.listClients(squirrel.Eq{"tenant_id": tenantID})
}

// ListConnectedClients retorna apenas os clientes com empresa QuickBooks
// vinculada, na ordem estável usada pelas execuções em lote
func (r *clientRepository) ListConnectedClients(tenantID string) ([]*domain.Client, error) {
	return r.listClients(squirrel.And{
		squirrel.Eq{"tenant_id": tenantID},
		squirrel.NotEq{"realm_id": nil},
	})
}

// ListDueClients retorna, em todos os tenants, os clientes conectados com
// schedule ativo cujo próximo disparo já passou ou nunca foi registrado
func (r *clientRepository) ListDueClients(now time.Time) ([]*domain.Client, error) {
	return r.listClients(squirrel.And{
		squirrel.NotEq{"realm_id": nil},
		squirrel.NotEq{"schedule_frequency": domain.ScheduleFrequencyNone},
		squirrel.Or{
			squirrel.Eq{"next_run_at": nil},
			squirrel.LtOrEq{"next_run_at": now},
		},
	})
}

func (r *clientRepository) listClients(whereClause squirrel.Sqlizer) ([]*domain.Client, error) {
	clientsSQL, clientsArgs, err := squirrel.
		Select(clientColumns).
		From(clientsTable).
		Where(whereClause).
		OrderBy("created_at ASC, id ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(clientsSQL, clientsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	clients := make([]*domain.Client, 0)

	for rows.Next() {
		client, err := deserializeClient(rows)
		if err != nil {
			return nil, err
		}

		clients = append(clients, client)
	}

	return clients, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func deserializeClient(row scanner) (*domain.Client, error) {
	client := &domain.Client{}

	if err := row.Scan(
		&client.ID,
		&client.TenantID,
		&client.RealmID,
		&client.Name,
		&client.ClientEmail,
		pq.Array(&client.Tags),
		&client.Schedule.Frequency,
		&client.Schedule.DayOfWeek,
		&client.Schedule.DayOfMonth,
		&client.Schedule.Hour,
		&client.NextRunAt,
		&client.Source,
		&client.CreatedAt,
		&client.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return client, nil
}

func (r *clientRepository) UpdateClient(tenantID string, req *domain.UpdateClientRequest) error {
	queryBuilder := squirrel.
		Update(clientsTable).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": req.ID}).
		PlaceholderFormat(squirrel.Dollar)

	if req.Name != nil {
		queryBuilder = queryBuilder.Set("name", *req.Name)
	}

	if req.ClientEmail != nil {
		queryBuilder = queryBuilder.Set("client_email", *req.ClientEmail)
	}

	if req.Tags != nil {
		queryBuilder = queryBuilder.Set("tags", pq.Array(req.Tags))
	}

	// O schedule é substituído por inteiro, nunca campo a campo
	if req.Schedule != nil {
		queryBuilder = queryBuilder.
			Set("schedule_frequency", req.Schedule.Frequency).
			Set("schedule_day_of_week", req.Schedule.DayOfWeek).
			Set("schedule_day_of_month", req.Schedule.DayOfMonth).
			Set("schedule_hour", req.Schedule.Hour)
	}

	clientsSQL, clientsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(clientsSQL, clientsArgs...)
	return err
}

func (r *clientRepository) UpdateNextRunAt(tenantID, clientID string, nextRunAt *time.Time) error {
	clientsSQL, clientsArgs, err := squirrel.
		Update(clientsTable).
		Set("next_run_at", nextRunAt).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(clientsSQL, clientsArgs...)
	return err
}

// DisconnectClient remove o vínculo com o QuickBooks mantendo o histórico
func (r *clientRepository) DisconnectClient(tenantID, clientID string) error {
	clientsSQL, clientsArgs, err := squirrel.
		Update(clientsTable).
		Set("realm_id", nil).
		Set("next_run_at", nil).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(clientsSQL, clientsArgs...)
	return err
}
