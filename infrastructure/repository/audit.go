package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const auditTable = "audit_log"

// AuditRepository grava o trilho de auditoria. Registros nunca são alterados
// depois de inseridos.
type AuditRepository interface {
	Append(entry *domain.AuditEntry) error
	ListByTenant(tenantID string, limit uint64) ([]*domain.AuditEntry, error)
}

type auditRepository struct {
	conn *postgres.Connection
}

func NewAuditRepository(conn *postgres.Connection) AuditRepository {
	return &auditRepository{
		conn: conn,
	}
}

func (r *auditRepository) Append(entry *domain.AuditEntry) error {
	metadata, err := json.Marshal(entry.Metadata)
	if err != nil {
		return fmt.Errorf("erro ao serializar os metadados: %w", err)
	}

	auditSQL, auditArgs, err := squirrel.
		Insert(auditTable).
		Columns("tenant_id", "user_id", "action", "entity_type", "entity_id", "metadata").
		Values(entry.TenantID, entry.UserID, entry.Action, entry.EntityType, entry.EntityID, metadata).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(auditSQL, auditArgs...)
	return err
}

func (r *auditRepository) ListByTenant(tenantID string, limit uint64) ([]*domain.AuditEntry, error) {
	auditSQL, auditArgs, err := squirrel.
		Select("id, tenant_id, user_id, action, entity_type, entity_id, metadata, created_at").
		From(auditTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		Limit(limit).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(auditSQL, auditArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	entries := make([]*domain.AuditEntry, 0)

	for rows.Next() {
		entry := &domain.AuditEntry{}
		var metadata []byte

		if err := rows.Scan(
			&entry.ID,
			&entry.TenantID,
			&entry.UserID,
			&entry.Action,
			&entry.EntityType,
			&entry.EntityID,
			&metadata,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("erro ao desserializar os metadados: %w", err)
			}
		}

		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
