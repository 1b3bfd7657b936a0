package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const snapshotsTable = "snapshots"

// SnapshotRepository persiste as capturas de métricas. O snapshot é gravado
// como JSONB: o formato evolui junto com o extrator sem migração de schema.
type SnapshotRepository interface {
	Save(tenantID, clientID string, snapshot *domain.Snapshot) error
	Latest(tenantID, clientID string) (*domain.Snapshot, error)
	DeleteForClient(tenantID, clientID string) error
	DeleteOlderThan(cutoff time.Time) (int64, error)
}

type snapshotRepository struct {
	conn *postgres.Connection
}

func NewSnapshotRepository(conn *postgres.Connection) SnapshotRepository {
	return &snapshotRepository{
		conn: conn,
	}
}

func (r *snapshotRepository) Save(tenantID, clientID string, snapshot *domain.Snapshot) error {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("erro ao serializar o snapshot: %w", err)
	}

	snapshotsSQL, snapshotsArgs, err := squirrel.
		Insert(snapshotsTable).
		Columns("tenant_id", "client_id", "captured_at", "data").
		Values(tenantID, clientID, snapshot.CapturedAt, data).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(snapshotsSQL, snapshotsArgs...)
	return err
}

// Latest retorna a captura mais recente do cliente, ou nil na primeira execução
func (r *snapshotRepository) Latest(tenantID, clientID string) (*domain.Snapshot, error) {
	snapshotsSQL, snapshotsArgs, err := squirrel.
		Select("data").
		From(snapshotsTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "client_id": clientID}).
		OrderBy("captured_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	var data []byte
	err = r.conn.QueryRow(snapshotsSQL, snapshotsArgs...).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	snapshot := &domain.Snapshot{}
	if err := json.Unmarshal(data, snapshot); err != nil {
		return nil, fmt.Errorf("erro ao desserializar o snapshot: %w", err)
	}

	return snapshot, nil
}

func (r *snapshotRepository) DeleteForClient(tenantID, clientID string) error {
	snapshotsSQL, snapshotsArgs, err := squirrel.
		Delete(snapshotsTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "client_id": clientID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(snapshotsSQL, snapshotsArgs...)
	return err
}

// DeleteOlderThan apaga capturas anteriores ao corte, preservando sempre a
// mais recente de cada cliente para não quebrar a base de comparação
func (r *snapshotRepository) DeleteOlderThan(cutoff time.Time) (int64, error) {
	snapshotsSQL, snapshotsArgs, err := squirrel.
		Delete(snapshotsTable).
		Where(squirrel.Lt{"captured_at": cutoff}).
		Where(squirrel.Expr(`id NOT IN (
			SELECT DISTINCT ON (tenant_id, client_id) id
			FROM snapshots
			ORDER BY tenant_id, client_id, captured_at DESC
		)`)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(snapshotsSQL, snapshotsArgs...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
