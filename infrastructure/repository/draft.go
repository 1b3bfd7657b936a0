package repository

import (
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const draftsTable = "drafts"

type DraftRepository interface {
	CreateDraft(draft *domain.Draft) (*domain.Draft, error)
	GetDraftByID(tenantID, draftID string) (*domain.Draft, error)
	ListDrafts(tenantID string, status *domain.DraftStatus) ([]*domain.Draft, error)
	MarkApproved(tenantID, draftID, gmailDraftID string, approvedAt time.Time) error
	DeleteOlderThan(cutoff time.Time, status domain.DraftStatus) (int64, error)
}

type draftRepository struct {
	conn *postgres.Connection
}

func NewDraftRepository(conn *postgres.Connection) DraftRepository {
	return &draftRepository{
		conn: conn,
	}
}

const draftColumns = "id, tenant_id, client_id, client_name, client_email, subject, body, " +
	"change_count, status, gmail_draft_id, created_at, approved_at"

func (r *draftRepository) CreateDraft(draft *domain.Draft) (*domain.Draft, error) {
	draftsSQL, draftsArgs, err := squirrel.
		Insert(draftsTable).
		Columns("id", "tenant_id", "client_id", "client_name", "client_email",
			"subject", "body", "change_count", "status").
		Values(draft.ID, draft.TenantID, draft.ClientID, draft.ClientName, draft.ClientEmail,
			draft.Subject, draft.Body, draft.ChangeCount, draft.Status).
		Suffix("RETURNING created_at").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	err = r.conn.QueryRow(draftsSQL, draftsArgs...).Scan(&draft.CreatedAt)
	if err != nil {
		return nil, err
	}

	return draft, nil
}

func (r *draftRepository) GetDraftByID(tenantID, draftID string) (*domain.Draft, error) {
	draftsSQL, draftsArgs, err := squirrel.
		Select(draftColumns).
		From(draftsTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": draftID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	row := r.conn.QueryRow(draftsSQL, draftsArgs...)

	draft, err := deserializeDraft(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return draft, nil
}

func (r *draftRepository) ListDrafts(tenantID string, status *domain.DraftStatus) ([]*domain.Draft, error) {
	queryBuilder := squirrel.
		Select(draftColumns).
		From(draftsTable).
		Where(squirrel.Eq{"tenant_id": tenantID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if status != nil {
		queryBuilder = queryBuilder.Where(squirrel.Eq{"status": *status})
	}

	draftsSQL, draftsArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn.Query(draftsSQL, draftsArgs...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	defer rows.Close()

	drafts := make([]*domain.Draft, 0)

	for rows.Next() {
		draft, err := deserializeDraft(rows)
		if err != nil {
			return nil, err
		}

		drafts = append(drafts, draft)
	}

	return drafts, rows.Err()
}

func deserializeDraft(row scanner) (*domain.Draft, error) {
	draft := &domain.Draft{}

	if err := row.Scan(
		&draft.ID,
		&draft.TenantID,
		&draft.ClientID,
		&draft.ClientName,
		&draft.ClientEmail,
		&draft.Subject,
		&draft.Body,
		&draft.ChangeCount,
		&draft.Status,
		&draft.GmailDraftID,
		&draft.CreatedAt,
		&draft.ApprovedAt,
	); err != nil {
		return nil, err
	}

	return draft, nil
}

// MarkApproved grava a transição pending→approved. O filtro por status
// garante que a aprovação acontece no máximo uma vez, mesmo sob concorrência.
func (r *draftRepository) MarkApproved(tenantID, draftID, gmailDraftID string, approvedAt time.Time) error {
	draftsSQL, draftsArgs, err := squirrel.
		Update(draftsTable).
		Set("status", domain.DraftStatusApproved).
		Set("gmail_draft_id", gmailDraftID).
		Set("approved_at", approvedAt).
		Where(squirrel.Eq{"tenant_id": tenantID, "id": draftID, "status": domain.DraftStatusPending}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	result, err := r.conn.Exec(draftsSQL, draftsArgs...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *draftRepository) DeleteOlderThan(cutoff time.Time, status domain.DraftStatus) (int64, error) {
	draftsSQL, draftsArgs, err := squirrel.
		Delete(draftsTable).
		Where(squirrel.Lt{"created_at": cutoff}).
		Where(squirrel.Eq{"status": status}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, err
	}

	result, err := r.conn.Exec(draftsSQL, draftsArgs...)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}
