package repository

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/vfg2006/ledger-pulse-api/infrastructure/database/postgres"
	"github.com/vfg2006/ledger-pulse-api/internal/domain"
)

const tokensTable = "oauth_tokens"

// TokenRepository persiste os tokens OAuth por tenant, provedor e realm.
// Para o Gmail o realm_id é sempre vazio: o token é um por tenant.
type TokenRepository interface {
	SaveToken(tenantID, provider, realmID string, token *domain.OAuthToken) error
	GetToken(tenantID, provider, realmID string) (*domain.OAuthToken, error)
	HasToken(tenantID, provider, realmID string) (bool, error)
	DeleteToken(tenantID, provider, realmID string) error
}

type tokenRepository struct {
	conn *postgres.Connection
}

func NewTokenRepository(conn *postgres.Connection) TokenRepository {
	return &tokenRepository{
		conn: conn,
	}
}

func (r *tokenRepository) SaveToken(tenantID, provider, realmID string, token *domain.OAuthToken) error {
	tokensSQL, tokensArgs, err := squirrel.
		Insert(tokensTable).
		Columns("tenant_id", "provider", "realm_id", "access_token", "refresh_token", "expires_at").
		Values(tenantID, provider, realmID, token.AccessToken, token.RefreshToken, token.ExpiresAt).
		Suffix(`
			ON CONFLICT (tenant_id, provider, realm_id) DO UPDATE SET
				access_token = EXCLUDED.access_token,
				refresh_token = EXCLUDED.refresh_token,
				expires_at = EXCLUDED.expires_at,
				updated_at = NOW()
		`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(tokensSQL, tokensArgs...)
	return err
}

func (r *tokenRepository) GetToken(tenantID, provider, realmID string) (*domain.OAuthToken, error) {
	tokensSQL, tokensArgs, err := squirrel.
		Select("access_token, refresh_token, expires_at").
		From(tokensTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "provider": provider, "realm_id": realmID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	token := &domain.OAuthToken{}
	err = r.conn.QueryRow(tokensSQL, tokensArgs...).Scan(
		&token.AccessToken,
		&token.RefreshToken,
		&token.ExpiresAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	return token, nil
}

func (r *tokenRepository) HasToken(tenantID, provider, realmID string) (bool, error) {
	token, err := r.GetToken(tenantID, provider, realmID)
	if err != nil {
		return false, err
	}
	return token != nil, nil
}

func (r *tokenRepository) DeleteToken(tenantID, provider, realmID string) error {
	tokensSQL, tokensArgs, err := squirrel.
		Delete(tokensTable).
		Where(squirrel.Eq{"tenant_id": tenantID, "provider": provider, "realm_id": realmID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn.Exec(tokensSQL, tokensArgs...)
	return err
}
