package domain

import (
	"time"
)

// Provedores de OAuth suportados
const (
	TokenProviderQBO   = "qbo"
	TokenProviderGmail = "gmail"
)

// OAuthToken é o par de credenciais persistido por tenant e provedor
type OAuthToken struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// NeedsRefresh indica se o access token expira em menos de um minuto
func (t *OAuthToken) NeedsRefresh(now time.Time) bool {
	return t.ExpiresAt.Sub(now) <= time.Minute
}
