package openai

import (
	"context"

	"github.com/vfg2006/ledger-pulse-api/infrastructure/integrator/openai/openaiclient"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
)

// ComposerIntegrator gera o corpo do e-mail a partir do prompt montado pelo
// compositor. Falhas aqui não interrompem a execução: o compositor cai para
// o template padrão.
type ComposerIntegrator interface {
	ComposeUpdate(ctx context.Context, prompt string) (string, error)
}

type OpenAIService struct {
	cfg    *config.Config
	Client openaiclient.Client
}

func New(cfg *config.Config, client openaiclient.Client) ComposerIntegrator {
	return &OpenAIService{
		cfg:    cfg,
		Client: client,
	}
}

func (s *OpenAIService) ComposeUpdate(ctx context.Context, prompt string) (string, error) {
	return s.Client.CompleteChat(ctx, prompt)
}
