package openaiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/ledger-pulse-api/internal/config"
	"github.com/vfg2006/ledger-pulse-api/pkg/utils"
)

const completionsURL = "https://api.openai.com/v1/chat/completions"

const systemPrompt = "You are a helpful bookkeeping assistant. Write concise, professional " +
	"client update emails. Avoid sensitive data beyond the provided metrics. Keep under 180 words."

type Client interface {
	CompleteChat(ctx context.Context, userPrompt string) (string, error)
}

type OpenAIClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &OpenAIClient{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		cfg: cfg,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// CompleteChat envia o prompt ao modelo configurado e retorna o texto gerado
func (c *OpenAIClient) CompleteChat(ctx context.Context, userPrompt string) (string, error) {
	payload := chatRequest{
		Model: c.cfg.OpenAI.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.2,
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar a requisição: %w", err)
	}

	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.Debug("Payload enviado ao modelo: ", utils.PrettyJson(encoded))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, completionsURL, strings.NewReader(string(encoded)))
	if err != nil {
		return "", fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenAI.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("requisição de completion falhou com status %s: %s", resp.Status, string(raw))
	}

	var completion chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("resposta do modelo sem choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
