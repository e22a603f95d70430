package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/maheshrc27/creatorflow/configs"
	"github.com/maheshrc27/creatorflow/internal/transfer"
)

var ErrMissingAPIKey = errors.New("generative API key is not configured")

// GenAIService is the typed client for the generative language API used
// for chat, batched content generation, and image generation.
type GenAIService interface {
	Chat(ctx context.Context, history []transfer.GenAIContent, newMessage string) (string, error)
	GenerateContent(ctx context.Context, promptParts []string) (string, error)
	GenerateImages(ctx context.Context, prompt string, n int) ([]transfer.GenAIPart, error)
}

type genAIService struct {
	cfg    config.Config
	client *http.Client
}

func NewGenAIService(cfg config.Config) GenAIService {
	return &genAIService{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (s *genAIService) Chat(ctx context.Context, history []transfer.GenAIContent, newMessage string) (string, error) {
	contents := make([]transfer.GenAIContent, 0, len(history)+1)
	contents = append(contents, history...)
	contents = append(contents, transfer.GenAIContent{
		Role:  "user",
		Parts: []transfer.GenAIPart{{Text: newMessage}},
	})

	resp, err := s.generate(ctx, s.cfg.GenAI.ChatModel, &transfer.GenerateContentRequest{Contents: contents})
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func (s *genAIService) GenerateContent(ctx context.Context, promptParts []string) (string, error) {
	parts := make([]transfer.GenAIPart, 0, len(promptParts))
	for _, p := range promptParts {
		parts = append(parts, transfer.GenAIPart{Text: p})
	}

	resp, err := s.generate(ctx, s.cfg.GenAI.ChatModel, &transfer.GenerateContentRequest{
		Contents: []transfer.GenAIContent{{Role: "user", Parts: parts}},
	})
	if err != nil {
		return "", err
	}
	return firstText(resp)
}

func (s *genAIService) GenerateImages(ctx context.Context, prompt string, n int) ([]transfer.GenAIPart, error) {
	if n < 1 {
		n = 1
	}

	resp, err := s.generate(ctx, s.cfg.GenAI.ImageModel, &transfer.GenerateContentRequest{
		Contents: []transfer.GenAIContent{{Role: "user", Parts: []transfer.GenAIPart{{Text: prompt}}}},
		GenerationConfig: &transfer.GenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 {
		return nil, errors.New("empty response from image model")
	}
	return resp.Candidates[0].Content.Parts, nil
}

func (s *genAIService) generate(ctx context.Context, model string, reqBody *transfer.GenerateContentRequest) (*transfer.GenerateContentResponse, error) {
	if s.cfg.GenAI.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.cfg.GenAI.BaseURL, model, s.cfg.GenAI.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var parsed transfer.GenerateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("malformed model response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		if parsed.Error != nil {
			return nil, fmt.Errorf("model request failed: %s", parsed.Error.Message)
		}
		return nil, fmt.Errorf("model request failed with status %d", resp.StatusCode)
	}

	return &parsed, nil
}

func firstText(resp *transfer.GenerateContentResponse) (string, error) {
	for _, cand := range resp.Candidates {
		for _, part := range cand.Content.Parts {
			if part.Text != "" {
				return part.Text, nil
			}
		}
	}
	return "", errors.New("empty response from model")
}
