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
	"strings"
	"time"

	config "github.com/maheshrc27/creatorflow/configs"
	"github.com/maheshrc27/creatorflow/internal/transfer"
)

// VideoOperation is a handle to a long-running generation job. Poll
// reports completion and, once done, the delivery URI of the result.
type VideoOperation interface {
	Poll(ctx context.Context) (done bool, videoURI string, err error)
}

// VideoService submits video generation jobs and downloads finished
// results. Polling cadence and timeout policy belong to the caller.
type VideoService interface {
	SubmitJob(ctx context.Context, spec transfer.VideoJobSpec) (VideoOperation, error)
	Download(ctx context.Context, uri string) ([]byte, error)
}

type videoService struct {
	cfg    config.Config
	client *http.Client
}

func NewVideoService(cfg config.Config) VideoService {
	return &videoService{
		cfg:    cfg,
		client: &http.Client{Timeout: 2 * time.Minute},
	}
}

func (s *videoService) SubmitJob(ctx context.Context, spec transfer.VideoJobSpec) (VideoOperation, error) {
	if s.cfg.GenAI.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqBody := map[string]any{
		"instances": []map[string]any{{
			"prompt": spec.Prompt,
		}},
		"parameters": map[string]any{
			"negativePrompt": spec.NegativePrompt,
			"aspectRatio":    spec.AspectRatio,
			"resolution":     spec.Resolution,
		},
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/models/%s:predictLongRunning?key=%s", s.cfg.GenAI.BaseURL, s.cfg.GenAI.VideoModel, s.cfg.GenAI.APIKey)
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

	var op transfer.VideoOperationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return nil, fmt.Errorf("malformed operation response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if op.Error != nil {
			return nil, fmt.Errorf("video job submission failed: %s", op.Error.Message)
		}
		return nil, fmt.Errorf("video job submission failed with status %d", resp.StatusCode)
	}
	if op.Name == "" {
		return nil, errors.New("video job submission returned no operation name")
	}

	return &videoOperation{svc: s, name: op.Name}, nil
}

type videoOperation struct {
	svc  *videoService
	name string
}

func (o *videoOperation) Poll(ctx context.Context) (bool, string, error) {
	url := fmt.Sprintf("%s/%s?key=%s", o.svc.cfg.GenAI.BaseURL, o.name, o.svc.cfg.GenAI.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, "", err
	}

	resp, err := o.svc.client.Do(req)
	if err != nil {
		return false, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, "", err
	}

	var op transfer.VideoOperationResponse
	if err := json.Unmarshal(body, &op); err != nil {
		return false, "", fmt.Errorf("malformed operation response: %w", err)
	}
	if op.Error != nil {
		return false, "", fmt.Errorf("video generation failed: %s", op.Error.Message)
	}
	if !op.Done {
		return false, "", nil
	}

	if op.Response == nil || len(op.Response.GenerateVideoResponse.GeneratedSamples) == 0 {
		return true, "", errors.New("video operation completed without a result payload")
	}
	return true, op.Response.GenerateVideoResponse.GeneratedSamples[0].Video.URI, nil
}

func (s *videoService) Download(ctx context.Context, uri string) ([]byte, error) {
	// Delivery URIs require the same key the operation was created with.
	if !strings.Contains(uri, "key=") {
		sep := "?"
		if strings.Contains(uri, "?") {
			sep = "&"
		}
		uri = uri + sep + "key=" + s.cfg.GenAI.APIKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video download failed with status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
