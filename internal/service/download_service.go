package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/h2non/filetype"
	config "github.com/maheshrc27/creatorflow/configs"
	"github.com/maheshrc27/creatorflow/internal/transfer"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	ErrMissingURL     = errors.New("video url is required")
	ErrLookupFailed   = errors.New("lookup service could not resolve the video")
	ErrNoPlayableLink = errors.New("no playable link found for the video")
	ErrDownloadFailed = errors.New("video download failed")
)

// DownloadService resolves a short-video platform URL through a
// third-party lookup service, downloads the asset server-side, and
// returns it base64-encoded with metadata.
type DownloadService interface {
	FetchVideo(ctx context.Context, videoURL string) (*transfer.VideoDownloadResult, error)
}

type downloadService struct {
	cfg    config.Config
	assets *AssetService
	client *http.Client
}

func NewDownloadService(cfg config.Config, assets *AssetService) DownloadService {
	return &downloadService{
		cfg:    cfg,
		assets: assets,
		client: &http.Client{Timeout: 5 * time.Minute},
	}
}

func (s *downloadService) FetchVideo(ctx context.Context, videoURL string) (*transfer.VideoDownloadResult, error) {
	if videoURL == "" {
		return nil, ErrMissingURL
	}

	lookup, err := s.resolve(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	if lookup.Data.Play == "" {
		slog.Info("lookup returned no playable link", "url", videoURL)
		return nil, ErrNoPlayableLink
	}

	data, mime, err := s.download(ctx, lookup.Data.Play)
	if err != nil {
		return nil, err
	}

	result := &transfer.VideoDownloadResult{
		Title:     lookup.Data.Title,
		Cover:     lookup.Data.Cover,
		Size:      int64(len(data)),
		MimeType:  mime,
		VideoData: base64.StdEncoding.EncodeToString(data),
	}

	// Offload to R2 when configured so the asset survives the session.
	if s.assets != nil && s.assets.Enabled() {
		key, err := gonanoid.New()
		if err == nil {
			assetURL, err := s.assets.Upload(ctx, key, data, mime)
			if err != nil {
				slog.Error("asset offload failed", "error", err)
			} else {
				result.AssetURL = assetURL
			}
		}
	}

	return result, nil
}

func (s *downloadService) resolve(ctx context.Context, videoURL string) (*transfer.VideoLookupResponse, error) {
	lookupURL := fmt.Sprintf("%s?url=%s&hd=1", s.cfg.VideoLookupURL, url.QueryEscape(videoURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, ErrLookupFailed
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrLookupFailed
	}

	var lookup transfer.VideoLookupResponse
	if err := json.Unmarshal(body, &lookup); err != nil {
		return nil, ErrLookupFailed
	}
	if resp.StatusCode != http.StatusOK || lookup.Code != 0 {
		slog.Info("lookup service returned non-success", "code", lookup.Code, "msg", lookup.Msg)
		return nil, ErrLookupFailed
	}

	return &lookup, nil
}

func (s *downloadService) download(ctx context.Context, playURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, playURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, "", ErrDownloadFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", ErrDownloadFailed
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", ErrDownloadFailed
	}

	mime := "video/mp4"
	if kind, err := filetype.Match(data); err == nil && kind.MIME.Value != "" {
		mime = kind.MIME.Value
	}

	return data, mime, nil
}
