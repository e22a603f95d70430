package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/storage"
	"github.com/maheshrc27/creatorflow/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxApiKeys = 5

// ApiKeyService manages workspace API keys and their usage counters,
// persisted through the key-value store.
type ApiKeyService interface {
	Create(ctx context.Context, label string) (*models.ApiKey, error)
	List(ctx context.Context) []*models.ApiKey
	Regenerate(ctx context.Context, keyID string) (*models.ApiKey, error)
	Remove(ctx context.Context, keyID string) error
	Validate(ctx context.Context, apiKey string) bool
	Stats(ctx context.Context) []*models.ApiStats
}

type apiKeyService struct {
	mu     sync.Mutex
	kv     *storage.Store
	secret string
	keys   []*models.ApiKey
	stats  map[string]*models.ApiStats
}

func NewApiKeyService(ctx context.Context, kv *storage.Store, secretKey string) ApiKeyService {
	s := &apiKeyService{
		kv:     kv,
		secret: secretKey,
		stats:  make(map[string]*models.ApiStats),
	}

	var stored []*models.ApiKey
	kv.Load(ctx, storage.KeyApiKeys, &stored)
	for _, k := range stored {
		plain, err := utils.Decrypt(k.ApiKey, []byte(s.secret))
		if err != nil {
			slog.Error("dropping undecryptable API key", "key", k.ID, "error", err)
			continue
		}
		k.ApiKey = plain
		s.keys = append(s.keys, k)
	}

	kv.Load(ctx, storage.KeyApiStats, &s.stats)
	return s
}

// persistKeysLocked writes the key set with every secret sealed; the
// in-memory copies stay plaintext.
func (s *apiKeyService) persistKeysLocked(ctx context.Context) {
	out := make([]*models.ApiKey, 0, len(s.keys))
	for _, k := range s.keys {
		sealed, err := utils.Encrypt([]byte(k.ApiKey), []byte(s.secret))
		if err != nil {
			slog.Error("failed to encrypt API key for storage", "key", k.ID, "error", err)
			return
		}
		stored := *k
		stored.ApiKey = sealed
		out = append(out, &stored)
	}
	s.kv.Save(ctx, storage.KeyApiKeys, out)
}

func (s *apiKeyService) Create(ctx context.Context, label string) (*models.ApiKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.keys) >= maxApiKeys {
		err := fmt.Errorf("only %d API keys can be created", maxApiKeys)
		slog.Info(err.Error())
		return nil, err
	}

	key, err := utils.GenerateRandomKey(16)
	if err != nil {
		slog.Info(err.Error())
		return nil, errors.New("error generating API key")
	}

	id, err := gonanoid.New()
	if err != nil {
		return nil, err
	}

	apiKey := &models.ApiKey{
		ID:        id,
		Label:     label,
		ApiKey:    key,
		CreatedAt: time.Now(),
	}
	s.keys = append(s.keys, apiKey)
	s.persistKeysLocked(ctx)

	return apiKey, nil
}

func (s *apiKeyService) List(ctx context.Context) []*models.ApiKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.ApiKey, len(s.keys))
	copy(out, s.keys)
	return out
}

// Regenerate replaces the secret of an existing key, keeping its id and
// usage history.
func (s *apiKeyService) Regenerate(ctx context.Context, keyID string) (*models.ApiKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.keys {
		if k.ID == keyID {
			key, err := utils.GenerateRandomKey(16)
			if err != nil {
				return nil, errors.New("error generating API key")
			}
			k.ApiKey = key
			k.CreatedAt = time.Now()
			s.persistKeysLocked(ctx)
			return k, nil
		}
	}

	err := errors.New("key doesn't exist")
	slog.Info(err.Error())
	return nil, err
}

func (s *apiKeyService) Remove(ctx context.Context, keyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, k := range s.keys {
		if k.ID == keyID {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			delete(s.stats, keyID)
			s.persistKeysLocked(ctx)
			s.kv.Save(ctx, storage.KeyApiStats, s.stats)
			return nil
		}
	}

	err := errors.New("key doesn't exist")
	slog.Info(err.Error())
	return err
}

// Validate checks an incoming API key and records the hit.
func (s *apiKeyService) Validate(ctx context.Context, apiKey string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range s.keys {
		if k.ApiKey == apiKey {
			stat, ok := s.stats[k.ID]
			if !ok {
				stat = &models.ApiStats{KeyID: k.ID}
				s.stats[k.ID] = stat
			}
			stat.Requests++
			stat.LastUsedAt = time.Now()
			s.kv.Save(ctx, storage.KeyApiStats, s.stats)
			return true
		}
	}
	return false
}

func (s *apiKeyService) Stats(ctx context.Context) []*models.ApiStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*models.ApiStats, 0, len(s.stats))
	for _, st := range s.stats {
		out = append(out, st)
	}
	return out
}
