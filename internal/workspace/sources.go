package workspace

import (
	"context"

	"github.com/maheshrc27/creatorflow/internal/models"
)

func (s *Store) AddSource(ctx context.Context, sourceType models.SourceType, value, label string) string {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	src := &models.SavedSource{
		ID:    newID(),
		Type:  sourceType,
		Value: value,
		Label: label,
	}
	s.sources = append(s.sources, src)
	s.persistSources(ctx)
	return src.ID
}

func (s *Store) DeleteSource(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for i, src := range s.sources {
		if src.ID == id {
			s.sources = append(s.sources[:i], s.sources[i+1:]...)
			if s.activeSourceID == id {
				s.activeSourceID = ""
			}
			s.persistSources(ctx)
			return
		}
	}
}

// SetActiveSource marks the source the next generation run draws from.
func (s *Store) SetActiveSource(id string) {
	s.mu.Lock()
	s.activeSourceID = id
	s.mu.Unlock()
	s.notify()
}

func (s *Store) ActiveSourceID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSourceID
}
