package workspace

import (
	"context"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
)

func (s *Store) CreateVideoProject(ctx context.Context, name string) string {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	project := &models.VideoProject{
		ID:        newID(),
		Name:      name,
		Status:    "draft",
		CreatedAt: time.Now(),
	}
	s.projects = append(s.projects, project)
	s.persistProjects(ctx)
	return project.ID
}

func (s *Store) DeleteVideoProject(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for i, p := range s.projects {
		if p.ID == id {
			s.projects = append(s.projects[:i], s.projects[i+1:]...)
			s.persistProjects(ctx)
			return
		}
	}
}
