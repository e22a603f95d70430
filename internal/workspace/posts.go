package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/maheshrc27/creatorflow/internal/models"
)

// CreatePost opens a fresh empty post for the platform and selects it.
func (s *Store) CreatePost(ctx context.Context, platform models.Platform) string {
	s.mu.Lock()
	id := s.createPostLocked(ctx, platform)
	s.mu.Unlock()
	s.notify()
	return id
}

func (s *Store) createPostLocked(ctx context.Context, platform models.Platform) string {
	id := newID()
	s.posts = append(s.posts, &models.Post{ID: id, Platform: platform})
	s.contents[id] = ""
	s.selectedID = id
	s.persistContents(ctx)
	return id
}

// SelectPost moves the active-post pointer. A stale id is tolerated;
// display guarding is the UI's job.
func (s *Store) SelectPost(id string) {
	s.mu.Lock()
	s.selectedID = id
	s.mu.Unlock()
	s.notify()
}

// DeletePost removes the post, its content entry, and any event
// linkage. Deleting an unknown id is a no-op.
func (s *Store) DeletePost(ctx context.Context, id string) {
	s.mu.Lock()
	s.deletePostLocked(ctx, id)
	s.mu.Unlock()
	s.notify()
}

func (s *Store) deletePostLocked(ctx context.Context, id string) {
	for i, p := range s.posts {
		if p.ID == id {
			s.posts = append(s.posts[:i], s.posts[i+1:]...)
			break
		}
	}
	delete(s.contents, id)
	delete(s.eventLinks, id)

	if s.selectedID == id {
		if len(s.posts) > 0 {
			s.selectedID = s.posts[0].ID
		} else {
			s.selectedID = NoSelection
		}
	}
	s.persistContents(ctx)
}

// UpdatePostContent overwrites the post's text. When the post is linked
// to a calendar event, the event content is rewritten in the same
// mutation so readers never observe the two out of sync.
func (s *Store) UpdatePostContent(ctx context.Context, id, text string) {
	s.mu.Lock()
	s.contents[id] = text
	s.persistContents(ctx)

	if link, ok := s.eventLinks[id]; ok {
		for _, ev := range s.calendar[link.Day] {
			if ev.ID == link.EventID {
				ev.Content = text
				break
			}
		}
		s.persistCalendar(ctx)
	}
	s.mu.Unlock()
	s.notify()
}

// ClonePost duplicates an open post under a new id and selects the
// clone. No-op if the id doesn't resolve.
func (s *Store) ClonePost(ctx context.Context, id string) string {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	src := s.findPostLocked(id)
	if src == nil {
		return NoSelection
	}

	cloneID := newID()
	s.posts = append(s.posts, &models.Post{ID: cloneID, Platform: src.Platform})
	s.contents[cloneID] = s.contents[id]
	s.selectedID = cloneID
	s.persistContents(ctx)
	return cloneID
}

func (s *Store) findPostLocked(id string) *models.Post {
	for _, p := range s.posts {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// SaveDraft snapshots the post under the same id, overwriting any prior
// draft. The open post stays open.
func (s *Store) SaveDraft(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	post := s.findPostLocked(id)
	if post == nil {
		return
	}

	draft := &models.DraftPost{
		ID:       id,
		Platform: post.Platform,
		Content:  s.contents[id],
		Time:     time.Now().Format(time.RFC3339),
		Status:   models.PostStatusDraft,
	}

	replaced := false
	for i, d := range s.drafts {
		if d.ID == id {
			s.drafts[i] = draft
			replaced = true
			break
		}
	}
	if !replaced {
		s.drafts = append(s.drafts, draft)
	}
	s.persistDrafts(ctx)
}

// PublishPost converts the open post into a published record and closes
// the editor entry for it. No-op when the id isn't open.
func (s *Store) PublishPost(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	post := s.findPostLocked(id)
	if post == nil {
		return
	}

	s.published = append(s.published, &models.PublishedPost{
		ID:       id,
		Platform: post.Platform,
		Content:  s.contents[id],
		Time:     time.Now().Format(time.RFC3339),
		Status:   models.PostStatusPublished,
		URL:      publishURL(post.Platform, id),
	})
	s.persistPublished(ctx)
	s.deletePostLocked(ctx, id)
}

// publishURL is a deterministic placeholder until a real publish
// integration lands.
func publishURL(platform models.Platform, id string) string {
	return fmt.Sprintf("https://%s.example.com/p/%s", platform, id)
}

// EditDraft re-opens a draft as an active post and returns the open
// post id. The draft entry itself is untouched.
func (s *Store) EditDraft(ctx context.Context, draftID string) string {
	s.mu.Lock()
	var draft *models.DraftPost
	for _, d := range s.drafts {
		if d.ID == draftID {
			draft = d
			break
		}
	}
	s.mu.Unlock()

	if draft == nil {
		slog.Info("draft doesn't exist", "id", draftID)
		return NoSelection
	}
	return s.OpenPost(ctx, draft.Platform, draft.Content, nil)
}

func (s *Store) DeleteDraft(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for i, d := range s.drafts {
		if d.ID == id {
			s.drafts = append(s.drafts[:i], s.drafts[i+1:]...)
			s.persistDrafts(ctx)
			return
		}
	}
}

// PublishDraft publishes the open post for the draft id, then removes
// the draft. Each step tolerates a missing entry on its own.
func (s *Store) PublishDraft(ctx context.Context, id string) {
	s.PublishPost(ctx, id)
	s.DeleteDraft(ctx, id)
}

// OpenPost is a find-or-create: an existing open post for the platform
// is reused (content overwritten), otherwise a new one is created. The
// optional link ties the post to the calendar event it was seeded from.
func (s *Store) OpenPost(ctx context.Context, platform models.Platform, content string, link *models.EventLink) string {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	var id string
	for _, p := range s.posts {
		if p.Platform == platform {
			id = p.ID
			break
		}
	}
	if id == "" {
		id = newID()
		s.posts = append(s.posts, &models.Post{ID: id, Platform: platform})
	}

	s.contents[id] = content
	s.selectedID = id
	if link != nil {
		s.eventLinks[id] = *link
	}
	s.persistContents(ctx)
	return id
}

// RetryFailed re-attempts a failed publish. On success the failed entry
// is dropped and a published record appended.
func (s *Store) RetryFailed(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	for i, f := range s.failed {
		if f.ID == id {
			s.published = append(s.published, &models.PublishedPost{
				ID:       f.ID,
				Platform: f.Platform,
				Content:  f.Content,
				Time:     time.Now().Format(time.RFC3339),
				Status:   models.PostStatusPublished,
				URL:      publishURL(f.Platform, f.ID),
			})
			s.failed = append(s.failed[:i], s.failed[i+1:]...)
			s.persistPublished(ctx)
			s.persistFailed(ctx)
			return
		}
	}
}
