package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/maheshrc27/creatorflow/internal/models"
)

// GenerateFromSource asks the model for a batch of posts built from the
// active source — one request for all platforms, not one per platform.
// Every failure mode lands as a distinct assistant message; the busy
// flag and the active source are cleared on every exit path.
func (s *Store) GenerateFromSource(ctx context.Context, requests []models.PlatformRequest) error {
	s.mu.Lock()
	if s.generateBusy {
		s.mu.Unlock()
		return ErrBusy
	}

	var source *models.SavedSource
	for _, src := range s.sources {
		if src.ID == s.activeSourceID {
			source = src
			break
		}
	}
	if source == nil {
		s.mu.Unlock()
		return ErrNoActiveSource
	}

	total := 0
	for i := range requests {
		if requests[i].Count < 1 {
			requests[i].Count = 1
		}
		total += requests[i].Count
	}
	if total == 0 {
		s.mu.Unlock()
		return nil
	}

	s.generateBusy = true
	s.appendChatLocked(models.RoleUser, fmt.Sprintf("Generating %d post(s) from %q…", total, source.Label))
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.generateBusy = false
		s.activeSourceID = ""
		s.mu.Unlock()
		s.notify()
	}()

	raw, err := s.genai.GenerateContent(ctx, []string{buildGeneratePrompt(source, requests)})
	if err != nil {
		s.appendAssistant(fmt.Sprintf("Content generation failed: %v", err))
		return nil
	}

	actions, err := ParseActions(raw)
	switch {
	case errors.Is(err, ErrNoJSONBlock):
		s.appendAssistant("The model's response did not contain any structured posts.")
		return nil
	case errors.Is(err, ErrNotArray):
		s.appendAssistant("The model's response was not a list of posts.")
		return nil
	}

	s.mu.Lock()
	var lines []string
	for _, action := range actions {
		if action.Action != actionCreatePost {
			continue
		}
		platform, err := models.ParsePlatform(action.Platform)
		if err != nil {
			continue
		}
		id := s.createPostLocked(ctx, platform)
		s.contents[id] = action.Content
		lines = append(lines, fmt.Sprintf("- %s: %s", platform.Label(), excerpt(action.Content, 60)))
	}
	if len(lines) > 0 {
		s.persistContents(ctx)
		s.appendChatLocked(models.RoleAssistant,
			fmt.Sprintf("Generated %d post(s) from your source:\n%s", len(lines), strings.Join(lines, "\n")))
	}
	s.mu.Unlock()
	s.notify()

	// A parseable reply with zero usable entries is still a failure.
	if len(lines) == 0 {
		s.appendAssistant("No posts could be generated from the response.")
	}
	return nil
}

func buildGeneratePrompt(source *models.SavedSource, requests []models.PlatformRequest) string {
	var counts []string
	for _, req := range requests {
		counts = append(counts, fmt.Sprintf("%d for %s", req.Count, req.Platform.Label()))
	}

	var b strings.Builder
	b.WriteString("You are a social media content writer. Using the source material below, ")
	b.WriteString(fmt.Sprintf("write posts: %s. ", strings.Join(counts, ", ")))
	b.WriteString("Respond with a fenced JSON array only; each element must be ")
	b.WriteString(`{"action":"create_post","platform":"...","content":"...","summary_for_chat":"..."}.`)
	b.WriteString(fmt.Sprintf("\n\nSource (%s): %s", source.Type, source.Value))
	return b.String()
}

func excerpt(s string, max int) string {
	runes := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(runes) <= max {
		return string(runes)
	}
	return string(runes[:max]) + "…"
}
