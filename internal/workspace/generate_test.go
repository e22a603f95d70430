package workspace

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/maheshrc27/creatorflow/internal/models"
)

func setupSource(t *testing.T, s *Store) string {
	t.Helper()
	id := s.AddSource(context.Background(), models.SourceText, "Launch announcement", "Launch notes")
	s.SetActiveSource(id)
	return id
}

func TestGenerateFromSourceCreatesPosts(t *testing.T) {
	s, genai, _ := newTestStore(t)
	setupSource(t, s)
	genai.generateReply = "```json\n" + `[
		{"action":"create_post","platform":"Facebook","content":"Big news! 🎉","summary_for_chat":"Post one"},
		{"action":"create_post","platform":"Facebook","content":"We are live.","summary_for_chat":"Post two"}
	]` + "\n```"

	err := s.GenerateFromSource(context.Background(), []models.PlatformRequest{
		{Platform: models.PlatformFacebook, Count: 2},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	posts := s.Posts()
	if len(posts) != 2 {
		t.Fatalf("posts = %d, want 2", len(posts))
	}
	for _, p := range posts {
		if p.Platform != models.PlatformFacebook {
			t.Fatalf("platform = %q, want facebook", p.Platform)
		}
	}

	assistant := assistantMessages(s)
	if len(assistant) != 1 {
		t.Fatalf("assistant messages = %+v, want one consolidated summary", assistant)
	}
	if !strings.Contains(assistant[0], "2 post(s)") {
		t.Fatalf("summary = %q", assistant[0])
	}
	if strings.Count(assistant[0], "\n") != 2 {
		t.Fatalf("summary should list both posts: %q", assistant[0])
	}

	if genai.generateCalls != 1 {
		t.Fatalf("generate calls = %d, want a single batched request", genai.generateCalls)
	}
	if s.ActiveSourceID() != "" {
		t.Fatal("active source must be cleared")
	}
}

func TestGenerateFromSourceRequiresActiveSource(t *testing.T) {
	s, genai, _ := newTestStore(t)

	err := s.GenerateFromSource(context.Background(), []models.PlatformRequest{
		{Platform: models.PlatformTwitter, Count: 1},
	})
	if !errors.Is(err, ErrNoActiveSource) {
		t.Fatalf("err = %v, want ErrNoActiveSource", err)
	}
	if genai.generateCalls != 0 {
		t.Fatal("no network call without a source")
	}
}

func TestGenerateFromSourceFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		err     error
		wantMsg string
	}{
		{
			name:    "transport error",
			err:     errors.New("gateway timeout"),
			wantMsg: "generation failed",
		},
		{
			name:    "no fenced block",
			reply:   "I could not produce posts this time.",
			wantMsg: "did not contain",
		},
		{
			name:    "not an array",
			reply:   "```json\n{\"action\":\"create_post\"}\n```",
			wantMsg: "not a list",
		},
		{
			name:    "zero valid entries",
			reply:   "```json\n[{\"action\":\"delete_everything\"}]\n```",
			wantMsg: "No posts could be generated",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, genai, _ := newTestStore(t)
			setupSource(t, s)
			genai.generateReply = tt.reply
			genai.generateErr = tt.err

			err := s.GenerateFromSource(context.Background(), []models.PlatformRequest{
				{Platform: models.PlatformTwitter, Count: 1},
			})
			if err != nil {
				t.Fatalf("workflow errors must not propagate, got %v", err)
			}

			if len(s.Posts()) != 0 {
				t.Fatal("failed run must not create posts")
			}
			assistant := assistantMessages(s)
			if len(assistant) != 1 {
				t.Fatalf("assistant messages = %+v, want exactly one", assistant)
			}
			if !strings.Contains(assistant[0], tt.wantMsg) {
				t.Fatalf("message %q should mention %q", assistant[0], tt.wantMsg)
			}
			if s.ActiveSourceID() != "" {
				t.Fatal("active source must be cleared on failure")
			}
		})
	}
}

func TestGenerateFromSourceSkipsInvalidEntries(t *testing.T) {
	s, genai, _ := newTestStore(t)
	setupSource(t, s)
	genai.generateReply = "```json\n" + `[
		{"action":"create_post","platform":"Twitter","content":"keep me"},
		{"action":"create_post","platform":"friendster","content":"drop me"},
		{"action":"noop","platform":"Twitter","content":"drop me too"}
	]` + "\n```"

	if err := s.GenerateFromSource(context.Background(), []models.PlatformRequest{
		{Platform: models.PlatformTwitter, Count: 3},
	}); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if len(s.Posts()) != 1 {
		t.Fatalf("posts = %d, want only the valid entry", len(s.Posts()))
	}
}

func TestGenerateBuildsBatchedPrompt(t *testing.T) {
	src := &models.SavedSource{Type: models.SourceText, Value: "Launch announcement", Label: "Notes"}
	prompt := buildGeneratePrompt(src, []models.PlatformRequest{
		{Platform: models.PlatformFacebook, Count: 2},
		{Platform: models.PlatformTwitter, Count: 1},
	})

	for _, want := range []string{"2 for Facebook", "1 for Twitter", "Launch announcement", "create_post"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
