package workspace

import (
	"context"
	"fmt"
	"strings"

	"github.com/maheshrc27/creatorflow/internal/models"
	"github.com/maheshrc27/creatorflow/internal/transfer"
)

// genAIRole maps transcript roles onto the chat protocol's vocabulary.
func genAIRole(role string) string {
	if role == models.RoleAssistant {
		return "model"
	}
	return "user"
}

// SubmitChat runs one chat round-trip: the user message is appended
// optimistically, the full transcript goes to the model, and the reply
// either creates a post (structured action) or lands verbatim as the
// assistant's answer. Workflow errors become assistant messages; they
// are never returned. Only input validation reports an error.
func (s *Store) SubmitChat(ctx context.Context, text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}

	s.mu.Lock()
	if s.chatBusy {
		s.mu.Unlock()
		return ErrBusy
	}
	s.chatBusy = true

	history := make([]transfer.GenAIContent, 0, len(s.chat))
	for _, msg := range s.chat {
		history = append(history, transfer.GenAIContent{
			Role:  genAIRole(msg.Role),
			Parts: []transfer.GenAIPart{{Text: msg.Content}},
		})
	}

	// Optimistic append: the user's message stays visible even when the
	// round-trip fails.
	s.appendChatLocked(models.RoleUser, text)
	s.mu.Unlock()
	s.notify()

	defer func() {
		s.mu.Lock()
		s.chatBusy = false
		s.mu.Unlock()
		s.notify()
	}()

	reply, err := s.genai.Chat(ctx, history, text)
	if err != nil {
		s.appendAssistant(fmt.Sprintf("Sorry, something went wrong: %v", err))
		return nil
	}

	parsed := ParseReply(reply)

	s.mu.Lock()
	defer s.notify()
	defer s.mu.Unlock()

	switch parsed.Kind {
	case ReplyAction:
		platform, err := models.ParsePlatform(parsed.Action.Platform)
		if err != nil {
			// Unknown platform downgrades the reply to plain text.
			s.appendChatLocked(models.RoleAssistant, reply)
			return nil
		}
		id := s.createPostLocked(ctx, platform)
		s.contents[id] = parsed.Action.Content
		s.persistContents(ctx)

		summary := parsed.Action.SummaryForChat
		if summary == "" {
			summary = fmt.Sprintf("Created a new %s post for you.", platform.Label())
		}
		s.appendChatLocked(models.RoleAssistant, summary)

	case ReplyPlainText:
		s.appendChatLocked(models.RoleAssistant, parsed.Text)
	}

	return nil
}

// ChatBusy reports whether a chat round-trip is in flight.
func (s *Store) ChatBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chatBusy
}
