package workspace

import (
	"encoding/json"
	"errors"
	"strings"
)

// The model is instructed to answer with a fenced JSON block when it
// wants to act on the workspace. Anything else is treated as plain
// conversational text; parsing never fails the caller.

const actionCreatePost = "create_post"

type PostAction struct {
	Action         string `json:"action"`
	Platform       string `json:"platform"`
	Content        string `json:"content"`
	SummaryForChat string `json:"summary_for_chat"`
}

type ReplyKind int

const (
	ReplyPlainText ReplyKind = iota
	ReplyAction
)

// ParsedReply is the discriminated result of reading a model reply:
// either a structured create-post action or plain text.
type ParsedReply struct {
	Kind   ReplyKind
	Text   string
	Action PostAction
}

var (
	ErrNoJSONBlock = errors.New("response contains no fenced JSON block")
	ErrNotArray    = errors.New("fenced block is not a JSON array")
)

// ParseReply classifies a chat reply. A missing or malformed fence
// falls back to plain text with the raw reply verbatim.
func ParseReply(raw string) ParsedReply {
	block, ok := extractFencedBlock(raw)
	if !ok {
		return ParsedReply{Kind: ReplyPlainText, Text: raw}
	}

	var action PostAction
	if err := json.Unmarshal([]byte(block), &action); err != nil || action.Action != actionCreatePost {
		return ParsedReply{Kind: ReplyPlainText, Text: raw}
	}

	return ParsedReply{Kind: ReplyAction, Action: action}
}

// ParseActions reads a fenced JSON array of post actions from a batched
// generation reply. The two failure modes are distinct so the workflow
// can report them separately.
func ParseActions(raw string) ([]PostAction, error) {
	block, ok := extractFencedBlock(raw)
	if !ok {
		return nil, ErrNoJSONBlock
	}

	var actions []PostAction
	if err := json.Unmarshal([]byte(block), &actions); err != nil {
		return nil, ErrNotArray
	}
	return actions, nil
}

// extractFencedBlock returns the contents of the first ``` fence,
// ignoring an optional language tag on the opening line.
func extractFencedBlock(raw string) (string, bool) {
	start := strings.Index(raw, "```")
	if start < 0 {
		return "", false
	}
	rest := raw[start+3:]

	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		firstLine := strings.TrimSpace(rest[:nl])
		if firstLine == "" || isLanguageTag(firstLine) {
			rest = rest[nl+1:]
		}
	}

	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}

func isLanguageTag(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
