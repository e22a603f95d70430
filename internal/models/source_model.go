package models

type SourceType string

const (
	SourceText     SourceType = "text"
	SourceArticle  SourceType = "article"
	SourceVideo    SourceType = "video"
	SourceAudio    SourceType = "audio"
	SourceDocument SourceType = "document"
	SourceLink     SourceType = "link"
)

// SavedSource is user-supplied raw material fed to content generation.
type SavedSource struct {
	ID    string     `json:"id"`
	Type  SourceType `json:"type"`
	Value string     `json:"value"`
	Label string     `json:"label"`
}

// PlatformRequest asks for a number of generated posts on one platform.
type PlatformRequest struct {
	Platform Platform `json:"platform"`
	Count    int      `json:"count"`
}
