package transfer

// Request/response shapes for the generative language API. Only the
// fields the workspace consumes are modeled.

type GenAIPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type GenAIContent struct {
	Role  string      `json:"role"`
	Parts []GenAIPart `json:"parts"`
}

type GenerateContentRequest struct {
	Contents         []GenAIContent    `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type GenerationConfig struct {
	ResponseModalities []string `json:"responseModalities,omitempty"`
	CandidateCount     int      `json:"candidateCount,omitempty"`
}

type GenerateContentResponse struct {
	Candidates []struct {
		Content GenAIContent `json:"content"`
	} `json:"candidates"`
	Error *GenAIError `json:"error,omitempty"`
}

type GenAIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type VideoJobSpec struct {
	Prompt         string `json:"prompt"`
	NegativePrompt string `json:"negativePrompt,omitempty"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	Resolution     string `json:"resolution,omitempty"`
}

type VideoOperationResponse struct {
	Name     string      `json:"name"`
	Done     bool        `json:"done"`
	Error    *GenAIError `json:"error,omitempty"`
	Response *struct {
		GenerateVideoResponse struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}
