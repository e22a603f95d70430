package transfer

// VideoLookupResponse is the shape returned by the third-party
// short-video lookup service.
type VideoLookupResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Play   string `json:"play"`
		Title  string `json:"title"`
		Cover  string `json:"cover"`
		Size   int64  `json:"size"`
		Author struct {
			Nickname string `json:"nickname"`
		} `json:"author"`
	} `json:"data"`
}

// VideoDownloadResult is what the passthrough hands back to the client.
type VideoDownloadResult struct {
	Title     string `json:"title"`
	Cover     string `json:"cover"`
	Size      int64  `json:"size"`
	MimeType  string `json:"mime_type"`
	VideoData string `json:"video_data"` // base64
	AssetURL  string `json:"asset_url,omitempty"`
}
