package http

type generateRequest struct {
	Prompt         string `json:"prompt" binding:"required"`
	UserID         string `json:"user_id" binding:"required"`
	IsChatMode     bool   `json:"is_chat_mode"`
	IsPunjabiMode  bool   `json:"is_punjabi_mode"`
	TargetLanguage string `json:"target_language"`
	ImageData      string `json:"image_data"`
}

type suggestRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	HTMLContent     string `json:"html_content" binding:"required"`
	Timestamp       int64  `json:"timestamp"`
	ForceRegenerate bool   `json:"force_regenerate"`
}
