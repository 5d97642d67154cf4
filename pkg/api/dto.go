package api

// Optional request fields are pointers so an absent or null field can be told
// apart from an empty one.

//easyjson:json
type VQARequest struct {
	Image     *string `json:"image"`
	Question  *string `json:"question,omitempty"`
	SessionID *string `json:"session_id,omitempty"`
}

//easyjson:json
type VQAResponse struct {
	Answer    string `json:"answer"`
	SessionID string `json:"session_id"`
	Timestamp string `json:"timestamp"`
}

//easyjson:json
type OCRRequest struct {
	Image    *string `json:"image"`
	Language *string `json:"language,omitempty"`
}

//easyjson:json
type OCRResponse struct {
	Text        string `json:"text"`
	DownloadURL string `json:"download_url"`
	TaskID      string `json:"task_id"`
}

//easyjson:json
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Device      string `json:"device"`
}

//easyjson:json
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code"`
}
