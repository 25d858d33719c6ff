package tailoring

// ChatRequest is the body for a conversation turn.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the turn outcome for /chat.
type ChatResponse struct {
	AssistantMessage  string `json:"assistant_message"`
	NeedsConfirmation bool   `json:"needs_confirmation"`
	Status            string `json:"status"`
}

// TailorRequest is the body for a tailoring turn.
type TailorRequest struct {
	JobDescription string `json:"job_description"`
}

// TailorResponse adds the edit summary to the turn outcome.
type TailorResponse struct {
	AssistantMessage  string   `json:"assistant_message"`
	EditsSummary      []string `json:"edits_summary"`
	NeedsConfirmation bool     `json:"needs_confirmation"`
	Status            string   `json:"status"`
}

// ExportResponse describes the rendered export artifact.
type ExportResponse struct {
	DocID            string `json:"doc_id"`
	ExportKey        string `json:"export_key"`
	DownloadURL      string `json:"download_url"`
	ExpiresInSeconds int    `json:"expires_in_seconds"`
}
