package documents

import "tailor-backend/resume/model"

// UploadResponse is the outward-facing representation of an upload.
type UploadResponse struct {
	DocID       string `json:"doc_id"`
	Filename    string `json:"filename"`
	TextPreview string `json:"text_preview"`
	TextChars   int    `json:"text_chars"`
}

// ParseResponse carries the parsed resume stage back to the client.
type ParseResponse struct {
	DocID  string       `json:"doc_id"`
	Resume model.Resume `json:"resume"`
}

func toUploadResponse(doc Document) UploadResponse {
	return UploadResponse{
		DocID:       doc.ID,
		Filename:    doc.FileName,
		TextPreview: doc.TextPreview,
		TextChars:   doc.TextChars,
	}
}
